package contentd

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// ErrInvalidCredentials is the uniform login failure. Callers must not be able
// to tell a missing account apart from a wrong password.
var ErrInvalidCredentials = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned when a presented token is past its expiry.
// The message matches ErrTokenMalformed so clients get no hint of why
// verification failed.
var ErrTokenExpired = goerrors.New("invalid or expired token", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed covers every other verification failure: bad signature,
// garbage payload, unexpected signing method.
var ErrTokenMalformed = goerrors.New("invalid or expired token", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(goerrors.CodeUnauthorized)

// ErrNoToken is returned when a protected route receives no session cookie.
var ErrNoToken = goerrors.New("no token, authorization denied", goerrors.CategoryAuth).
	WithTextCode("NO_TOKEN").
	WithCode(goerrors.CodeUnauthorized)

// ErrDuplicateIdentity is returned when a registration collides with an
// existing username or email.
var ErrDuplicateIdentity = goerrors.New("username or email already registered", goerrors.CategoryConflict).
	WithTextCode("DUPLICATE_IDENTITY").
	WithCode(goerrors.CodeConflict)

// ErrNoEmptyString is the error returned when hashing an empty password
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode("EMPTY_PASSWORD").
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the bcrypt comparison failure. It carries
// the same client-facing message as ErrInvalidCredentials.
var ErrMismatchedHashAndPassword = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(goerrors.CodeUnauthorized)

// ErrUnableToFindSession is the error when our request has no cookie
var ErrUnableToFindSession = errors.New("unable to find session")

// ErrUnableToDecodeSession unable to decode JWT from session cookie
var ErrUnableToDecodeSession = errors.New("unable to decode session")

// ErrUnableToMapClaims unable to get claims from token
var ErrUnableToMapClaims = errors.New("unable to map claims")

// ErrUnableToParseData parse error
var ErrUnableToParseData = errors.New("unable to parse data")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsDuplicateKeyError reports whether err looks like a uniqueness violation
// from the database layer. Sqlite and postgres both spell these out in the
// driver message; the repository layer does not normalize them for us.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "constraint failed")
}
