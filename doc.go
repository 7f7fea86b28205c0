// Package contentd is a small content backend with cookie-based JWT
// authentication.
//
// Accounts:
//   - Registration hashes the password with bcrypt and stores the account
//     inside a single transaction; usernames and emails are unique at the
//     database level, so concurrent registrations race on the constraint.
//   - Login verifies credentials through an IdentityProvider and answers every
//     failure with the same error, so a caller probing emails learns nothing.
//
// Sessions:
//   - Sessions are stateless signed tokens (HS256) delivered in an HTTP-only
//     cookie. TokenService issues and validates them; tokenware extracts the
//     raw token from the request and stores the validated claims in router
//     locals for handlers to read.
//   - Logout simply expires the cookie. Issued tokens stay valid until their
//     own expiry; there is no server-side revocation list.
//
// Resources:
//   - Content and Category records get plain CRUD endpoints behind the same
//     session middleware. Content rows remember which account created them but
//     no handler restricts access to that owner.
package contentd
