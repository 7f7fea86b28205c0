package contentd

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// HTTPAuthenticator is the surface controllers need from the HTTP auth layer
type HTTPAuthenticator interface {
	Login(ctx router.Context, payload LoginPayload) error
	Logout(ctx router.Context)
	ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc
}

// LoginPayload is any payload carrying credentials
type LoginPayload interface {
	GetIdentifier() string
	GetPassword() string
}

// RegisterAuthRoutes mounts the authentication endpoints. The profile route
// goes through the protect middleware; register, login, and logout are public.
func RegisterAuthRoutes[T any](app router.Router[T], protect router.MiddlewareFunc, opts ...AuthControllerOption) {

	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.Register).
		SetName("auth.register")

	app.Post(controller.Routes.Login, controller.Login).
		SetName("auth.login")

	app.Post(controller.Routes.Logout, controller.Logout).
		SetName("auth.logout")

	app.Get(controller.Routes.Profile, protect(controller.Profile)).
		SetName("auth.profile")
}

type AuthControllerRoutes struct {
	Login    string
	Logout   string
	Register string
	Profile  string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Routes       *AuthControllerRoutes
	Auther       HTTPAuthenticator
	ContextKey   string
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: respondError,
		ContextKey:   "access_token",
		Routes: &AuthControllerRoutes{
			Login:    "/login",
			Logout:   "/logout",
			Register: "/register",
			Profile:  "/profile",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in auth controller...")
	}

	return c
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `form:"email" json:"email"`
	Password   string `form:"password" json:"password"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Identifier
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.Identifier,
				validation.Required,
				is.Email,
			),
			validation.Field(
				&r.Password,
				validation.Required,
			),
		)
	}, "Invalid login request payload")
}

func (a *AuthController) Login(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: %s", err)
		return a.ErrorHandler(ctx, badBodyError(err))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("login validate payload: %s", err)
		return a.ErrorHandler(ctx, err)
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	if err := a.Auther.Login(ctx, payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	user, err := a.Repo.Users().GetByIdentifier(ctx.Context(), payload.GetIdentifier())
	if err != nil {
		a.Logger.Error("login user lookup: %s", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, AuthUserResponse{
		Success:    true,
		UserRecord: NewUserDTO(user),
	})
}

// Logout clears the session cookie. It succeeds whether or not the caller had
// an active session.
func (a *AuthController) Logout(ctx router.Context) error {
	a.Auther.Logout(ctx)
	return ctx.JSON(router.StatusOK, map[string]any{
		"success": true,
		"message": "logged out",
	})
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Username string `form:"user_name" json:"user_name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Type     string `form:"type" json:"type"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
			validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
			validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
			validation.Field(&r.Type, validation.In(string(AccountTypeUser), string(AccountTypeAdmin))),
		)
	}, "Invalid registration payload")
}

func (a *AuthController) Register(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register user parse payload: %s", err)
		return a.ErrorHandler(ctx, badBodyError(err))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload: %s", err)
		return a.ErrorHandler(ctx, err)
	}

	req := RegisterUserMessage{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		Type:     payload.Type,
	}

	registerUser := NewRegisterUserHandler(a.Repo)
	user, err := registerUser.Execute(ctx.Context(), req)
	if err != nil {
		a.Logger.Error("register user execute: %s", err)
		return a.ErrorHandler(ctx, err)
	}

	// registration logs the new account in
	if err := a.Auther.Login(ctx, LoginRequest{
		Identifier: payload.Email,
		Password:   payload.Password,
	}); err != nil {
		a.Logger.Error("register user login: %s", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, AuthUserResponse{
		Success:    true,
		UserRecord: NewUserDTO(user),
	})
}

// Profile returns the account behind the current session
func (a *AuthController) Profile(ctx router.Context) error {
	session, err := GetRouterSession(ctx, a.ContextKey)
	if err != nil {
		a.Logger.Error("profile session: %s", err)
		return a.ErrorHandler(ctx, ErrNoToken)
	}

	user, err := a.Repo.Users().GetByID(ctx.Context(), session.GetUserID())
	if err != nil {
		a.Logger.Error("profile user lookup: %s", err)
		if goerrors.IsNotFound(err) {
			return a.ErrorHandler(ctx, ErrIdentityNotFound)
		}
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, NewUserDTO(user))
}

// AuthUserResponse is the flat body register and login return: the success
// flag alongside the account's public fields.
type AuthUserResponse struct {
	Success bool `json:"success"`
	UserRecord
}

// UserRecord is the public shape of an account. The password hash never
// leaves the server.
type UserRecord struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"user_name"`
	Email     string     `json:"email"`
	Type      string     `json:"type"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func NewUserDTO(user *User) UserRecord {
	return UserRecord{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Type:      string(user.Type),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func badBodyError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "failed to parse request body").
		WithCode(goerrors.CodeBadRequest)
}

// respondError maps rich errors to their HTTP status and a uniform JSON body.
// Internal failures get a generic message so driver details never leak.
func respondError(c router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected server error occurred").
			WithCode(goerrors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = categoryStatus(richErr.Category)
	}

	message := richErr.Message
	if richErr.Category == goerrors.CategoryInternal {
		message = "An unexpected server error occurred"
	}

	body := map[string]any{
		"success": false,
		"message": message,
	}

	if richErr.Category == goerrors.CategoryValidation {
		if fields := richErr.ValidationMap(); len(fields) > 0 {
			body["errors"] = fields
		}
	}

	return c.JSON(status, body)
}

func categoryStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryAuth:
		return router.StatusUnauthorized
	case goerrors.CategoryValidation:
		return router.StatusBadRequest
	case goerrors.CategoryNotFound:
		return router.StatusNotFound
	case goerrors.CategoryConflict:
		return router.StatusConflict
	default:
		return router.StatusInternalServerError
	}
}
