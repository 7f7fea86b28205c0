package contentd

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RouteRegistrar captures the router methods used by the resource controllers.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// ContentController handles the content CRUD routes.
type ContentController struct {
	Logger       Logger
	Repo         RepositoryManager
	ContextKey   string
	ErrorHandler router.ErrorHandler
}

func NewContentController(repo RepositoryManager) *ContentController {
	return &ContentController{
		Logger:       defLogger{},
		Repo:         repo,
		ContextKey:   "access_token",
		ErrorHandler: respondError,
	}
}

// RegisterRoutes mounts the content endpoints. Every route goes through the
// given middleware. The /contents/user route must be registered before
// /contents/:id so the path segment does not match as an id.
func (c *ContentController) RegisterRoutes(group RouteRegistrar, mw ...router.MiddlewareFunc) {
	group.Get("/contents", c.List, mw...)
	group.Get("/contents/user", c.ListMine, mw...)
	group.Get("/contents/:id", c.Show, mw...)
	group.Post("/contents", c.Create, mw...)
	group.Put("/contents/:id", c.Update, mw...)
	group.Delete("/contents/:id", c.Delete, mw...)
}

// List returns every content record.
func (c *ContentController) List(ctx router.Context) error {
	records, err := c.Repo.Contents().List(ctx.Context())
	if err != nil {
		c.Logger.Error("content list: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"success":  true,
		"contents": records,
	})
}

// ListMine returns the content records created by the requesting account.
func (c *ContentController) ListMine(ctx router.Context) error {
	uid, err := sessionUserUUID(ctx, c.ContextKey)
	if err != nil {
		c.Logger.Error("content list mine session: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	records, err := c.Repo.Contents().ListByUser(ctx.Context(), uid)
	if err != nil {
		c.Logger.Error("content list mine: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"success":  true,
		"contents": records,
	})
}

// Show returns a single content record.
func (c *ContentController) Show(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	record, err := c.Repo.Contents().GetByID(ctx.Context(), id)
	if err != nil {
		c.Logger.Error("content show: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"success": true,
		"content": record,
	})
}

// ContentCreateRequest is the creation payload
type ContentCreateRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	ContentPath string `form:"content_path" json:"content_path"`
	Category    int    `form:"category" json:"category"`
}

// Validate will run validation rules
func (r ContentCreateRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.Description, validation.Required),
			validation.Field(&r.ContentPath, validation.Required),
			validation.Field(&r.Category, validation.Required),
		)
	}, "Invalid content payload")
}

// Create stores a new content record tagged with the requesting account.
func (c *ContentController) Create(ctx router.Context) error {
	payload := new(ContentCreateRequest)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("content create parse payload: %s", err)
		return c.ErrorHandler(ctx, badBodyError(err))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("content create validate payload: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	uid, err := sessionUserUUID(ctx, c.ContextKey)
	if err != nil {
		c.Logger.Error("content create session: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	record, err := c.Repo.Contents().Create(ctx.Context(), &Content{
		Title:       payload.Title,
		Description: payload.Description,
		ContentPath: payload.ContentPath,
		Category:    payload.Category,
		UserID:      uid,
	})
	if err != nil {
		c.Logger.Error("content create: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"success": true,
		"content": record,
	})
}

// ContentUpdateRequest is the update payload. Every field is optional; only
// the ones present end up in the patch.
type ContentUpdateRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	ContentPath string `form:"content_path" json:"content_path"`
	Category    int    `form:"category" json:"category"`
}

// Validate will run validation rules
func (r ContentUpdateRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Length(1, 200)),
		)
	}, "Invalid content payload")
}

// Update merges the payload into the stored record.
func (c *ContentController) Update(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	payload := new(ContentUpdateRequest)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("content update parse payload: %s", err)
		return c.ErrorHandler(ctx, badBodyError(err))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("content update validate payload: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	record, err := c.Repo.Contents().Update(ctx.Context(), id, &Content{
		Title:       payload.Title,
		Description: payload.Description,
		ContentPath: payload.ContentPath,
		Category:    payload.Category,
	})
	if err != nil {
		c.Logger.Error("content update: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"success": true,
		"content": record,
	})
}

// Delete removes a content record.
func (c *ContentController) Delete(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	if err := c.Repo.Contents().Delete(ctx.Context(), id); err != nil {
		c.Logger.Error("content delete: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"success": true,
		"message": "content deleted",
	})
}

// sessionUserUUID pulls the requesting account id out of the claims the
// middleware stored in locals.
func sessionUserUUID(ctx router.Context, contextKey string) (uuid.UUID, error) {
	session, err := GetRouterSession(ctx, contextKey)
	if err != nil {
		return uuid.Nil, ErrNoToken
	}

	uid, err := session.GetUserUUID()
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryAuth, "session carries a malformed user id").
			WithCode(goerrors.CodeUnauthorized)
	}

	return uid, nil
}

func parseUUIDParam(ctx router.Context, name string) (uuid.UUID, error) {
	raw := ctx.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, goerrors.New("invalid id", goerrors.CategoryValidation).
			WithTextCode("INVALID_ID").
			WithCode(goerrors.CodeBadRequest).
			WithMetadata(map[string]any{"id": raw})
	}
	return id, nil
}
