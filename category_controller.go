package contentd

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// CategoryController handles the category CRUD routes.
type CategoryController struct {
	Logger       Logger
	Repo         RepositoryManager
	ErrorHandler router.ErrorHandler
}

func NewCategoryController(repo RepositoryManager) *CategoryController {
	return &CategoryController{
		Logger:       defLogger{},
		Repo:         repo,
		ErrorHandler: respondError,
	}
}

// RegisterRoutes mounts the category endpoints behind the given middleware.
func (c *CategoryController) RegisterRoutes(group RouteRegistrar, mw ...router.MiddlewareFunc) {
	group.Get("/categories", c.List, mw...)
	group.Get("/categories/:id", c.Show, mw...)
	group.Post("/categories", c.Create, mw...)
	group.Put("/categories/:id", c.Update, mw...)
	group.Delete("/categories/:id", c.Delete, mw...)
}

// List returns every category.
func (c *CategoryController) List(ctx router.Context) error {
	records, err := c.Repo.Categories().List(ctx.Context())
	if err != nil {
		c.Logger.Error("category list: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"success":    true,
		"categories": records,
	})
}

// Show returns a single category.
func (c *CategoryController) Show(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	record, err := c.Repo.Categories().GetByID(ctx.Context(), id)
	if err != nil {
		c.Logger.Error("category show: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"success":  true,
		"category": record,
	})
}

// CategoryCreateRequest is the creation payload
type CategoryCreateRequest struct {
	Title        string `form:"title" json:"title"`
	Description  string `form:"description" json:"description"`
	CategoryPath string `form:"category_path" json:"category_path"`
	Category     int    `form:"category" json:"category"`
}

// Validate will run validation rules
func (r CategoryCreateRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
			validation.Field(&r.Description, validation.Required),
			validation.Field(&r.CategoryPath, validation.Required),
			validation.Field(&r.Category, validation.Required),
		)
	}, "Invalid category payload")
}

// Create stores a new category.
func (c *CategoryController) Create(ctx router.Context) error {
	payload := new(CategoryCreateRequest)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("category create parse payload: %s", err)
		return c.ErrorHandler(ctx, badBodyError(err))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("category create validate payload: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	record, err := c.Repo.Categories().Create(ctx.Context(), &Category{
		Title:        payload.Title,
		Description:  payload.Description,
		CategoryPath: payload.CategoryPath,
		Category:     payload.Category,
	})
	if err != nil {
		c.Logger.Error("category create: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"success":  true,
		"category": record,
	})
}

// CategoryUpdateRequest is the update payload. Every field is optional.
type CategoryUpdateRequest struct {
	Title        string `form:"title" json:"title"`
	Description  string `form:"description" json:"description"`
	CategoryPath string `form:"category_path" json:"category_path"`
	Category     int    `form:"category" json:"category"`
}

// Validate will run validation rules
func (r CategoryUpdateRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Title, validation.Length(1, 200)),
		)
	}, "Invalid category payload")
}

// Update merges the payload into the stored record.
func (c *CategoryController) Update(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	payload := new(CategoryUpdateRequest)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("category update parse payload: %s", err)
		return c.ErrorHandler(ctx, badBodyError(err))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("category update validate payload: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	record, err := c.Repo.Categories().Update(ctx.Context(), id, &Category{
		Title:        payload.Title,
		Description:  payload.Description,
		CategoryPath: payload.CategoryPath,
		Category:     payload.Category,
	})
	if err != nil {
		c.Logger.Error("category update: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"success":  true,
		"category": record,
	})
}

// Delete removes a category.
func (c *CategoryController) Delete(ctx router.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return c.ErrorHandler(ctx, err)
	}

	if err := c.Repo.Categories().Delete(ctx.Context(), id); err != nil {
		c.Logger.Error("category delete: %s", err)
		return c.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"success": true,
		"message": "category deleted",
	})
}
