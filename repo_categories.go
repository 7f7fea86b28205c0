package contentd

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CategoriesRepository persists Category records using Bun.
type CategoriesRepository struct {
	db *bun.DB
}

// NewCategoriesRepository creates a new repository.
func NewCategoriesRepository(db *bun.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

// List returns every category, newest first.
func (r *CategoriesRepository) List(ctx context.Context) ([]*Category, error) {
	var records []*Category
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*Category{}, nil
		}
		return nil, err
	}
	return records, nil
}

// GetByID returns a single category.
func (r *CategoriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	record := &Category{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errCategoryNotFound(id)
		}
		return nil, err
	}
	return record, nil
}

// Create persists a new category.
func (r *CategoriesRepository) Create(ctx context.Context, record *Category) (*Category, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	record.CreatedAt = &now
	record.UpdatedAt = &now

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

// Update applies the non-zero fields of patch and returns the merged record.
func (r *CategoriesRepository) Update(ctx context.Context, id uuid.UUID, patch *Category) (*Category, error) {
	patch.ID = id
	now := time.Now()
	patch.UpdatedAt = &now
	patch.CreatedAt = nil

	res, err := r.db.NewUpdate().
		Model(patch).
		OmitZero().
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, errCategoryNotFound(id)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a category, reporting NotFound when id does not resolve.
func (r *CategoriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Category)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errCategoryNotFound(id)
	}
	return nil
}

func errCategoryNotFound(id uuid.UUID) error {
	return goerrors.New("category not found", goerrors.CategoryNotFound).
		WithTextCode("CATEGORY_NOT_FOUND").
		WithCode(goerrors.CodeNotFound).
		WithMetadata(map[string]any{"id": id.String()})
}
