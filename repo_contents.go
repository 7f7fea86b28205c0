package contentd

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ContentsRepository persists Content records using Bun.
type ContentsRepository struct {
	db *bun.DB
}

// NewContentsRepository creates a new repository.
func NewContentsRepository(db *bun.DB) *ContentsRepository {
	return &ContentsRepository{db: db}
}

// List returns every content record, newest first.
func (r *ContentsRepository) List(ctx context.Context) ([]*Content, error) {
	var records []*Content
	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*Content{}, nil
		}
		return nil, err
	}
	return records, nil
}

// ListByUser returns the content records created by the given user.
func (r *ContentsRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Content, error) {
	var records []*Content
	err := r.db.NewSelect().
		Model(&records).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*Content{}, nil
		}
		return nil, err
	}
	return records, nil
}

// GetByID returns a single content record.
func (r *ContentsRepository) GetByID(ctx context.Context, id uuid.UUID) (*Content, error) {
	record := &Content{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errContentNotFound(id)
		}
		return nil, err
	}
	return record, nil
}

// Create persists a new content record.
func (r *ContentsRepository) Create(ctx context.Context, record *Content) (*Content, error) {
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

// Update applies the non-zero fields of patch to the stored record and
// returns the merged result.
func (r *ContentsRepository) Update(ctx context.Context, id uuid.UUID, patch *Content) (*Content, error) {
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
		return nil, errContentNotFound(id)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a content record, reporting NotFound when id does not resolve.
func (r *ContentsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Content)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return errContentNotFound(id)
	}
	return nil
}

func errContentNotFound(id uuid.UUID) error {
	return goerrors.New("content not found", goerrors.CategoryNotFound).
		WithTextCode("CONTENT_NOT_FOUND").
		WithCode(goerrors.CodeNotFound).
		WithMetadata(map[string]any{"id": id.String()})
}
