package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/amara-beauty/storefront-cms/media"
)

// BunAssetRepository implements AssetRepository over bun.
type BunAssetRepository struct {
	db *bun.DB
}

// NewBunAssetRepository creates an asset repository backed by bun.
func NewBunAssetRepository(db *bun.DB) *BunAssetRepository {
	return &BunAssetRepository{db: db}
}

func (r *BunAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	record := new(Asset)
	err := r.db.NewSelect().
		Model(record).
		Where("ma.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &media.NotFoundError{Resource: "asset", Key: id.String()}
		}
		return nil, fmt.Errorf("media repository error: %w", err)
	}
	return record, nil
}

func (r *BunAssetRepository) List(ctx context.Context, filters AssetFilters) ([]*Asset, error) {
	var records []*Asset
	query := r.db.NewSelect().
		Model(&records).
		OrderExpr("ma.created_at DESC")

	if filters.FolderID != nil {
		query = query.Where("ma.folder_id = ?", *filters.FolderID)
	}
	if filters.MimeType != "" {
		query = query.Where("ma.mime_type LIKE ?", filters.MimeType+"%")
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("media repository error: %w", err)
	}
	return records, nil
}

func (r *BunAssetRepository) Create(ctx context.Context, asset *Asset) (*Asset, error) {
	if _, err := r.db.NewInsert().Model(asset).Exec(ctx); err != nil {
		return nil, fmt.Errorf("media repository error: %w", err)
	}
	return r.GetByID(ctx, asset.ID)
}

func (r *BunAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*Asset)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("media repository error: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("media repository error: %w", err)
	}
	if affected == 0 {
		return &media.NotFoundError{Resource: "asset", Key: id.String()}
	}
	return nil
}

// BunFolderRepository implements FolderRepository over bun.
type BunFolderRepository struct {
	db *bun.DB
}

// NewBunFolderRepository creates a folder repository backed by bun.
func NewBunFolderRepository(db *bun.DB) *BunFolderRepository {
	return &BunFolderRepository{db: db}
}

func (r *BunFolderRepository) GetByID(ctx context.Context, id uuid.UUID) (*Folder, error) {
	record := new(Folder)
	err := r.db.NewSelect().
		Model(record).
		Where("mf.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &media.NotFoundError{Resource: "folder", Key: id.String()}
		}
		return nil, fmt.Errorf("media repository error: %w", err)
	}
	return record, nil
}

func (r *BunFolderRepository) List(ctx context.Context) ([]*Folder, error) {
	var records []*Folder
	err := r.db.NewSelect().
		Model(&records).
		OrderExpr("mf.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("media repository error: %w", err)
	}
	return records, nil
}

func (r *BunFolderRepository) Create(ctx context.Context, folder *Folder) (*Folder, error) {
	if _, err := r.db.NewInsert().Model(folder).Exec(ctx); err != nil {
		return nil, fmt.Errorf("media repository error: %w", err)
	}
	return r.GetByID(ctx, folder.ID)
}

func (r *BunFolderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*Folder)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("media repository error: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("media repository error: %w", err)
	}
	if affected == 0 {
		return &media.NotFoundError{Resource: "folder", Key: id.String()}
	}
	return nil
}
