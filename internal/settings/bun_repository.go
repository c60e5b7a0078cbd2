package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/amara-beauty/storefront-cms/settings"
)

// BunRepository implements Repository over bun.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository creates a settings repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) Get(ctx context.Context, key string) (*SiteSetting, error) {
	record := new(SiteSetting)
	err := r.db.NewSelect().
		Model(record).
		Where("ss.setting_key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &settings.NotFoundError{Key: key}
		}
		return nil, fmt.Errorf("settings repository error: %w", err)
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*SiteSetting, error) {
	var records []*SiteSetting
	err := r.db.NewSelect().
		Model(&records).
		OrderExpr("ss.setting_key ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings repository error: %w", err)
	}
	return records, nil
}

func (r *BunRepository) Upsert(ctx context.Context, setting *SiteSetting) (*SiteSetting, error) {
	existing := new(SiteSetting)
	err := r.db.NewSelect().Model(existing).Where("ss.setting_key = ?", setting.Key).Scan(ctx)
	switch {
	case err == nil:
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
		if _, err := r.db.NewUpdate().Model(setting).WherePK().Exec(ctx); err != nil {
			return nil, fmt.Errorf("settings repository error: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		if _, err := r.db.NewInsert().Model(setting).Exec(ctx); err != nil {
			return nil, fmt.Errorf("settings repository error: %w", err)
		}
	default:
		return nil, fmt.Errorf("settings repository error: %w", err)
	}
	return r.Get(ctx, setting.Key)
}

func (r *BunRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.NewDelete().
		Model((*SiteSetting)(nil)).
		Where("setting_key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("settings repository error: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &settings.NotFoundError{Key: key}
	}
	return nil
}
