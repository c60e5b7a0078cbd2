package navigation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunItemRepository implements ItemRepository over bun.
type BunItemRepository struct {
	db *bun.DB
}

// NewBunItemRepository creates a navigation repository backed by bun.
func NewBunItemRepository(db *bun.DB) *BunItemRepository {
	return &BunItemRepository{db: db}
}

func (r *BunItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	record := new(Item)
	err := r.db.NewSelect().
		Model(record).
		Where("ni.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "item", Key: id.String()}
		}
		return nil, fmt.Errorf("navigation repository error: %w", err)
	}
	return record, nil
}

func (r *BunItemRepository) List(ctx context.Context, filters ItemFilters) ([]*Item, error) {
	var records []*Item
	query := r.db.NewSelect().
		Model(&records).
		OrderExpr("ni.position ASC").
		OrderExpr("ni.created_at ASC")

	if filters.LocaleID != nil {
		query = query.Where("ni.locale_id = ?", *filters.LocaleID)
	}
	if filters.Group != "" {
		query = query.Where("ni.nav_group = ?", filters.Group)
	}
	if filters.EnabledOnly {
		query = query.Where("ni.is_enabled = ?", true)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("navigation repository error: %w", err)
	}
	return records, nil
}

func (r *BunItemRepository) Create(ctx context.Context, item *Item) (*Item, error) {
	if _, err := r.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return nil, fmt.Errorf("navigation repository error: %w", err)
	}
	return r.GetByID(ctx, item.ID)
}

func (r *BunItemRepository) Update(ctx context.Context, item *Item) (*Item, error) {
	result, err := r.db.NewUpdate().Model(item).WherePK().Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("navigation repository error: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, &NotFoundError{Resource: "item", Key: item.ID.String()}
	}
	return r.GetByID(ctx, item.ID)
}

// ApplyPositions runs every position update in one transaction.
func (r *BunItemRepository) ApplyPositions(ctx context.Context, updates []PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, update := range updates {
			query := tx.NewUpdate().
				Model((*Item)(nil)).
				Set("position = ?", update.Position).
				Set("updated_at = CURRENT_TIMESTAMP").
				Where("id = ?", update.ID)
			if update.ParentID != nil {
				query = query.Set("parent_id = ?", *update.ParentID)
			}
			result, err := query.Exec(ctx)
			if err != nil {
				return err
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return &NotFoundError{Resource: "item", Key: update.ID.String()}
			}
		}
		return nil
	})
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return err
		}
		return fmt.Errorf("navigation repository error: %w", err)
	}
	return nil
}

// Delete removes the listed items in one transaction.
func (r *BunItemRepository) Delete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewDelete().
			Model((*Item)(nil)).
			Where("id IN (?)", bun.In(ids)).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return &NotFoundError{Resource: "item", Key: ids[0].String()}
		}
		return nil
	})
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return err
		}
		return fmt.Errorf("navigation repository error: %w", err)
	}
	return nil
}
