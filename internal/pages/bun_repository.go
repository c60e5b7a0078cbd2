package pages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPageRepository implements PageRepository over bun. Writes touching a
// page and its sections run inside a single transaction so a failed section
// insert never leaves an orphaned page.
type BunPageRepository struct {
	db *bun.DB
}

// NewBunPageRepository creates a page repository backed by bun.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return &BunPageRepository{db: db}
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*PageDefinition, error) {
	record := new(PageDefinition)
	err := r.db.NewSelect().
		Model(record).
		Relation("Sections").
		Where("pd.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "page", Key: id.String()}
		}
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return record, nil
}

func (r *BunPageRepository) GetBySlug(ctx context.Context, localeID uuid.UUID, slug string) (*PageDefinition, error) {
	record := new(PageDefinition)
	err := r.db.NewSelect().
		Model(record).
		Relation("Sections").
		Where("pd.slug = ?", slug).
		Where("pd.locale_id = ?", localeID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "page", Key: slug}
		}
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return record, nil
}

func (r *BunPageRepository) List(ctx context.Context, filters PageFilters) ([]*PageDefinition, error) {
	var records []*PageDefinition
	query := r.db.NewSelect().
		Model(&records).
		Relation("Sections").
		OrderExpr("pd.slug ASC")

	if filters.LocaleID != nil {
		query = query.Where("pd.locale_id = ?", *filters.LocaleID)
	}
	if filters.PageType != "" {
		query = query.Where("pd.page_type = ?", filters.PageType)
	}
	if filters.Published != nil {
		query = query.Where("pd.is_published = ?", *filters.Published)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return records, nil
}

func (r *BunPageRepository) Create(ctx context.Context, page *PageDefinition) (*PageDefinition, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(page).Exec(ctx); err != nil {
			return err
		}
		if len(page.Sections) > 0 {
			if _, err := tx.NewInsert().Model(&page.Sections).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	return r.GetByID(ctx, page.ID)
}

func (r *BunPageRepository) Update(ctx context.Context, page *PageDefinition) (*PageDefinition, error) {
	result, err := r.db.NewUpdate().Model(page).WherePK().Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("page repository error: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, &NotFoundError{Resource: "page", Key: page.ID.String()}
	}
	return r.GetByID(ctx, page.ID)
}

func (r *BunPageRepository) ReplaceSections(ctx context.Context, pageID uuid.UUID, sections []*PageSection) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*PageSection)(nil)).Where("page_id = ?", pageID).Exec(ctx); err != nil {
			return err
		}
		if len(sections) > 0 {
			if _, err := tx.NewInsert().Model(&sections).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("page repository error: %w", err)
	}
	return nil
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// sqlite builds may run without foreign_keys, delete children first.
		if _, err := tx.NewDelete().Model((*PageSection)(nil)).Where("page_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		result, err := tx.NewDelete().Model((*PageDefinition)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return &NotFoundError{Resource: "page", Key: id.String()}
		}
		return nil
	})
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return err
		}
		return fmt.Errorf("page repository error: %w", err)
	}
	return nil
}

// BunStaticPageRepository implements StaticPageRepository over bun.
type BunStaticPageRepository struct {
	db *bun.DB
}

// NewBunStaticPageRepository creates a static page repository backed by bun.
func NewBunStaticPageRepository(db *bun.DB) *BunStaticPageRepository {
	return &BunStaticPageRepository{db: db}
}

func (r *BunStaticPageRepository) GetBySlug(ctx context.Context, slug string) (*StaticPage, error) {
	record := new(StaticPage)
	err := r.db.NewSelect().
		Model(record).
		Relation("Translations").
		Relation("Slots").
		Where("sp.slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "static page", Key: slug}
		}
		return nil, fmt.Errorf("static page repository error: %w", err)
	}
	return record, nil
}

func (r *BunStaticPageRepository) Upsert(ctx context.Context, page *StaticPage) (*StaticPage, error) {
	existing := new(StaticPage)
	err := r.db.NewSelect().Model(existing).Where("sp.slug = ?", page.Slug).Scan(ctx)
	switch {
	case err == nil:
		page.ID = existing.ID
		if _, err := r.db.NewUpdate().Model(page).WherePK().Exec(ctx); err != nil {
			return nil, fmt.Errorf("static page repository error: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		if _, err := r.db.NewInsert().Model(page).Exec(ctx); err != nil {
			return nil, fmt.Errorf("static page repository error: %w", err)
		}
	default:
		return nil, fmt.Errorf("static page repository error: %w", err)
	}
	return r.GetBySlug(ctx, page.Slug)
}

func (r *BunStaticPageRepository) UpsertSlot(ctx context.Context, slot *StaticPageSlot) (*StaticPageSlot, error) {
	existing := new(StaticPageSlot)
	err := r.db.NewSelect().
		Model(existing).
		Where("sps.static_page_id = ?", slot.StaticPageID).
		Where("sps.locale_id = ?", slot.LocaleID).
		Where("sps.slot_key = ?", slot.Key).
		Scan(ctx)
	switch {
	case err == nil:
		slot.ID = existing.ID
		slot.CreatedAt = existing.CreatedAt
		if _, err := r.db.NewUpdate().Model(slot).WherePK().Exec(ctx); err != nil {
			return nil, fmt.Errorf("static page repository error: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		if _, err := r.db.NewInsert().Model(slot).Exec(ctx); err != nil {
			return nil, fmt.Errorf("static page repository error: %w", err)
		}
	default:
		return nil, fmt.Errorf("static page repository error: %w", err)
	}
	return slot, nil
}
