package locales

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/amara-beauty/storefront-cms/locales"
)

// Locale re-exports the registry model for internal consumers.
type Locale = locales.Locale

// Repository exposes the persisted locale registry.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Locale, error)
	GetByCode(ctx context.Context, code string) (*Locale, error)
	List(ctx context.Context) ([]*Locale, error)
	Upsert(ctx context.Context, locale *Locale) (*Locale, error)
}

// NewLocaleRepository creates the generic bun repository for Locale rows.
func NewLocaleRepository(db *bun.DB) repository.Repository[*Locale] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Locale]{
		NewRecord: func() *Locale { return &Locale{} },
		GetID: func(l *Locale) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Locale, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *Locale) string {
			return l.Code
		},
	})
}

// BunRepository implements Repository over bun.
type BunRepository struct {
	repo repository.Repository[*Locale]
}

// NewBunRepository creates a locale repository backed by bun.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a locale repository with optional
// read-through caching. Locale rows are tiny and read on every request, so
// they are the one aggregate worth caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewLocaleRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Locale, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) GetByCode(ctx context.Context, code string) (*Locale, error) {
	record, err := r.repo.GetByIdentifier(ctx, locales.Normalize(code))
	if err != nil {
		return nil, mapRepositoryError(err, code)
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Locale, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunRepository) Upsert(ctx context.Context, locale *Locale) (*Locale, error) {
	if existing, err := r.repo.GetByIdentifier(ctx, locale.Code); err == nil && existing != nil {
		locale.ID = existing.ID
		return r.repo.Update(ctx, locale)
	}
	return r.repo.Create(ctx, locale)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return locales.ErrUnknownLocale
	}
	return err
}
