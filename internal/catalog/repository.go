package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/catalog"
	"github.com/amara-beauty/storefront-cms/internal/domain"
)

type (
	Product             = catalog.Product
	ProductTranslation  = catalog.ProductTranslation
	ProductMedia        = catalog.ProductMedia
	ProductLink         = catalog.ProductLink
	Category            = catalog.Category
	CategoryTranslation = catalog.CategoryTranslation
	NotFoundError       = catalog.NotFoundError
)

// ProductFilters narrows product list queries. Nil pointer fields are
// ignored; Status defaults to published for storefront reads.
type ProductFilters struct {
	Status     domain.Status
	CategoryID *uuid.UUID
	Featured   *bool
	BestSeller *bool
	Limit      int
}

// ProductRepository persists products with their translations, media, and
// buy links. Implementations load the full aggregate on reads and replace
// child rows transactionally on writes.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// GetBySlug resolves a product whose translation slug matches for the
	// given locale.
	GetBySlug(ctx context.Context, localeID uuid.UUID, slug string) (*Product, error)
	List(ctx context.Context, filters ProductFilters) ([]*Product, error)
	Create(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, product *Product) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository persists the category tree.
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	ListRoots(ctx context.Context) ([]*Category, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Category, error)
	Create(ctx context.Context, category *Category) (*Category, error)
	Update(ctx context.Context, category *Category) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
