package pages

import (
	"context"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/pages"
)

// Model aliases for internal consumers.
type (
	PageDefinition        = pages.PageDefinition
	PageSection           = pages.PageSection
	StaticPage            = pages.StaticPage
	StaticPageTranslation = pages.StaticPageTranslation
	StaticPageSlot        = pages.StaticPageSlot
	NotFoundError         = pages.NotFoundError
)

// PageFilters narrows page definition listings.
type PageFilters struct {
	LocaleID  *uuid.UUID
	PageType  string
	Published *bool
}

// PageRepository persists page definitions and their sections. Create and
// ReplaceSections write the page row and its section rows atomically.
type PageRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PageDefinition, error)
	GetBySlug(ctx context.Context, localeID uuid.UUID, slug string) (*PageDefinition, error)
	List(ctx context.Context, filters PageFilters) ([]*PageDefinition, error)
	Create(ctx context.Context, page *PageDefinition) (*PageDefinition, error)
	Update(ctx context.Context, page *PageDefinition) (*PageDefinition, error)
	ReplaceSections(ctx context.Context, pageID uuid.UUID, sections []*PageSection) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaticPageRepository persists slot-driven static pages.
type StaticPageRepository interface {
	GetBySlug(ctx context.Context, slug string) (*StaticPage, error)
	Upsert(ctx context.Context, page *StaticPage) (*StaticPage, error)
	UpsertSlot(ctx context.Context, slot *StaticPageSlot) (*StaticPageSlot, error)
}
