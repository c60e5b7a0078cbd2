package pages

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/amara-beauty/storefront-cms/locales"
)

// PageType classifies a page definition.
const (
	PageTypeHome    = "home"
	PageTypeAbout   = "about"
	PageTypeLanding = "landing"
	PageTypeCustom  = "custom"
)

// PageDefinition is a (slug, locale)-addressed page owning ordered sections.
type PageDefinition struct {
	bun.BaseModel `bun:"table:page_definitions,alias:pd"`

	ID             uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Slug           string     `bun:"slug,notnull" json:"slug"`
	LocaleID       uuid.UUID  `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	Title          string     `bun:"title,notnull" json:"title"`
	PageType       string     `bun:"page_type,notnull,default:'custom'" json:"page_type"`
	RoutePattern   *string    `bun:"route_pattern" json:"route_pattern,omitempty"`
	SEOTitle       *string    `bun:"seo_title" json:"seo_title,omitempty"`
	SEODescription *string    `bun:"seo_description" json:"seo_description,omitempty"`
	OGImage        *string    `bun:"og_image" json:"og_image,omitempty"`
	SEOKeywords    *string    `bun:"seo_keywords" json:"seo_keywords,omitempty"`
	IsPublished    bool       `bun:"is_published,notnull,default:false" json:"is_published"`
	PublishedAt    *time.Time `bun:"published_at,nullzero" json:"published_at,omitempty"`
	CreatedBy      uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy      uuid.UUID  `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Locale   *locales.Locale `bun:"rel:belongs-to,join:locale_id=id" json:"locale,omitempty"`
	Sections []*PageSection  `bun:"rel:has-many,join:id=page_id" json:"sections,omitempty"`
}

// PageSection is a typed, positioned, enable-able unit of page content.
// Config holds the raw payload; DecodeConfig turns it into the typed
// variant for its section type.
type PageSection struct {
	bun.BaseModel `bun:"table:page_sections,alias:ps"`

	ID        uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	PageID    uuid.UUID       `bun:"page_id,notnull,type:uuid" json:"page_id"`
	Type      SectionType     `bun:"section_type,notnull" json:"section_type"`
	Position  int             `bun:"position,notnull,default:0" json:"position"`
	IsEnabled bool            `bun:"is_enabled,notnull,default:true" json:"is_enabled"`
	Config    json.RawMessage `bun:"config,type:jsonb" json:"config,omitempty"`
	CreatedAt time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Page *PageDefinition `bun:"rel:belongs-to,join:page_id=id" json:"page,omitempty"`
}

// StaticPage anchors slot-driven pages (home, about) that are not fully
// page-builder managed.
type StaticPage struct {
	bun.BaseModel `bun:"table:static_pages,alias:sp"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Slug      string    `bun:"slug,notnull" json:"slug"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Translations []*StaticPageTranslation `bun:"rel:has-many,join:id=static_page_id" json:"translations,omitempty"`
	Slots        []*StaticPageSlot        `bun:"rel:has-many,join:id=static_page_id" json:"slots,omitempty"`
}

// StaticPageTranslation carries per-locale SEO overrides for a static page.
type StaticPageTranslation struct {
	bun.BaseModel `bun:"table:static_page_translations,alias:spt"`

	ID             uuid.UUID `bun:",pk,type:uuid" json:"id"`
	StaticPageID   uuid.UUID `bun:"static_page_id,notnull,type:uuid" json:"static_page_id"`
	LocaleID       uuid.UUID `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	SEOTitle       *string   `bun:"seo_title" json:"seo_title,omitempty"`
	SEODescription *string   `bun:"seo_description" json:"seo_description,omitempty"`
	OGImage        *string   `bun:"og_image" json:"og_image,omitempty"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// StaticPageSlot is one keyed string of copy for a static page and locale.
type StaticPageSlot struct {
	bun.BaseModel `bun:"table:static_page_slots,alias:sps"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	StaticPageID uuid.UUID `bun:"static_page_id,notnull,type:uuid" json:"static_page_id"`
	LocaleID     uuid.UUID `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	Key          string    `bun:"slot_key,notnull" json:"slot_key"`
	Value        string    `bun:"value,notnull,default:''" json:"value"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
