package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/amara-beauty/storefront-cms/locales"
)

// Product is the base record for a catalog item. Locale-specific fields live
// in ProductTranslation; the base row carries the fallback price and flags.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID           uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Status       string     `bun:"status,notnull,default:'draft'" json:"status"`
	BasePrice    int64      `bun:"base_price,notnull,default:0" json:"base_price"`
	Currency     string     `bun:"currency,notnull,default:'VND'" json:"currency"`
	CategoryID   *uuid.UUID `bun:"category_id,type:uuid" json:"category_id,omitempty"`
	SortOrder    int        `bun:"sort_order,notnull,default:0" json:"sort_order"`
	IsFeatured   bool       `bun:"is_featured,notnull,default:false" json:"is_featured"`
	IsBestSeller bool       `bun:"is_best_seller,notnull,default:false" json:"is_best_seller"`
	CreatedBy    uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy    uuid.UUID  `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	DeletedAt    *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Category     *Category             `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	Translations []*ProductTranslation `bun:"rel:has-many,join:id=product_id" json:"translations,omitempty"`
	Media        []*ProductMedia       `bun:"rel:has-many,join:id=product_id" json:"media,omitempty"`
	Links        []*ProductLink        `bun:"rel:has-many,join:id=product_id" json:"links,omitempty"`
}

// ProductTranslation carries the locale-specific product copy. Every field
// besides Name may be absent and fall back to the base record.
type ProductTranslation struct {
	bun.BaseModel `bun:"table:product_translations,alias:pt"`

	ID               uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ProductID        uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	LocaleID         uuid.UUID `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	Name             string    `bun:"name,notnull" json:"name"`
	Slug             *string   `bun:"slug" json:"slug,omitempty"`
	ShortDescription *string   `bun:"short_description" json:"short_description,omitempty"`
	LongDescription  *string   `bun:"long_description" json:"long_description,omitempty"`
	PriceOverride    *int64    `bun:"price_override" json:"price_override,omitempty"`
	Benefits         []string  `bun:"benefits,type:jsonb" json:"benefits,omitempty"`
	Ingredients      []string  `bun:"ingredients,type:jsonb" json:"ingredients,omitempty"`
	HowToUse         *string   `bun:"how_to_use" json:"how_to_use,omitempty"`
	CreatedAt        time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Product *Product        `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
	Locale  *locales.Locale `bun:"rel:belongs-to,join:locale_id=id" json:"locale,omitempty"`
}

// ProductMedia is an ordered CDN image for a product. The first row renders
// as the primary image, the second as the hover image.
type ProductMedia struct {
	bun.BaseModel `bun:"table:product_media,alias:pm"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ProductID uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id"`
	URL       string    `bun:"url,notnull" json:"url"`
	Path      string    `bun:"path" json:"path,omitempty"`
	Alt       *string   `bun:"alt" json:"alt,omitempty"`
	SortOrder int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// ProductLink is an external buy link on a commerce platform. LocaleID is
// nil when the link applies to every locale; Label overrides the platform
// default label when set.
type ProductLink struct {
	bun.BaseModel `bun:"table:product_external_links,alias:pl"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	ProductID uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id"`
	Platform  Platform   `bun:"platform,notnull" json:"platform"`
	URL       string     `bun:"url,notnull" json:"url"`
	LocaleID  *uuid.UUID `bun:"locale_id,type:uuid" json:"locale_id,omitempty"`
	Label     *string    `bun:"label" json:"label,omitempty"`
	SortOrder int        `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Category groups products into a parent_id tree.
type Category struct {
	bun.BaseModel `bun:"table:product_categories,alias:c"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Slug      string     `bun:"slug,notnull" json:"slug"`
	ParentID  *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	SortOrder int        `bun:"sort_order,notnull,default:0" json:"sort_order"`
	IsEnabled bool       `bun:"is_enabled,notnull,default:true" json:"is_enabled"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Parent       *Category              `bun:"rel:belongs-to,join:parent_id=id" json:"parent,omitempty"`
	Children     []*Category            `bun:"rel:has-many,join:id=parent_id" json:"children,omitempty"`
	Translations []*CategoryTranslation `bun:"rel:has-many,join:id=category_id" json:"translations,omitempty"`
}

// CategoryTranslation carries the locale-specific category copy.
type CategoryTranslation struct {
	bun.BaseModel `bun:"table:product_category_translations,alias:ct"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CategoryID  uuid.UUID `bun:"category_id,notnull,type:uuid" json:"category_id"`
	LocaleID    uuid.UUID `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description *string   `bun:"description" json:"description,omitempty"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Locale *locales.Locale `bun:"rel:belongs-to,join:locale_id=id" json:"locale,omitempty"`
}
