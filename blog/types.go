package blog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/amara-beauty/storefront-cms/locales"
)

// Post is the base record for a blog entry. Visibility requires
// status=published and published_at at or before the read time.
type Post struct {
	bun.BaseModel `bun:"table:blog_posts,alias:bp"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Status      string     `bun:"status,notnull,default:'draft'" json:"status"`
	PublishedAt *time.Time `bun:"published_at,nullzero" json:"published_at,omitempty"`
	CreatedBy   uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy   uuid.UUID  `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	DeletedAt   *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Translations []*PostTranslation `bun:"rel:has-many,join:id=post_id" json:"translations,omitempty"`
	Media        []*PostMedia       `bun:"rel:has-many,join:id=post_id" json:"media,omitempty"`
}

// PostTranslation carries the locale-specific post copy. BodyHTML stores
// rendered HTML; markdown-authored bodies are converted at write time.
type PostTranslation struct {
	bun.BaseModel `bun:"table:blog_post_translations,alias:bpt"`

	ID             uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PostID         uuid.UUID `bun:"post_id,notnull,type:uuid" json:"post_id"`
	LocaleID       uuid.UUID `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	Title          string    `bun:"title,notnull" json:"title"`
	Slug           *string   `bun:"slug" json:"slug,omitempty"`
	Excerpt        *string   `bun:"excerpt" json:"excerpt,omitempty"`
	BodyHTML       string    `bun:"body_html,notnull,default:''" json:"body_html"`
	SEOTitle       *string   `bun:"seo_title" json:"seo_title,omitempty"`
	SEODescription *string   `bun:"seo_description" json:"seo_description,omitempty"`
	OGImage        *string   `bun:"og_image" json:"og_image,omitempty"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Post   *Post           `bun:"rel:belongs-to,join:post_id=id" json:"post,omitempty"`
	Locale *locales.Locale `bun:"rel:belongs-to,join:locale_id=id" json:"locale,omitempty"`
}

// PostMedia is an ordered CDN image for a post; at most one row is flagged
// as the featured image.
type PostMedia struct {
	bun.BaseModel `bun:"table:blog_media,alias:bm"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	PostID     uuid.UUID `bun:"post_id,notnull,type:uuid" json:"post_id"`
	URL        string    `bun:"url,notnull" json:"url"`
	Path       string    `bun:"path" json:"path,omitempty"`
	Alt        *string   `bun:"alt" json:"alt,omitempty"`
	SortOrder  int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	IsFeatured bool      `bun:"is_featured,notnull,default:false" json:"is_featured"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// PostView is a locale-resolved post ready for rendering.
type PostView struct {
	ID             uuid.UUID  `json:"id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Excerpt        string     `json:"excerpt,omitempty"`
	BodyHTML       string     `json:"body_html,omitempty"`
	SEOTitle       string     `json:"seo_title,omitempty"`
	SEODescription string     `json:"seo_description,omitempty"`
	OGImage        string     `json:"og_image,omitempty"`
	FeaturedImage  string     `json:"featured_image,omitempty"`
	Images         []string   `json:"images,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
}

// TranslationForLocale picks the post translation matching localeID, or nil.
func TranslationForLocale(post *Post, localeID uuid.UUID) *PostTranslation {
	if post == nil {
		return nil
	}
	for _, tr := range post.Translations {
		if tr != nil && tr.LocaleID == localeID {
			return tr
		}
	}
	return nil
}

// ResolveSlug prefers any translation slug and falls back to the post id.
func ResolveSlug(post *Post, preferred *PostTranslation) string {
	if preferred != nil && preferred.Slug != nil && *preferred.Slug != "" {
		return *preferred.Slug
	}
	if post != nil {
		for _, tr := range post.Translations {
			if tr != nil && tr.Slug != nil && *tr.Slug != "" {
				return *tr.Slug
			}
		}
		return post.ID.String()
	}
	return ""
}
