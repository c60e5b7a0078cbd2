package blog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/blog"
	"github.com/amara-beauty/storefront-cms/internal/domain"
)

// Post aliases the public model for internal consumers.
type Post = blog.Post

// PostTranslation aliases the public model for internal consumers.
type PostTranslation = blog.PostTranslation

// PostMedia aliases the public model for internal consumers.
type PostMedia = blog.PostMedia

// PostFilters narrows post listings. VisibleAt gates on published_at when
// set; zero means no time gating.
type PostFilters struct {
	Status    domain.Status
	VisibleAt time.Time
	Limit     int
	Offset    int
}

// PostRepository persists blog post aggregates. Create and Update write the
// post row and its child rows atomically.
type PostRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, localeID uuid.UUID, slug string) (*Post, error)
	List(ctx context.Context, filters PostFilters) ([]*Post, error)
	Create(ctx context.Context, post *Post) (*Post, error)
	Update(ctx context.Context, post *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
