package blog

import (
	"context"
	"sort"
	"strings"
	"time"

	slugpkg "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/blog"
	"github.com/amara-beauty/storefront-cms/internal/domain"
	"github.com/amara-beauty/storefront-cms/internal/locales"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/internal/markdown"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// Body formats accepted by post mutations.
const (
	BodyFormatMarkdown = "markdown"
	BodyFormatHTML     = "html"
)

// ListOptions paginates public post listings.
type ListOptions struct {
	Limit  int
	Offset int
}

// Service exposes blog reads for the storefront and post mutations for the
// admin application.
type Service interface {
	ListPosts(ctx context.Context, locale string, opts ListOptions) ([]blog.PostView, error)
	GetPostBySlug(ctx context.Context, locale string, slugOrID string) (*blog.PostView, error)

	CreatePost(ctx context.Context, input CreatePostInput) (*Post, error)
	UpdatePost(ctx context.Context, input UpdatePostInput) (*Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	PublishPost(ctx context.Context, id uuid.UUID) (*Post, error)
	UnpublishPost(ctx context.Context, id uuid.UUID) (*Post, error)
}

// TranslationInput carries one locale of post copy. Body is interpreted
// according to BodyFormat; markdown is rendered to HTML before storage.
type TranslationInput struct {
	Locale         string
	Title          string
	Slug           *string
	Excerpt        *string
	Body           string
	BodyFormat     string
	SEOTitle       *string
	SEODescription *string
	OGImage        *string
}

// MediaInput carries one ordered post image.
type MediaInput struct {
	URL        string
	Path       string
	Alt        *string
	SortOrder  int
	IsFeatured bool
}

// CreatePostInput captures the payload required to create a post.
type CreatePostInput struct {
	ID           *uuid.UUID
	Status       string
	PublishedAt  *time.Time
	CreatedBy    uuid.UUID
	UpdatedBy    uuid.UUID
	Translations []TranslationInput
	Media        []MediaInput
}

// UpdatePostInput captures the mutable fields for a post. Translations and
// media replace the stored aggregate wholesale.
type UpdatePostInput struct {
	ID           uuid.UUID
	Status       string
	PublishedAt  *time.Time
	UpdatedBy    uuid.UUID
	Translations []TranslationInput
	Media        []MediaInput
}

// ServiceOption customises the blog service.
type ServiceOption func(*service)

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides id generation, used by tests.
func WithIDGenerator(id func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if id != nil {
			s.id = id
		}
	}
}

type service struct {
	posts    PostRepository
	locales  locales.Repository
	renderer *markdown.Renderer
	logger   interfaces.Logger
	now      func() time.Time
	id       func() uuid.UUID
}

// NewService constructs a blog service with the required dependencies.
func NewService(posts PostRepository, localeRepo locales.Repository, opts ...ServiceOption) Service {
	s := &service{
		posts:    posts,
		locales:  localeRepo,
		renderer: markdown.NewRenderer(),
		logger:   logging.NoOp(),
		now:      time.Now,
		id:       uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPosts returns visible posts newest first. A post is visible once its
// status is published and published_at is at or before the read time. Store
// failures degrade to an empty list.
func (s *service) ListPosts(ctx context.Context, locale string, opts ListOptions) ([]blog.PostView, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, blog.ErrUnknownLocale
	}

	records, err := s.posts.List(ctx, PostFilters{
		Status:    domain.StatusPublished,
		VisibleAt: s.now(),
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	})
	if err != nil {
		s.logger.Error("blog.list_posts.query_failed", "error", err, "locale", locale)
		return []blog.PostView{}, nil
	}

	views := make([]blog.PostView, 0, len(records))
	for _, record := range records {
		views = append(views, postView(record, loc.ID))
	}
	return views, nil
}

// GetPostBySlug resolves slugOrID against translation slugs first, then
// against the post id when the input parses as a UUID. A miss or a post not
// yet visible returns nil without an error.
func (s *service) GetPostBySlug(ctx context.Context, locale string, slugOrID string) (*blog.PostView, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, blog.ErrUnknownLocale
	}

	trimmed := strings.TrimSpace(slugOrID)
	if trimmed == "" {
		return nil, nil
	}

	record, err := s.posts.GetBySlug(ctx, loc.ID, trimmed)
	if err != nil && !blog.IsNotFound(err) {
		s.logger.Error("blog.get_post.query_failed", "error", err, "slug", trimmed)
		return nil, nil
	}

	if record == nil {
		id, parseErr := uuid.Parse(trimmed)
		if parseErr != nil {
			return nil, nil
		}
		record, err = s.posts.GetByID(ctx, id)
		if err != nil {
			if blog.IsNotFound(err) {
				return nil, nil
			}
			s.logger.Error("blog.get_post.query_failed", "error", err, "id", trimmed)
			return nil, nil
		}
	}

	if !s.visible(record) {
		return nil, nil
	}

	view := postView(record, loc.ID)
	return &view, nil
}

// CreatePost validates and persists a post aggregate in one transaction.
func (s *service) CreatePost(ctx context.Context, input CreatePostInput) (*Post, error) {
	if len(input.Translations) == 0 {
		return nil, blog.ErrTitleRequired
	}

	now := s.now()
	record := &Post{
		ID:          s.id(),
		Status:      string(domain.NormalizeStatus(input.Status)),
		PublishedAt: input.PublishedAt,
		CreatedBy:   input.CreatedBy,
		UpdatedBy:   input.UpdatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.ID != nil {
		record.ID = *input.ID
	}
	if record.Status == string(domain.StatusPublished) && record.PublishedAt == nil {
		record.PublishedAt = &now
	}

	translations, err := s.buildTranslations(ctx, record.ID, input.Translations, now)
	if err != nil {
		return nil, err
	}
	record.Translations = translations
	record.Media = buildMedia(s.id, record.ID, input.Media, now)

	return s.posts.Create(ctx, record)
}

// UpdatePost replaces the post aggregate in one transaction.
func (s *service) UpdatePost(ctx context.Context, input UpdatePostInput) (*Post, error) {
	if input.ID == uuid.Nil {
		return nil, blog.ErrPostIDRequired
	}
	if len(input.Translations) == 0 {
		return nil, blog.ErrTitleRequired
	}

	existing, err := s.posts.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &Post{
		ID:          existing.ID,
		Status:      string(domain.NormalizeStatus(input.Status)),
		PublishedAt: input.PublishedAt,
		CreatedBy:   existing.CreatedBy,
		UpdatedBy:   input.UpdatedBy,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   now,
	}
	if record.Status == string(domain.StatusPublished) && record.PublishedAt == nil {
		record.PublishedAt = existing.PublishedAt
		if record.PublishedAt == nil {
			record.PublishedAt = &now
		}
	}

	translations, err := s.buildTranslations(ctx, record.ID, input.Translations, now)
	if err != nil {
		return nil, err
	}
	record.Translations = translations
	record.Media = buildMedia(s.id, record.ID, input.Media, now)

	return s.posts.Update(ctx, record)
}

func (s *service) DeletePost(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return blog.ErrPostIDRequired
	}
	return s.posts.Delete(ctx, id)
}

// PublishPost marks the post published and stamps published_at on the first
// transition. Publishing an already published post is a no-op.
func (s *service) PublishPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	if id == uuid.Nil {
		return nil, blog.ErrPostIDRequired
	}
	record, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status == string(domain.StatusPublished) {
		return record, nil
	}

	now := s.now()
	record.Status = string(domain.StatusPublished)
	if record.PublishedAt == nil {
		record.PublishedAt = &now
	}
	record.UpdatedAt = now
	return s.posts.Update(ctx, record)
}

// UnpublishPost reverts the post to draft. Unpublishing a draft is a no-op.
func (s *service) UnpublishPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	if id == uuid.Nil {
		return nil, blog.ErrPostIDRequired
	}
	record, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != string(domain.StatusPublished) {
		return record, nil
	}

	record.Status = string(domain.StatusDraft)
	record.UpdatedAt = s.now()
	return s.posts.Update(ctx, record)
}

func (s *service) visible(record *Post) bool {
	if record == nil || record.Status != string(domain.StatusPublished) {
		return false
	}
	return record.PublishedAt != nil && !record.PublishedAt.After(s.now())
}

func (s *service) buildTranslations(ctx context.Context, postID uuid.UUID, inputs []TranslationInput, now time.Time) ([]*PostTranslation, error) {
	seen := map[string]struct{}{}
	translations := make([]*PostTranslation, 0, len(inputs))
	for _, input := range inputs {
		code := strings.TrimSpace(input.Locale)
		if _, ok := seen[code]; ok {
			return nil, blog.ErrDuplicateLocale
		}
		loc, err := s.locales.GetByCode(ctx, code)
		if err != nil {
			return nil, blog.ErrUnknownLocale
		}
		if strings.TrimSpace(input.Title) == "" {
			return nil, blog.ErrTitleRequired
		}

		body, err := s.renderBody(input.Body, input.BodyFormat)
		if err != nil {
			return nil, err
		}

		slug := input.Slug
		if slug != nil {
			normalized, err := slugpkg.Normalize(*slug)
			if err != nil || !slugpkg.IsValid(normalized) {
				return nil, blog.ErrSlugInvalid
			}
			slug = &normalized
		}

		translations = append(translations, &PostTranslation{
			ID:             s.id(),
			PostID:         postID,
			LocaleID:       loc.ID,
			Title:          input.Title,
			Slug:           slug,
			Excerpt:        input.Excerpt,
			BodyHTML:       body,
			SEOTitle:       input.SEOTitle,
			SEODescription: input.SEODescription,
			OGImage:        input.OGImage,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		seen[code] = struct{}{}
	}
	return translations, nil
}

func (s *service) renderBody(body, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", BodyFormatHTML:
		return body, nil
	case BodyFormatMarkdown:
		return s.renderer.Render([]byte(body))
	default:
		return "", blog.ErrBodyFormatUnknown
	}
}

func postView(record *Post, localeID uuid.UUID) blog.PostView {
	tr := blog.TranslationForLocale(record, localeID)
	view := blog.PostView{
		ID:          record.ID,
		Slug:        blog.ResolveSlug(record, tr),
		PublishedAt: record.PublishedAt,
	}
	if tr != nil {
		view.Title = tr.Title
		view.BodyHTML = tr.BodyHTML
		if tr.Excerpt != nil {
			view.Excerpt = *tr.Excerpt
		}
		if tr.SEOTitle != nil {
			view.SEOTitle = *tr.SEOTitle
		}
		if tr.SEODescription != nil {
			view.SEODescription = *tr.SEODescription
		}
		if tr.OGImage != nil {
			view.OGImage = *tr.OGImage
		}
	}

	media := make([]*PostMedia, 0, len(record.Media))
	for _, m := range record.Media {
		if m != nil {
			media = append(media, m)
		}
	}
	for _, m := range media {
		if m.IsFeatured && view.FeaturedImage == "" {
			view.FeaturedImage = m.URL
		}
	}
	if len(media) > 0 {
		ordered := orderedMedia(media)
		view.Images = make([]string, 0, len(ordered))
		for _, m := range ordered {
			view.Images = append(view.Images, m.URL)
		}
		if view.FeaturedImage == "" {
			view.FeaturedImage = ordered[0].URL
		}
	}
	return view
}

func orderedMedia(media []*PostMedia) []*PostMedia {
	ordered := make([]*PostMedia, len(media))
	copy(ordered, media)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})
	return ordered
}

func buildMedia(id func() uuid.UUID, postID uuid.UUID, inputs []MediaInput, now time.Time) []*PostMedia {
	media := make([]*PostMedia, 0, len(inputs))
	for _, input := range inputs {
		media = append(media, &PostMedia{
			ID:         id(),
			PostID:     postID,
			URL:        input.URL,
			Path:       input.Path,
			Alt:        input.Alt,
			SortOrder:  input.SortOrder,
			IsFeatured: input.IsFeatured,
			CreatedAt:  now,
		})
	}
	return media
}
