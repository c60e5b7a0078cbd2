package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	slugpkg "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/locales"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/internal/validation"
	"github.com/amara-beauty/storefront-cms/pages"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// SectionView is one decoded, render-ready section.
type SectionView struct {
	ID       uuid.UUID           `json:"id"`
	Type     pages.SectionType   `json:"section_type"`
	Position int                 `json:"position"`
	Config   pages.SectionConfig `json:"config"`
}

// PageContent is a locale-resolved page with its ordered enabled sections.
type PageContent struct {
	ID             uuid.UUID     `json:"id"`
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	PageType       string        `json:"page_type"`
	SEOTitle       string        `json:"seo_title,omitempty"`
	SEODescription string        `json:"seo_description,omitempty"`
	OGImage        string        `json:"og_image,omitempty"`
	SEOKeywords    string        `json:"seo_keywords,omitempty"`
	Sections       []SectionView `json:"sections"`
}

// SectionInput carries one section payload for a page mutation.
type SectionInput struct {
	Type      string
	Position  int
	IsEnabled bool
	Config    json.RawMessage
}

// CreatePageInput captures the payload required to create a page.
type CreatePageInput struct {
	ID             *uuid.UUID
	Slug           string
	Locale         string
	Title          string
	PageType       string
	RoutePattern   *string
	SEOTitle       *string
	SEODescription *string
	OGImage        *string
	SEOKeywords    *string
	IsPublished    bool
	CreatedBy      uuid.UUID
	UpdatedBy      uuid.UUID
	Sections       []SectionInput
}

// UpdatePageInput captures the mutable fields for a page. Sections replace
// the stored set wholesale when non-nil; nil leaves them untouched.
type UpdatePageInput struct {
	ID              uuid.UUID
	Title           string
	PageType        string
	RoutePattern    *string
	SEOTitle        *string
	SEODescription  *string
	OGImage         *string
	SEOKeywords     *string
	UpdatedBy       uuid.UUID
	Sections        []SectionInput
	ReplaceSections bool
}

// Service exposes page-builder reads for the storefront and page mutations
// for the admin application.
type Service interface {
	GetPageContent(ctx context.Context, locale string, slug string) (*PageContent, error)
	ListPages(ctx context.Context, locale string) ([]*PageDefinition, error)

	CreatePage(ctx context.Context, input CreatePageInput) (*PageDefinition, error)
	UpdatePage(ctx context.Context, input UpdatePageInput) (*PageDefinition, error)
	DeletePage(ctx context.Context, id uuid.UUID) error
	PublishPage(ctx context.Context, id uuid.UUID) (*PageDefinition, error)
	UnpublishPage(ctx context.Context, id uuid.UUID) (*PageDefinition, error)
}

// ServiceOption customises the pages service.
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

// WithSectionValidator overrides the compiled section schema set.
func WithSectionValidator(validator *validation.SectionValidator) ServiceOption {
	return func(s *service) {
		if validator != nil {
			s.validator = validator
		}
	}
}

type service struct {
	repo      PageRepository
	locales   locales.Repository
	validator *validation.SectionValidator
	logger    interfaces.Logger
	now       func() time.Time
	id        func() uuid.UUID
}

// NewService constructs a pages service with the required dependencies.
func NewService(repo PageRepository, localeRepo locales.Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:      repo,
		locales:   localeRepo,
		validator: validation.MustNewSectionValidator(),
		logger:    logging.NoOp(),
		now:       time.Now,
		id:        uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPageContent returns the published page for (locale, slug) with its
// enabled sections decoded and ordered. A miss or an unpublished page
// returns nil without an error; sections with an unrecognized type or an
// undecodable config are skipped with a warning, never failing the page.
func (s *service) GetPageContent(ctx context.Context, locale string, slug string) (*PageContent, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, pages.ErrUnknownLocale
	}

	record, err := s.repo.GetBySlug(ctx, loc.ID, strings.TrimSpace(slug))
	if err != nil {
		if pages.IsNotFound(err) {
			return nil, nil
		}
		s.logger.Error("pages.get_content.query_failed", "error", err, "slug", slug, "locale", locale)
		return nil, nil
	}
	if !record.IsPublished {
		return nil, nil
	}

	content := &PageContent{
		ID:       record.ID,
		Slug:     record.Slug,
		Title:    record.Title,
		PageType: record.PageType,
		Sections: []SectionView{},
	}
	if record.SEOTitle != nil {
		content.SEOTitle = *record.SEOTitle
	}
	if record.SEODescription != nil {
		content.SEODescription = *record.SEODescription
	}
	if record.OGImage != nil {
		content.OGImage = *record.OGImage
	}
	if record.SEOKeywords != nil {
		content.SEOKeywords = *record.SEOKeywords
	}

	for _, section := range orderedSections(record.Sections) {
		if !section.IsEnabled {
			continue
		}
		tag, ok := pages.ParseSectionType(string(section.Type))
		if !ok {
			s.logger.Warn("pages.get_content.unknown_section_type",
				"section_id", section.ID, "section_type", string(section.Type), "page", record.Slug)
			continue
		}
		config, err := pages.DecodeConfig(tag, section.Config)
		if err != nil {
			s.logger.Warn("pages.get_content.section_config_invalid",
				"section_id", section.ID, "section_type", string(tag), "error", err)
			continue
		}
		content.Sections = append(content.Sections, SectionView{
			ID:       section.ID,
			Type:     tag,
			Position: section.Position,
			Config:   config,
		})
	}
	return content, nil
}

func (s *service) ListPages(ctx context.Context, locale string) ([]*PageDefinition, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, pages.ErrUnknownLocale
	}
	return s.repo.List(ctx, PageFilters{LocaleID: &loc.ID})
}

// CreatePage validates and inserts the page with its sections in one
// transaction.
func (s *service) CreatePage(ctx context.Context, input CreatePageInput) (*PageDefinition, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, pages.ErrSlugRequired
	}
	if !slugpkg.IsValid(slug) {
		return nil, pages.ErrSlugInvalid
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pages.ErrTitleRequired
	}
	loc, err := s.locales.GetByCode(ctx, input.Locale)
	if err != nil {
		return nil, pages.ErrUnknownLocale
	}
	if existing, err := s.repo.GetBySlug(ctx, loc.ID, slug); err == nil && existing != nil {
		return nil, pages.ErrSlugExists
	}

	now := s.now()
	record := &PageDefinition{
		ID:             s.id(),
		Slug:           slug,
		LocaleID:       loc.ID,
		Title:          input.Title,
		PageType:       normalizePageType(input.PageType),
		RoutePattern:   input.RoutePattern,
		SEOTitle:       input.SEOTitle,
		SEODescription: input.SEODescription,
		OGImage:        input.OGImage,
		SEOKeywords:    input.SEOKeywords,
		IsPublished:    input.IsPublished,
		CreatedBy:      input.CreatedBy,
		UpdatedBy:      input.UpdatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if input.ID != nil {
		record.ID = *input.ID
	}
	if record.IsPublished {
		record.PublishedAt = &now
	}

	sections, err := s.buildSections(record.ID, input.Sections, now)
	if err != nil {
		return nil, err
	}
	record.Sections = sections

	return s.repo.Create(ctx, record)
}

// UpdatePage updates the page row and optionally replaces its sections.
func (s *service) UpdatePage(ctx context.Context, input UpdatePageInput) (*PageDefinition, error) {
	if input.ID == uuid.Nil {
		return nil, pages.ErrPageIDRequired
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pages.ErrTitleRequired
	}

	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := clonePage(existing)
	record.Title = input.Title
	if input.PageType != "" {
		record.PageType = normalizePageType(input.PageType)
	}
	record.RoutePattern = input.RoutePattern
	record.SEOTitle = input.SEOTitle
	record.SEODescription = input.SEODescription
	record.OGImage = input.OGImage
	record.SEOKeywords = input.SEOKeywords
	record.UpdatedBy = input.UpdatedBy
	record.UpdatedAt = now

	if input.ReplaceSections {
		sections, err := s.buildSections(record.ID, input.Sections, now)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceSections(ctx, record.ID, sections); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, record)
}

func (s *service) DeletePage(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pages.ErrPageIDRequired
	}
	return s.repo.Delete(ctx, id)
}

// PublishPage marks the page published, stamping published_at on the first
// transition only. Publishing an already published page is a no-op.
func (s *service) PublishPage(ctx context.Context, id uuid.UUID) (*PageDefinition, error) {
	if id == uuid.Nil {
		return nil, pages.ErrPageIDRequired
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.IsPublished {
		return record, nil
	}

	now := s.now()
	record.IsPublished = true
	if record.PublishedAt == nil {
		record.PublishedAt = &now
	}
	record.UpdatedAt = now
	return s.repo.Update(ctx, record)
}

// UnpublishPage hides the page from the storefront. Unpublishing a draft is
// a no-op. published_at is preserved so re-publishing keeps the original
// timestamp.
func (s *service) UnpublishPage(ctx context.Context, id uuid.UUID) (*PageDefinition, error) {
	if id == uuid.Nil {
		return nil, pages.ErrPageIDRequired
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.IsPublished {
		return record, nil
	}

	record.IsPublished = false
	record.UpdatedAt = s.now()
	return s.repo.Update(ctx, record)
}

func (s *service) buildSections(pageID uuid.UUID, inputs []SectionInput, now time.Time) ([]*PageSection, error) {
	sections := make([]*PageSection, 0, len(inputs))
	for _, input := range inputs {
		tag, ok := pages.ParseSectionType(input.Type)
		if !ok {
			return nil, pages.ErrSectionTypeInvalid
		}
		if input.Position < 0 {
			return nil, pages.ErrPositionInvalid
		}
		if err := s.validator.Validate(tag, input.Config); err != nil {
			return nil, fmt.Errorf("%w: %w", pages.ErrSectionConfig, err)
		}
		config := input.Config
		if len(config) == 0 {
			config = json.RawMessage("{}")
		}
		sections = append(sections, &PageSection{
			ID:        s.id(),
			PageID:    pageID,
			Type:      tag,
			Position:  input.Position,
			IsEnabled: input.IsEnabled,
			Config:    config,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return sections, nil
}

// orderedSections sorts by ascending position, breaking ties by created_at
// then id so render order is deterministic.
func orderedSections(sections []*PageSection) []*PageSection {
	ordered := make([]*PageSection, 0, len(sections))
	for _, section := range sections {
		if section != nil {
			ordered = append(ordered, section)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		left, right := ordered[i], ordered[j]
		if left.Position != right.Position {
			return left.Position < right.Position
		}
		if !left.CreatedAt.Equal(right.CreatedAt) {
			return left.CreatedAt.Before(right.CreatedAt)
		}
		return left.ID.String() < right.ID.String()
	})
	return ordered
}

func normalizePageType(pageType string) string {
	switch strings.ToLower(strings.TrimSpace(pageType)) {
	case pages.PageTypeHome:
		return pages.PageTypeHome
	case pages.PageTypeAbout:
		return pages.PageTypeAbout
	case pages.PageTypeLanding:
		return pages.PageTypeLanding
	default:
		return pages.PageTypeCustom
	}
}
