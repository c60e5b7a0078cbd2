package pages

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/identity"
	"github.com/amara-beauty/storefront-cms/internal/locales"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	localespkg "github.com/amara-beauty/storefront-cms/locales"
	"github.com/amara-beauty/storefront-cms/pages"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// Static page slugs with in-code slot defaults.
const (
	StaticHome  = "home"
	StaticAbout = "about"
)

// slotDefaults is the fallback copy per page, locale, and slot key. Stored
// slots override entries here; a slot absent from both renders empty.
var slotDefaults = map[string]map[string]map[string]string{
	StaticHome: {
		localespkg.Vietnamese: {
			"hero_title":    "Vẻ đẹp thuần khiết từ thiên nhiên",
			"hero_subtitle": "Mỹ phẩm lành tính cho làn da Việt",
			"hero_cta":      "Khám phá ngay",
		},
		localespkg.English: {
			"hero_title":    "Pure beauty from nature",
			"hero_subtitle": "Gentle cosmetics for every skin",
			"hero_cta":      "Shop now",
		},
		localespkg.Korean: {
			"hero_title":    "자연에서 온 순수한 아름다움",
			"hero_subtitle": "모든 피부를 위한 순한 화장품",
			"hero_cta":      "지금 쇼핑하기",
		},
	},
	StaticAbout: {
		localespkg.Vietnamese: {
			"intro_title": "Câu chuyện của chúng tôi",
			"intro_body":  "Chúng tôi tin vào vẻ đẹp bền vững.",
		},
		localespkg.English: {
			"intro_title": "Our story",
			"intro_body":  "We believe in sustainable beauty.",
		},
		localespkg.Korean: {
			"intro_title": "우리의 이야기",
			"intro_body":  "우리는 지속 가능한 아름다움을 믿습니다.",
		},
	},
}

// StaticContent is the merged slot map plus SEO overrides for one locale.
type StaticContent struct {
	Slug           string            `json:"slug"`
	Slots          map[string]string `json:"slots"`
	SEOTitle       string            `json:"seo_title,omitempty"`
	SEODescription string            `json:"seo_description,omitempty"`
	OGImage        string            `json:"og_image,omitempty"`
}

// UpsertSlotInput sets one slot value for a static page and locale.
type UpsertSlotInput struct {
	Slug   string
	Locale string
	Key    string
	Value  string
}

// StaticService reads and writes slot-driven static page copy.
type StaticService interface {
	GetContent(ctx context.Context, locale string, slug string) (*StaticContent, error)
	UpsertSlot(ctx context.Context, input UpsertSlotInput) error
}

// StaticServiceOption customises the static page service.
type StaticServiceOption func(*staticService)

// WithStaticLogger injects the module logger.
func WithStaticLogger(logger interfaces.Logger) StaticServiceOption {
	return func(s *staticService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type staticService struct {
	repo    StaticPageRepository
	locales locales.Repository
	logger  interfaces.Logger
	now     func() time.Time
}

// NewStaticService constructs a static page service.
func NewStaticService(repo StaticPageRepository, localeRepo locales.Repository, opts ...StaticServiceOption) StaticService {
	s := &staticService{
		repo:    repo,
		locales: localeRepo,
		logger:  logging.NoOp(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetContent merges stored slots over the in-code defaults for the locale.
// A page with no stored row still renders from defaults alone.
func (s *staticService) GetContent(ctx context.Context, locale string, slug string) (*StaticContent, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, pages.ErrUnknownLocale
	}
	slug = strings.TrimSpace(slug)

	slots := map[string]string{}
	for key, value := range slotDefaults[slug][loc.Code] {
		slots[key] = value
	}
	content := &StaticContent{Slug: slug, Slots: slots}

	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if !pages.IsNotFound(err) {
			s.logger.Error("pages.static.query_failed", "error", err, "slug", slug)
		}
		return content, nil
	}

	for _, slot := range record.Slots {
		if slot != nil && slot.LocaleID == loc.ID {
			slots[slot.Key] = slot.Value
		}
	}
	for _, tr := range record.Translations {
		if tr == nil || tr.LocaleID != loc.ID {
			continue
		}
		if tr.SEOTitle != nil {
			content.SEOTitle = *tr.SEOTitle
		}
		if tr.SEODescription != nil {
			content.SEODescription = *tr.SEODescription
		}
		if tr.OGImage != nil {
			content.OGImage = *tr.OGImage
		}
	}
	return content, nil
}

// UpsertSlot writes one slot value, creating the static page row when it
// does not exist yet.
func (s *staticService) UpsertSlot(ctx context.Context, input UpsertSlotInput) error {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return pages.ErrSlugRequired
	}
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return pages.ErrSlugRequired
	}
	loc, err := s.locales.GetByCode(ctx, input.Locale)
	if err != nil {
		return pages.ErrUnknownLocale
	}

	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if !pages.IsNotFound(err) {
			return err
		}
		now := s.now()
		record, err = s.repo.Upsert(ctx, &StaticPage{
			ID:        identity.UUID("storefront:static:" + slug),
			Slug:      slug,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
	}

	_, err = s.repo.UpsertSlot(ctx, &StaticPageSlot{
		ID:           uuid.New(),
		StaticPageID: record.ID,
		LocaleID:     loc.ID,
		Key:          key,
		Value:        input.Value,
		CreatedAt:    s.now(),
		UpdatedAt:    s.now(),
	})
	return err
}
