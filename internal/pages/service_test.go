package pages

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/locales"
	"github.com/amara-beauty/storefront-cms/pages"
)

type serviceFixture struct {
	service Service
	repo    PageRepository
	locales locales.Repository
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	localeRepo := locales.NewMemoryRepository()
	if err := locales.NewService(localeRepo).EnsureSupported(context.Background()); err != nil {
		t.Fatalf("seed locales: %v", err)
	}

	repo := NewMemoryPageRepository()
	return &serviceFixture{
		service: NewService(repo, localeRepo),
		repo:    repo,
		locales: localeRepo,
	}
}

func (f *serviceFixture) createPage(t *testing.T, input CreatePageInput) *PageDefinition {
	t.Helper()
	record, err := f.service.CreatePage(context.Background(), input)
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	return record
}

func heroConfig(heading string) json.RawMessage {
	return json.RawMessage(`{"heading": "` + heading + `"}`)
}

func TestGetPageContentOrdersSectionsByPosition(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.createPage(t, CreatePageInput{
		Slug:        "landing",
		Locale:      "vi",
		Title:       "Landing",
		PageType:    "landing",
		IsPublished: true,
		Sections: []SectionInput{
			{Type: "hero", Position: 3, IsEnabled: true, Config: heroConfig("third")},
			{Type: "cta_banner", Position: 1, IsEnabled: true, Config: json.RawMessage(`{"text": "first"}`)},
			{Type: "faq", Position: 2, IsEnabled: true, Config: json.RawMessage(`{"items": [{"question": "q", "answer": "a"}]}`)},
		},
	})

	content, err := f.service.GetPageContent(ctx, "vi", "landing")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if content == nil {
		t.Fatal("expected page content")
	}
	if len(content.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(content.Sections))
	}

	got := []pages.SectionType{content.Sections[0].Type, content.Sections[1].Type, content.Sections[2].Type}
	want := []pages.SectionType{pages.SectionCTABanner, pages.SectionFAQ, pages.SectionHero}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestGetPageContentSkipsDisabledAndUnknownSections(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created := f.createPage(t, CreatePageInput{
		Slug:        "home",
		Locale:      "vi",
		Title:       "Home",
		PageType:    "home",
		IsPublished: true,
		Sections: []SectionInput{
			{Type: "hero", Position: 0, IsEnabled: true, Config: heroConfig("visible")},
			{Type: "story", Position: 1, IsEnabled: false},
		},
	})

	// Simulate a row written by a newer build with a type this build does
	// not recognize.
	stored, err := f.repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	stored.Sections = append(stored.Sections, &PageSection{
		ID:        uuid.New(),
		PageID:    created.ID,
		Type:      pages.SectionType("hologram_tour"),
		Position:  2,
		IsEnabled: true,
		Config:    json.RawMessage(`{}`),
	})
	if err := f.repo.ReplaceSections(ctx, created.ID, stored.Sections); err != nil {
		t.Fatalf("replace sections: %v", err)
	}

	content, err := f.service.GetPageContent(ctx, "vi", "home")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if len(content.Sections) != 1 {
		t.Fatalf("expected only the enabled known section, got %d", len(content.Sections))
	}
	if content.Sections[0].Type != pages.SectionHero {
		t.Fatalf("expected hero, got %s", content.Sections[0].Type)
	}
}

func TestGetPageContentDecodesTypedConfig(t *testing.T) {
	f := newServiceFixture(t)

	f.createPage(t, CreatePageInput{
		Slug:        "offers",
		Locale:      "en",
		Title:       "Offers",
		IsPublished: true,
		Sections: []SectionInput{
			{Type: "hero", Position: 0, IsEnabled: true, Config: json.RawMessage(`{"heading": "Glow", "primary_cta": {"label": "Shop", "href": "/en/products"}}`)},
		},
	})

	content, err := f.service.GetPageContent(context.Background(), "en", "offers")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	hero, ok := content.Sections[0].Config.(*pages.HeroConfig)
	if !ok {
		t.Fatalf("expected *HeroConfig, got %T", content.Sections[0].Config)
	}
	if hero.Heading != "Glow" {
		t.Fatalf("expected heading Glow, got %q", hero.Heading)
	}
	if hero.Primary == nil || hero.Primary.Href != "/en/products" {
		t.Fatalf("expected primary CTA, got %+v", hero.Primary)
	}
}

func TestGetPageContentHidesUnpublished(t *testing.T) {
	f := newServiceFixture(t)

	f.createPage(t, CreatePageInput{
		Slug:   "draft-page",
		Locale: "vi",
		Title:  "Draft",
	})

	content, err := f.service.GetPageContent(context.Background(), "vi", "draft-page")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if content != nil {
		t.Fatalf("expected nil for unpublished page, got %+v", content)
	}

	missing, err := f.service.GetPageContent(context.Background(), "vi", "never-created")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown slug, got %+v", missing)
	}
}

func TestCreatePageRejectsInvalidSections(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.CreatePage(ctx, CreatePageInput{
		Slug:   "bad-type",
		Locale: "vi",
		Title:  "Bad",
		Sections: []SectionInput{
			{Type: "teleporter", Position: 0, IsEnabled: true},
		},
	})
	if !errors.Is(err, pages.ErrSectionTypeInvalid) {
		t.Fatalf("expected ErrSectionTypeInvalid, got %v", err)
	}

	_, err = f.service.CreatePage(ctx, CreatePageInput{
		Slug:   "bad-config",
		Locale: "vi",
		Title:  "Bad",
		Sections: []SectionInput{
			{Type: "cta_banner", Position: 0, IsEnabled: true, Config: json.RawMessage(`{"text": ""}`)},
		},
	})
	if !errors.Is(err, pages.ErrSectionConfig) {
		t.Fatalf("expected ErrSectionConfig, got %v", err)
	}

	_, err = f.service.CreatePage(ctx, CreatePageInput{
		Slug:   "bad-position",
		Locale: "vi",
		Title:  "Bad",
		Sections: []SectionInput{
			{Type: "hero", Position: -1, IsEnabled: true, Config: heroConfig("x")},
		},
	})
	if !errors.Is(err, pages.ErrPositionInvalid) {
		t.Fatalf("expected ErrPositionInvalid, got %v", err)
	}
}

func TestCreatePageRejectsDuplicateSlugPerLocale(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.createPage(t, CreatePageInput{Slug: "about", Locale: "vi", Title: "Giới thiệu"})

	if _, err := f.service.CreatePage(ctx, CreatePageInput{Slug: "about", Locale: "vi", Title: "Trùng"}); !errors.Is(err, pages.ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	// Same slug under another locale is a distinct page.
	if _, err := f.service.CreatePage(ctx, CreatePageInput{Slug: "about", Locale: "en", Title: "About"}); err != nil {
		t.Fatalf("expected en about to be allowed, got %v", err)
	}
}

func TestPublishPageIsIdempotent(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewService(f.repo, f.locales, WithClock(clock))

	created, err := svc.CreatePage(ctx, CreatePageInput{Slug: "launch", Locale: "vi", Title: "Launch"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}

	first, err := svc.PublishPage(ctx, created.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if first.PublishedAt == nil || !first.PublishedAt.Equal(now) {
		t.Fatalf("expected published_at %v, got %v", now, first.PublishedAt)
	}

	now = now.Add(48 * time.Hour)
	second, err := svc.PublishPage(ctx, created.ID)
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if !second.PublishedAt.Equal(*first.PublishedAt) {
		t.Fatalf("expected republish to keep %v, got %v", first.PublishedAt, second.PublishedAt)
	}

	unpublished, err := svc.UnpublishPage(ctx, created.ID)
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if unpublished.IsPublished {
		t.Fatal("expected page hidden after unpublish")
	}
	if unpublished.PublishedAt == nil || !unpublished.PublishedAt.Equal(*first.PublishedAt) {
		t.Fatalf("expected published_at preserved, got %v", unpublished.PublishedAt)
	}

	republished, err := svc.PublishPage(ctx, created.ID)
	if err != nil {
		t.Fatalf("publish again: %v", err)
	}
	if !republished.PublishedAt.Equal(*first.PublishedAt) {
		t.Fatalf("expected original publish timestamp, got %v", republished.PublishedAt)
	}
}

func TestDeletePageRemovesSections(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created := f.createPage(t, CreatePageInput{
		Slug:        "temp",
		Locale:      "vi",
		Title:       "Temp",
		IsPublished: true,
		Sections: []SectionInput{
			{Type: "hero", Position: 0, IsEnabled: true, Config: heroConfig("x")},
		},
	})

	if err := f.service.DeletePage(ctx, created.ID); err != nil {
		t.Fatalf("delete page: %v", err)
	}

	if _, err := f.repo.GetByID(ctx, created.ID); !pages.IsNotFound(err) {
		t.Fatalf("expected page gone, got %v", err)
	}
	content, err := f.service.GetPageContent(ctx, "vi", "temp")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if content != nil {
		t.Fatalf("expected nil after delete, got %+v", content)
	}
}
