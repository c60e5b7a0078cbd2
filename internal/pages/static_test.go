package pages

import (
	"context"
	"testing"

	"github.com/amara-beauty/storefront-cms/internal/locales"
)

func newStaticFixture(t *testing.T) (StaticService, locales.Repository) {
	t.Helper()

	localeRepo := locales.NewMemoryRepository()
	if err := locales.NewService(localeRepo).EnsureSupported(context.Background()); err != nil {
		t.Fatalf("seed locales: %v", err)
	}
	return NewStaticService(NewMemoryStaticPageRepository(), localeRepo), localeRepo
}

func TestStaticContentFallsBackToDefaults(t *testing.T) {
	svc, _ := newStaticFixture(t)

	content, err := svc.GetContent(context.Background(), "ko", StaticHome)
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if content.Slots["hero_title"] != "자연에서 온 순수한 아름다움" {
		t.Fatalf("expected ko default hero_title, got %q", content.Slots["hero_title"])
	}
}

func TestStaticSlotOverridesDefault(t *testing.T) {
	svc, _ := newStaticFixture(t)
	ctx := context.Background()

	if err := svc.UpsertSlot(ctx, UpsertSlotInput{
		Slug:   StaticHome,
		Locale: "vi",
		Key:    "hero_title",
		Value:  "Ưu đãi mùa hè",
	}); err != nil {
		t.Fatalf("upsert slot: %v", err)
	}

	vi, err := svc.GetContent(ctx, "vi", StaticHome)
	if err != nil {
		t.Fatalf("get vi content: %v", err)
	}
	if vi.Slots["hero_title"] != "Ưu đãi mùa hè" {
		t.Fatalf("expected stored slot to win, got %q", vi.Slots["hero_title"])
	}
	if vi.Slots["hero_cta"] != "Khám phá ngay" {
		t.Fatalf("expected untouched slot to keep default, got %q", vi.Slots["hero_cta"])
	}

	// The override is locale-scoped; en still renders its default.
	en, err := svc.GetContent(ctx, "en", StaticHome)
	if err != nil {
		t.Fatalf("get en content: %v", err)
	}
	if en.Slots["hero_title"] != "Pure beauty from nature" {
		t.Fatalf("expected en default, got %q", en.Slots["hero_title"])
	}
}

func TestStaticSlotUpsertIsIdempotentPerKey(t *testing.T) {
	svc, _ := newStaticFixture(t)
	ctx := context.Background()

	for _, value := range []string{"v1", "v2"} {
		if err := svc.UpsertSlot(ctx, UpsertSlotInput{
			Slug:   StaticAbout,
			Locale: "en",
			Key:    "intro_title",
			Value:  value,
		}); err != nil {
			t.Fatalf("upsert %s: %v", value, err)
		}
	}

	content, err := svc.GetContent(ctx, "en", StaticAbout)
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if content.Slots["intro_title"] != "v2" {
		t.Fatalf("expected last write to win, got %q", content.Slots["intro_title"])
	}
}
