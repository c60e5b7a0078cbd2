package pages

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/amara-beauty/storefront-cms/pages"
)

func TestRenderPageSkipsUnregisteredTypes(t *testing.T) {
	registry := NewRendererRegistry(nil)
	registry.Register(pages.SectionHero, func(_ context.Context, section SectionView) (string, error) {
		hero := section.Config.(*pages.HeroConfig)
		return "<h1>" + hero.Heading + "</h1>", nil
	})

	content := &PageContent{
		Slug: "home",
		Sections: []SectionView{
			{Type: pages.SectionHero, Config: &pages.HeroConfig{Heading: "Glow"}},
			{Type: pages.SectionFAQ, Config: &pages.FAQConfig{}},
		},
	}

	rendered := registry.RenderPage(context.Background(), content)
	if len(rendered) != 1 {
		t.Fatalf("expected 1 rendered section, got %d", len(rendered))
	}
	if rendered[0].Output != "<h1>Glow</h1>" {
		t.Fatalf("unexpected output %q", rendered[0].Output)
	}
}

func TestRenderPageSurvivesRendererFailure(t *testing.T) {
	registry := NewRendererRegistry(nil)
	registry.Register(pages.SectionHero, func(context.Context, SectionView) (string, error) {
		return "", errors.New("template missing")
	})
	registry.Register(pages.SectionCTABanner, func(_ context.Context, section SectionView) (string, error) {
		banner := section.Config.(*pages.CTABannerConfig)
		return fmt.Sprintf("<div>%s</div>", banner.Text), nil
	})

	content := &PageContent{
		Slug: "landing",
		Sections: []SectionView{
			{Type: pages.SectionHero, Config: &pages.HeroConfig{Heading: "x"}},
			{Type: pages.SectionCTABanner, Config: &pages.CTABannerConfig{Text: "Buy now"}},
		},
	}

	rendered := registry.RenderPage(context.Background(), content)
	if len(rendered) != 1 {
		t.Fatalf("expected the failing renderer to be skipped, got %d sections", len(rendered))
	}
	if rendered[0].Section.Type != pages.SectionCTABanner {
		t.Fatalf("expected cta_banner, got %s", rendered[0].Section.Type)
	}
}

func TestRenderPageNilContent(t *testing.T) {
	registry := NewRendererRegistry(nil)
	if rendered := registry.RenderPage(context.Background(), nil); rendered != nil {
		t.Fatalf("expected nil, got %v", rendered)
	}
}
