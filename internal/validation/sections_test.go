package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/amara-beauty/storefront-cms/pages"
)

func TestSectionValidatorAcceptsValidConfigs(t *testing.T) {
	validator := MustNewSectionValidator()

	cases := []struct {
		name    string
		section pages.SectionType
		config  string
	}{
		{
			name:    "hero with ctas",
			section: pages.SectionHero,
			config: `{
				"heading": "Thiên nhiên cho làn da",
				"subheading": "Mỹ phẩm thuần chay",
				"primary_cta": {"label": "Mua ngay", "href": "/san-pham"}
			}`,
		},
		{
			name:    "featured products minimal",
			section: pages.SectionFeaturedProducts,
			config:  `{"title": "Bán chạy", "limit": 8}`,
		},
		{
			name:    "testimonials with rating",
			section: pages.SectionTestimonials,
			config:  `{"items": [{"quote": "Da mình cải thiện rõ rệt", "rating": 5}]}`,
		},
		{
			name:    "empty payload defaults to object",
			section: pages.SectionStory,
			config:  "",
		},
		{
			name:    "unknown fields pass through",
			section: pages.SectionHero,
			config:  `{"heading": "Hi", "experimental_layout": "split"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validator.Validate(tc.section, json.RawMessage(tc.config)); err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
		})
	}
}

func TestSectionValidatorRejectsInvalidConfigs(t *testing.T) {
	validator := MustNewSectionValidator()

	cases := []struct {
		name    string
		section pages.SectionType
		config  string
	}{
		{
			name:    "hero missing heading",
			section: pages.SectionHero,
			config:  `{"subheading": "no heading"}`,
		},
		{
			name:    "hero cta missing href",
			section: pages.SectionHero,
			config:  `{"heading": "Hi", "primary_cta": {"label": "Mua ngay"}}`,
		},
		{
			name:    "testimonial rating out of range",
			section: pages.SectionTestimonials,
			config:  `{"items": [{"quote": "ok", "rating": 9}]}`,
		},
		{
			name:    "featured products negative limit",
			section: pages.SectionFeaturedProducts,
			config:  `{"limit": -1}`,
		},
		{
			name:    "malformed json",
			section: pages.SectionHero,
			config:  `{"heading":`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validator.Validate(tc.section, json.RawMessage(tc.config))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrSectionValidation) {
				t.Fatalf("expected ErrSectionValidation, got %v", err)
			}
			if len(Issues(err)) == 0 {
				t.Fatal("expected at least one issue")
			}
		})
	}
}

func TestSectionValidatorRejectsUnknownType(t *testing.T) {
	validator := MustNewSectionValidator()

	err := validator.Validate(pages.SectionType("carousel_3d"), json.RawMessage(`{}`))
	if !errors.Is(err, pages.ErrSectionTypeInvalid) {
		t.Fatalf("expected ErrSectionTypeInvalid, got %v", err)
	}
}

func TestIssuesFallsBackToErrorMessage(t *testing.T) {
	issues := Issues(errors.New("boom"))
	if len(issues) != 1 || issues[0].Message != "boom" {
		t.Fatalf("unexpected issues %+v", issues)
	}
	if Issues(nil) != nil {
		t.Fatal("expected nil issues for nil error")
	}
}
