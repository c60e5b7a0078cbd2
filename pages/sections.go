package pages

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SectionType tags a page section with the renderer variant it targets.
type SectionType string

const (
	SectionHero             SectionType = "hero"
	SectionCategoriesGrid   SectionType = "categories_grid"
	SectionFeaturedProducts SectionType = "featured_products"
	SectionStory            SectionType = "story"
	SectionTestimonials     SectionType = "testimonials"
	SectionFAQ              SectionType = "faq"
	SectionCTABanner        SectionType = "cta_banner"
	SectionBestSellers      SectionType = "best_sellers"
	SectionLaunchOffer      SectionType = "launch_offer"
	SectionCustomContent    SectionType = "custom_content"
)

// KnownSectionTypes lists every section type the page builder understands.
func KnownSectionTypes() []SectionType {
	return []SectionType{
		SectionHero,
		SectionCategoriesGrid,
		SectionFeaturedProducts,
		SectionStory,
		SectionTestimonials,
		SectionFAQ,
		SectionCTABanner,
		SectionBestSellers,
		SectionLaunchOffer,
		SectionCustomContent,
	}
}

// IsValid reports whether the type belongs to the enumerated set.
func (t SectionType) IsValid() bool {
	switch t {
	case SectionHero, SectionCategoriesGrid, SectionFeaturedProducts,
		SectionStory, SectionTestimonials, SectionFAQ, SectionCTABanner,
		SectionBestSellers, SectionLaunchOffer, SectionCustomContent:
		return true
	default:
		return false
	}
}

// ParseSectionType normalizes a stored tag, mapping the legacy
// "products_hero" alias onto featured_products.
func ParseSectionType(input string) (SectionType, bool) {
	tag := SectionType(strings.ToLower(strings.TrimSpace(input)))
	if tag == "products_hero" {
		tag = SectionFeaturedProducts
	}
	return tag, tag.IsValid()
}

// SectionConfig is the tagged union over per-type section payloads.
type SectionConfig interface {
	SectionType() SectionType
}

// CTA is a labelled link used across several section configs.
type CTA struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// HeroConfig drives the full-width hero banner.
type HeroConfig struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	Primary    *CTA   `json:"primary_cta,omitempty"`
	Secondary  *CTA   `json:"secondary_cta,omitempty"`
}

func (HeroConfig) SectionType() SectionType { return SectionHero }

// CategoriesGridConfig lists categories to surface on a grid.
type CategoriesGridConfig struct {
	Title       string      `json:"title,omitempty"`
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
	Limit       int         `json:"limit,omitempty"`
}

func (CategoriesGridConfig) SectionType() SectionType { return SectionCategoriesGrid }

// FeaturedProductsConfig pins a curated product carousel.
type FeaturedProductsConfig struct {
	Title      string      `json:"title,omitempty"`
	Subtitle   string      `json:"subtitle,omitempty"`
	ProductIDs []uuid.UUID `json:"product_ids,omitempty"`
	Limit      int         `json:"limit,omitempty"`
}

func (FeaturedProductsConfig) SectionType() SectionType { return SectionFeaturedProducts }

// StoryConfig renders a brand-story split panel.
type StoryConfig struct {
	Title    string `json:"title,omitempty"`
	BodyHTML string `json:"body_html,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	CTA      *CTA   `json:"cta,omitempty"`
}

func (StoryConfig) SectionType() SectionType { return SectionStory }

// Testimonial is one customer quote.
type Testimonial struct {
	Quote     string `json:"quote"`
	Author    string `json:"author,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Rating    int    `json:"rating,omitempty"`
}

// TestimonialsConfig renders a testimonial carousel.
type TestimonialsConfig struct {
	Title string        `json:"title,omitempty"`
	Items []Testimonial `json:"items"`
}

func (TestimonialsConfig) SectionType() SectionType { return SectionTestimonials }

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQConfig renders an accordion of questions.
type FAQConfig struct {
	Title string    `json:"title,omitempty"`
	Items []FAQItem `json:"items"`
}

func (FAQConfig) SectionType() SectionType { return SectionFAQ }

// CTABannerConfig renders a full-width call-to-action strip.
type CTABannerConfig struct {
	Text               string `json:"text"`
	Button             *CTA   `json:"button,omitempty"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`
}

func (CTABannerConfig) SectionType() SectionType { return SectionCTABanner }

// BestSellersConfig renders the best-seller shelf.
type BestSellersConfig struct {
	Title string `json:"title,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

func (BestSellersConfig) SectionType() SectionType { return SectionBestSellers }

// LaunchOfferConfig renders a launch promotion, optionally with a countdown.
type LaunchOfferConfig struct {
	Title          string     `json:"title,omitempty"`
	Description    string     `json:"description,omitempty"`
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	CountdownUntil *time.Time `json:"countdown_until,omitempty"`
	CTA            *CTA       `json:"cta,omitempty"`
}

func (LaunchOfferConfig) SectionType() SectionType { return SectionLaunchOffer }

// CustomContentConfig carries operator-authored HTML.
type CustomContentConfig struct {
	HTML string `json:"html"`
}

func (CustomContentConfig) SectionType() SectionType { return SectionCustomContent }

// DecodeConfig turns a raw section payload into its typed variant. Unknown
// payload fields are ignored; an unrecognized section type is an error the
// caller downgrades to a skip-with-warning at render time.
func DecodeConfig(sectionType SectionType, raw json.RawMessage) (SectionConfig, error) {
	tag, ok := ParseSectionType(string(sectionType))
	if !ok {
		return nil, fmt.Errorf("pages: unrecognized section type %q", sectionType)
	}
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	decode := func(target SectionConfig) (SectionConfig, error) {
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, fmt.Errorf("pages: decode %s config: %w", tag, err)
		}
		return target, nil
	}

	switch tag {
	case SectionHero:
		return decode(&HeroConfig{})
	case SectionCategoriesGrid:
		return decode(&CategoriesGridConfig{})
	case SectionFeaturedProducts:
		return decode(&FeaturedProductsConfig{})
	case SectionStory:
		return decode(&StoryConfig{})
	case SectionTestimonials:
		return decode(&TestimonialsConfig{})
	case SectionFAQ:
		return decode(&FAQConfig{})
	case SectionCTABanner:
		return decode(&CTABannerConfig{})
	case SectionBestSellers:
		return decode(&BestSellersConfig{})
	case SectionLaunchOffer:
		return decode(&LaunchOfferConfig{})
	case SectionCustomContent:
		return decode(&CustomContentConfig{})
	default:
		return nil, fmt.Errorf("pages: unrecognized section type %q", sectionType)
	}
}
