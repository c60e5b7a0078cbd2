package catalog

import (
	"sort"

	"github.com/google/uuid"
)

// ProductView is a locale-resolved product record ready for rendering.
type ProductView struct {
	ID               uuid.UUID     `json:"id"`
	Slug             string        `json:"slug"`
	Name             string        `json:"name"`
	ShortDescription string        `json:"short_description,omitempty"`
	LongDescription  string        `json:"long_description,omitempty"`
	Price            int64         `json:"price"`
	Currency         string        `json:"currency"`
	Benefits         []string      `json:"benefits,omitempty"`
	Ingredients      []string      `json:"ingredients,omitempty"`
	HowToUse         string        `json:"how_to_use,omitempty"`
	IsFeatured       bool          `json:"is_featured"`
	IsBestSeller     bool          `json:"is_best_seller"`
	PrimaryImage     string        `json:"primary_image,omitempty"`
	SecondaryImage   string        `json:"secondary_image,omitempty"`
	Images           []string      `json:"images,omitempty"`
	BuyLinks         []BuyLinkView `json:"buy_links,omitempty"`
	Category         *CategoryView `json:"category,omitempty"`
}

// BuyLinkView is a locale-resolved external buy link.
type BuyLinkView struct {
	Platform Platform `json:"platform"`
	Label    string   `json:"label"`
	URL      string   `json:"url"`
}

// CategoryView is a locale-resolved category record.
type CategoryView struct {
	ID          uuid.UUID  `json:"id"`
	Slug        string     `json:"slug"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	SortOrder   int        `json:"sort_order"`

	Children []*CategoryView `json:"children,omitempty"`
}

// ResolvePrice applies the locale override when present and falls back to
// the base price otherwise.
func ResolvePrice(product *Product, tr *ProductTranslation) int64 {
	if tr != nil && tr.PriceOverride != nil {
		return *tr.PriceOverride
	}
	if product == nil {
		return 0
	}
	return product.BasePrice
}

// ResolveSlug prefers any translation slug and falls back to the product id.
// When the requested locale has no slug, the first translation that carries
// one wins, so every product stays addressable in every locale.
func ResolveSlug(product *Product, preferred *ProductTranslation) string {
	if preferred != nil && preferred.Slug != nil && *preferred.Slug != "" {
		return *preferred.Slug
	}
	if product != nil {
		for _, tr := range product.Translations {
			if tr != nil && tr.Slug != nil && *tr.Slug != "" {
				return *tr.Slug
			}
		}
		return product.ID.String()
	}
	return ""
}

// TranslationForLocale picks the product translation matching localeID, or
// nil when absent.
func TranslationForLocale(product *Product, localeID uuid.UUID) *ProductTranslation {
	if product == nil {
		return nil
	}
	for _, tr := range product.Translations {
		if tr != nil && tr.LocaleID == localeID {
			return tr
		}
	}
	return nil
}

// OrderedImages returns the product media URLs sorted by sort_order.
func OrderedImages(product *Product) []string {
	if product == nil || len(product.Media) == 0 {
		return nil
	}
	media := make([]*ProductMedia, 0, len(product.Media))
	for _, m := range product.Media {
		if m != nil {
			media = append(media, m)
		}
	}
	sort.SliceStable(media, func(i, j int) bool {
		return media[i].SortOrder < media[j].SortOrder
	})
	urls := make([]string, 0, len(media))
	for _, m := range media {
		urls = append(urls, m.URL)
	}
	return urls
}

// ResolveBuyLinks selects the buy links applicable to localeID, preferring
// locale-specific rows per platform over locale-agnostic ones, ordered by
// sort_order.
func ResolveBuyLinks(product *Product, localeID uuid.UUID) []BuyLinkView {
	if product == nil || len(product.Links) == 0 {
		return nil
	}

	type candidate struct {
		link        *ProductLink
		localeBound bool
	}
	byPlatform := map[Platform]candidate{}
	for _, link := range product.Links {
		if link == nil {
			continue
		}
		if link.LocaleID != nil && *link.LocaleID != localeID {
			continue
		}
		platform := ParsePlatform(string(link.Platform))
		bound := link.LocaleID != nil
		if existing, ok := byPlatform[platform]; ok {
			if existing.localeBound || !bound {
				continue
			}
		}
		byPlatform[platform] = candidate{link: link, localeBound: bound}
	}

	selected := make([]*ProductLink, 0, len(byPlatform))
	for _, c := range byPlatform {
		selected = append(selected, c.link)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].SortOrder < selected[j].SortOrder
	})

	views := make([]BuyLinkView, 0, len(selected))
	for _, link := range selected {
		platform := ParsePlatform(string(link.Platform))
		label := platform.DefaultLabel()
		if link.Label != nil && *link.Label != "" {
			label = *link.Label
		}
		views = append(views, BuyLinkView{Platform: platform, Label: label, URL: link.URL})
	}
	return views
}
