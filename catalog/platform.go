package catalog

import "strings"

// Platform enumerates the commerce platforms a buy link can point at. The
// set is closed; unrecognized values map to PlatformOther rather than being
// dropped.
type Platform string

const (
	PlatformShopee     Platform = "shopee"
	PlatformLazada     Platform = "lazada"
	PlatformTiki       Platform = "tiki"
	PlatformTikTokShop Platform = "tiktok_shop"
	PlatformAmazon     Platform = "amazon"
	PlatformCoupang    Platform = "coupang"
	PlatformWebsite    Platform = "website"
	PlatformOther      Platform = "other"
)

// ParsePlatform maps an arbitrary string to a known platform. The mapping is
// total: anything outside the enumerated set resolves to PlatformOther.
func ParsePlatform(input string) Platform {
	switch Platform(strings.ToLower(strings.TrimSpace(input))) {
	case PlatformShopee:
		return PlatformShopee
	case PlatformLazada:
		return PlatformLazada
	case PlatformTiki:
		return PlatformTiki
	case PlatformTikTokShop:
		return PlatformTikTokShop
	case PlatformAmazon:
		return PlatformAmazon
	case PlatformCoupang:
		return PlatformCoupang
	case PlatformWebsite:
		return PlatformWebsite
	default:
		return PlatformOther
	}
}

// DefaultLabel returns the display label used when a link row carries no
// locale-specific override.
func (p Platform) DefaultLabel() string {
	switch p {
	case PlatformShopee:
		return "Shopee"
	case PlatformLazada:
		return "Lazada"
	case PlatformTiki:
		return "Tiki"
	case PlatformTikTokShop:
		return "TikTok Shop"
	case PlatformAmazon:
		return "Amazon"
	case PlatformCoupang:
		return "Coupang"
	case PlatformWebsite:
		return "Website"
	default:
		return "Buy now"
	}
}

// IsKnown reports whether the platform is one of the enumerated values
// (excluding the fallback).
func (p Platform) IsKnown() bool {
	return p != PlatformOther && ParsePlatform(string(p)) == p
}
