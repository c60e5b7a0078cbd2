package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// LocaleUUID derives the stable identifier for a locale registry row.
func LocaleUUID(localeCode string) uuid.UUID {
	return UUID("storefront:locale:" + strings.ToLower(strings.TrimSpace(localeCode)))
}

// NavigationItemUUID derives a stable identifier for seeded navigation items
// so repeated bootstrap runs upsert rather than duplicate.
func NavigationItemUUID(locale, group, href string) uuid.UUID {
	return UUID("storefront:navigation_item:" + strings.ToLower(strings.TrimSpace(locale)) + ":" +
		strings.ToLower(strings.TrimSpace(group)) + ":" + strings.TrimSpace(href))
}

// ImportedPostUUID derives a stable identifier for markdown-imported posts
// keyed by their default-locale slug.
func ImportedPostUUID(slug string) uuid.UUID {
	return UUID("storefront:blog_post:" + strings.ToLower(strings.TrimSpace(slug)))
}

// StoragePathToken derives a short collision-resistant token mixed into CDN
// object names. The key should include the original filename, the uploader,
// and a timestamp.
func StoragePathToken(key string) string {
	uid := UUID(key)
	return strings.ReplaceAll(uid.String(), "-", "")[:16]
}
