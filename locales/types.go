package locales

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Supported locale codes. Vietnamese is the default and is served without a
// path prefix; English and Korean require one.
const (
	Vietnamese = "vi"
	English    = "en"
	Korean     = "ko"

	Default = Vietnamese
)

var (
	// ErrUnknownLocale reports a locale code outside the supported set.
	ErrUnknownLocale = errors.New("locales: unknown locale")
	// ErrLocaleRequired reports a blank locale code.
	ErrLocaleRequired = errors.New("locales: locale code is required")
)

var supported = []string{Vietnamese, English, Korean}

// Supported returns the fixed list of locale codes, default first.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether code belongs to the supported set.
func IsSupported(code string) bool {
	switch Normalize(code) {
	case Vietnamese, English, Korean:
		return true
	default:
		return false
	}
}

// Normalize lower-cases and trims a locale code.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Validate normalizes code and rejects values outside the supported set.
func Validate(code string) (string, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return "", ErrLocaleRequired
	}
	if !IsSupported(normalized) {
		return "", ErrUnknownLocale
	}
	return normalized, nil
}

// ResolvePath determines the locale for a request path. A leading /en or /ko
// segment selects that locale and is stripped from the returned path; any
// other path resolves to the default locale untouched.
func ResolvePath(path string) (locale string, rest string) {
	if path == "" {
		return Default, "/"
	}
	trimmed := path
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	for _, code := range supported {
		if code == Default {
			continue
		}
		prefix := "/" + code
		if trimmed == prefix {
			return code, "/"
		}
		if strings.HasPrefix(trimmed, prefix+"/") {
			return code, strings.TrimPrefix(trimmed, prefix)
		}
	}
	return Default, trimmed
}

// PathPrefix returns the route prefix for a locale: empty for the default,
// "/en" or "/ko" otherwise.
func PathPrefix(locale string) string {
	normalized := Normalize(locale)
	if normalized == Default || normalized == "" {
		return ""
	}
	return "/" + normalized
}

// Locale is the persisted registry row backing the fixed locale set.
type Locale struct {
	bun.BaseModel `bun:"table:locales,alias:l"`

	ID         uuid.UUID  `bun:",pk,type:uuid"         json:"id"`
	Code       string     `bun:"code,notnull"          json:"code"`
	Display    string     `bun:"display_name,notnull"  json:"display_name"`
	NativeName *string    `bun:"native_name"           json:"native_name,omitempty"`
	IsActive   bool       `bun:"is_active,notnull,default:true"   json:"is_active"`
	IsDefault  bool       `bun:"is_default,notnull,default:false" json:"is_default"`
	DeletedAt  *time.Time `bun:"deleted_at,nullzero"   json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
