package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Well-known setting keys.
const (
	KeySocials              = "socials"
	KeyFloatingActions      = "floating_actions"
	KeyTikTokSectionVisible = "tiktok_section_visible"
)

var (
	ErrKeyRequired   = errors.New("settings: setting key is required")
	ErrValueRequired = errors.New("settings: value is required")
)

// NotFoundError reports a missing setting key. Typed getters translate it
// into their documented defaults.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("settings: setting %q not found", e.Key)
}

// IsNotFound reports whether err is a settings NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// SiteSetting is one key→JSON row of loosely-structured configuration.
type SiteSetting struct {
	bun.BaseModel `bun:"table:site_settings,alias:ss"`

	ID        uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	Key       string          `bun:"setting_key,notnull" json:"setting_key"`
	Value     json.RawMessage `bun:"value,type:jsonb,notnull" json:"value"`
	UpdatedBy uuid.UUID       `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// SocialLink is one entry of the socials setting, ordered by Order.
type SocialLink struct {
	ID        string `json:"id"`
	Platform  string `json:"platform"`
	URL       string `json:"url"`
	Label     string `json:"label,omitempty"`
	Icon      string `json:"icon,omitempty"`
	IsEnabled bool   `json:"isEnabled"`
	Order     int    `json:"order"`
}

// FloatingAction is one entry of the floating_actions setting.
type FloatingAction struct {
	ID              string `json:"id"`
	IconKey         string `json:"iconKey"`
	Label           string `json:"label,omitempty"`
	Href            string `json:"href"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	HoverColor      string `json:"hoverColor,omitempty"`
	IsEnabled       bool   `json:"isEnabled"`
	Order           int    `json:"order"`
}

// SectionVisibility toggles a storefront section per breakpoint. The stored
// value predates the structured shape: legacy rows hold a bare boolean that
// must fan out to all three breakpoints on read.
type SectionVisibility struct {
	Mobile  bool `json:"mobile"`
	Tablet  bool `json:"tablet"`
	Desktop bool `json:"desktop"`
}

// UnmarshalJSON accepts both the structured shape and the legacy boolean.
func (v *SectionVisibility) UnmarshalJSON(data []byte) error {
	var legacy bool
	if err := json.Unmarshal(data, &legacy); err == nil {
		v.Mobile = legacy
		v.Tablet = legacy
		v.Desktop = legacy
		return nil
	}

	type structured SectionVisibility
	var s structured
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("settings: section visibility payload: %w", err)
	}
	*v = SectionVisibility(s)
	return nil
}
