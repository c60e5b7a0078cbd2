package navigation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/amara-beauty/storefront-cms/locales"
)

// Navigation groups served by the storefront.
const (
	GroupHeader = "header"
	GroupFooter = "footer"
)

var (
	ErrItemIDRequired    = errors.New("navigation: item id required")
	ErrLabelRequired     = errors.New("navigation: label is required")
	ErrGroupRequired     = errors.New("navigation: group is required")
	ErrUnknownLocale     = errors.New("navigation: unknown locale")
	ErrParentInvalid     = errors.New("navigation: parent item invalid")
	ErrParentCycle       = errors.New("navigation: hierarchy creates a cycle")
	ErrPositionInvalid   = errors.New("navigation: position must be zero or positive")
	ErrReorderIncomplete = errors.New("navigation: reorder must reference existing sibling ids")
)

// NotFoundError reports a navigation lookup that matched zero rows.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("navigation: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a navigation NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// Item is one navigational entry within a (locale, group) pair. ParentID
// enables nesting; deleting a parent cascades to its children.
type Item struct {
	bun.BaseModel `bun:"table:navigation_items,alias:ni"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	LocaleID  uuid.UUID  `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	Group     string     `bun:"nav_group,notnull" json:"nav_group"`
	ParentID  *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	Position  int        `bun:"position,notnull,default:0" json:"position"`
	IsEnabled bool       `bun:"is_enabled,notnull,default:true" json:"is_enabled"`
	Label     string     `bun:"label,notnull" json:"label"`
	Href      string     `bun:"href,notnull" json:"href"`
	Icon      *string    `bun:"icon" json:"icon,omitempty"`
	Target    *string    `bun:"target" json:"target,omitempty"`
	Highlight bool       `bun:"highlight,notnull,default:false" json:"highlight"`
	Badge     *string    `bun:"badge" json:"badge,omitempty"`
	CreatedBy uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by"`
	UpdatedBy uuid.UUID  `bun:"updated_by,notnull,type:uuid" json:"updated_by"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Locale   *locales.Locale `bun:"rel:belongs-to,join:locale_id=id" json:"locale,omitempty"`
	Parent   *Item           `bun:"rel:belongs-to,join:parent_id=id" json:"parent,omitempty"`
	Children []*Item         `bun:"rel:has-many,join:id=parent_id" json:"children,omitempty"`
}

// Node is a resolved navigation entry with its nested children, ready for
// rendering. Href carries the locale-aware absolute path.
type Node struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Href      string    `json:"href"`
	Icon      string    `json:"icon,omitempty"`
	Target    string    `json:"target,omitempty"`
	Highlight bool      `json:"highlight,omitempty"`
	Badge     string    `json:"badge,omitempty"`
	Children  []Node    `json:"children,omitempty"`
}
