package domain

import "strings"

// Status represents lifecycle states for storefront content entities.
type Status string

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft Status = "draft"
	// StatusPublished identifies content available to storefront visitors.
	StatusPublished Status = "published"
	// StatusArchived marks content retained for history but not publicly visible.
	StatusArchived Status = "archived"
)

// NormalizeStatus coerces arbitrary status strings into a known value,
// defaulting to draft for blank input.
func NormalizeStatus(input string) Status {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return StatusDraft
	}
	return Status(trimmed)
}

// IsValid reports whether the status is one of the persisted values.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}
