package domain

import internaldomain "github.com/amara-beauty/storefront-cms/internal/domain"

// Status represents lifecycle states for storefront content entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies content available to storefront visitors.
	StatusPublished = internaldomain.StatusPublished
	// StatusArchived marks content retained for history but not publicly visible.
	StatusArchived = internaldomain.StatusArchived
)
