package pages

import (
	"errors"
	"fmt"
)

var (
	ErrPageIDRequired     = errors.New("pages: page id required")
	ErrSlugRequired       = errors.New("pages: slug is required")
	ErrSlugInvalid        = errors.New("pages: slug contains invalid characters")
	ErrSlugExists         = errors.New("pages: slug already exists for locale")
	ErrTitleRequired      = errors.New("pages: title is required")
	ErrUnknownLocale      = errors.New("pages: unknown locale")
	ErrSectionTypeInvalid = errors.New("pages: section type is not recognized")
	ErrSectionConfig      = errors.New("pages: section config failed validation")
	ErrPositionInvalid    = errors.New("pages: position must be zero or positive")
)

// NotFoundError reports a page lookup that matched zero rows. Storefront
// read paths translate it into a nil result driving a 404, never a raw error.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pages: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a pages NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
