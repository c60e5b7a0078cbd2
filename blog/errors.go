package blog

import (
	"errors"
	"fmt"
)

var (
	ErrPostIDRequired    = errors.New("blog: post id required")
	ErrTitleRequired     = errors.New("blog: at least one translation with a title is required")
	ErrSlugInvalid       = errors.New("blog: slug contains invalid characters")
	ErrSlugExists        = errors.New("blog: slug already exists for locale")
	ErrDuplicateLocale   = errors.New("blog: duplicate translation locale provided")
	ErrUnknownLocale     = errors.New("blog: unknown locale")
	ErrBodyFormatUnknown = errors.New("blog: unknown body format")
)

// NotFoundError reports a blog lookup that matched zero rows.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("blog: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a blog NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
