package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrProductIDRequired    = errors.New("catalog: product id required")
	ErrProductNameRequired  = errors.New("catalog: at least one translation with a name is required")
	ErrSlugInvalid          = errors.New("catalog: slug contains invalid characters")
	ErrSlugExists           = errors.New("catalog: slug already exists for locale")
	ErrPriceInvalid         = errors.New("catalog: price must be zero or positive")
	ErrDuplicateLocale      = errors.New("catalog: duplicate translation locale provided")
	ErrUnknownLocale        = errors.New("catalog: unknown locale")
	ErrCategoryIDRequired   = errors.New("catalog: category id required")
	ErrCategorySlugRequired = errors.New("catalog: category slug is required")
	ErrCategoryParentCycle  = errors.New("catalog: parent assignment creates a cycle")
	ErrLinkURLRequired      = errors.New("catalog: buy link url is required")
)

// NotFoundError reports a catalog lookup that matched zero rows. Read paths
// translate it into a nil result rather than surfacing an error.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("catalog: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a catalog NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
