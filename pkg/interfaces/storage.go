package interfaces

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound reports that the remote object does not exist. Storage
// implementations must return it (possibly wrapped) for delete/stat calls
// against missing paths so callers can treat "already gone" as success.
var ErrObjectNotFound = errors.New("storage: object not found")

// StoredObject describes the outcome of a successful upload.
type StoredObject struct {
	// Path is the zone-relative storage path the object was written to.
	Path string
	// PublicURL is the CDN pull-zone URL the object is served from.
	PublicURL string
	// Size is the number of bytes written.
	Size int64
}

// StorageProvider abstracts the CDN object store used for media assets.
// The canonical implementation targets the Bunny storage API; tests use an
// in-memory fake.
type StorageProvider interface {
	// Upload streams the object to the remote store under path. The path is
	// zone-relative and must not begin with a slash.
	Upload(ctx context.Context, path string, contentType string, body io.Reader) (*StoredObject, error)
	// Delete removes the remote object. Missing objects yield
	// ErrObjectNotFound, which callers may treat as success.
	Delete(ctx context.Context, path string) error
	// PublicURL resolves the pull-zone URL for a stored path without a
	// remote call.
	PublicURL(path string) string
}
