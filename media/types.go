package media

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrAssetIDRequired    = errors.New("media: asset id required")
	ErrFilenameRequired   = errors.New("media: filename is required")
	ErrEmptyUpload        = errors.New("media: upload body is empty")
	ErrFolderNameRequired = errors.New("media: folder name is required")
	ErrFolderNotEmpty     = errors.New("media: folder is not empty")

	// ErrStorageUnavailable reports a CDN request that failed for any
	// reason other than the object being absent. Callers surface it as an
	// upstream failure rather than a client error.
	ErrStorageUnavailable = errors.New("media: cdn request failed")
)

// NotFoundError reports a media lookup that matched zero rows.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("media: %s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is a media NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// Asset is the metadata row for one CDN-hosted object. The row exists only
// while the remote object does: uploads insert it after the CDN accepts the
// bytes, deletes remove it only after the CDN confirms (or 404s).
type Asset struct {
	bun.BaseModel `bun:"table:media_assets,alias:ma"`

	ID         uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Path       string     `bun:"path,notnull" json:"path"`
	PublicURL  string     `bun:"public_url,notnull" json:"public_url"`
	MimeType   string     `bun:"mime_type,notnull" json:"mime_type"`
	Size       int64      `bun:"size,notnull,default:0" json:"size"`
	FolderID   *uuid.UUID `bun:"folder_id,type:uuid" json:"folder_id,omitempty"`
	UploadedBy uuid.UUID  `bun:"uploaded_by,notnull,type:uuid" json:"uploaded_by"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Folder *Folder `bun:"rel:belongs-to,join:folder_id=id" json:"folder,omitempty"`
}

// Folder is one node of the self-referential media folder tree.
type Folder struct {
	bun.BaseModel `bun:"table:media_folders,alias:mf"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Name      string     `bun:"name,notnull" json:"name"`
	ParentID  *uuid.UUID `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	CreatedBy uuid.UUID  `bun:"created_by,notnull,type:uuid" json:"created_by"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Parent   *Folder   `bun:"rel:belongs-to,join:parent_id=id" json:"parent,omitempty"`
	Children []*Folder `bun:"rel:has-many,join:id=parent_id" json:"children,omitempty"`
}
