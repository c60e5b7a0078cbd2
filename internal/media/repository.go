package media

import (
	"context"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/media"
)

type Asset = media.Asset
type Folder = media.Folder
type NotFoundError = media.NotFoundError

// AssetFilters narrows asset listings.
type AssetFilters struct {
	FolderID *uuid.UUID
	MimeType string
	Limit    int
	Offset   int
}

// AssetRepository persists media asset metadata. The rows describe objects
// hosted on the CDN; the repository never touches the objects themselves.
type AssetRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	List(ctx context.Context, filters AssetFilters) ([]*Asset, error)
	Create(ctx context.Context, asset *Asset) (*Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FolderRepository persists the media folder tree.
type FolderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Folder, error)
	List(ctx context.Context) ([]*Folder, error)
	Create(ctx context.Context, folder *Folder) (*Folder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
