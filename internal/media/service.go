package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	slugpkg "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/identity"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/media"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// UploadInput carries one file destined for the CDN.
type UploadInput struct {
	Filename string
	MimeType string
	Body     io.Reader
	FolderID *uuid.UUID
	ActorID  uuid.UUID
}

// FolderInput creates one folder tree node.
type FolderInput struct {
	Name     string
	ParentID *uuid.UUID
	ActorID  uuid.UUID
}

// FolderNode is one node of the assembled folder tree.
type FolderNode struct {
	Folder   *Folder       `json:"folder"`
	Children []*FolderNode `json:"children,omitempty"`
}

// Service manages CDN-hosted media assets and their metadata. The CDN is
// the source of truth for object bytes; the database holds only metadata,
// so writes touch the CDN first and the database second.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*Asset, error)
	GetAsset(ctx context.Context, id uuid.UUID) (*Asset, error)
	ListAssets(ctx context.Context, filters AssetFilters) ([]*Asset, error)
	DeleteAsset(ctx context.Context, id uuid.UUID) error

	CreateFolder(ctx context.Context, input FolderInput) (*Folder, error)
	DeleteFolder(ctx context.Context, id uuid.UUID) error
	FolderTree(ctx context.Context) ([]*FolderNode, error)
}

// ServiceOption customises the media service.
type ServiceOption func(*service)

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides asset id generation, used by tests.
func WithIDGenerator(generate func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generate != nil {
			s.generateID = generate
		}
	}
}

type service struct {
	assets     AssetRepository
	folders    FolderRepository
	storage    interfaces.StorageProvider
	logger     interfaces.Logger
	now        func() time.Time
	generateID func() uuid.UUID
}

// NewService constructs a media service over the given repositories and
// storage provider.
func NewService(assets AssetRepository, folders FolderRepository, storage interfaces.StorageProvider, opts ...ServiceOption) Service {
	s := &service{
		assets:     assets,
		folders:    folders,
		storage:    storage,
		logger:     logging.NoOp(),
		now:        time.Now,
		generateID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload pushes the object to the CDN and records its metadata. The CDN
// write happens first; if the metadata insert fails afterwards the remote
// object is removed again so the two stores stay consistent.
func (s *service) Upload(ctx context.Context, input UploadInput) (*Asset, error) {
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		return nil, media.ErrFilenameRequired
	}
	if input.Body == nil {
		return nil, media.ErrEmptyUpload
	}

	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, fmt.Errorf("media: read upload body: %w", err)
	}
	if len(body) == 0 {
		return nil, media.ErrEmptyUpload
	}

	if input.FolderID != nil {
		if _, err := s.folders.GetByID(ctx, *input.FolderID); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	contentType := s.resolveContentType(input.MimeType, filename, body)
	path := s.objectPath(filename, input.ActorID, now)

	stored, err := s.storage.Upload(ctx, path, contentType, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: upload %s: %v", media.ErrStorageUnavailable, path, err)
	}

	asset := &Asset{
		ID:         s.generateID(),
		Path:       stored.Path,
		PublicURL:  stored.PublicURL,
		MimeType:   contentType,
		Size:       stored.Size,
		FolderID:   input.FolderID,
		UploadedBy: input.ActorID,
		CreatedAt:  now,
	}

	created, err := s.assets.Create(ctx, asset)
	if err != nil {
		if cleanupErr := s.storage.Delete(ctx, stored.Path); cleanupErr != nil && !errors.Is(cleanupErr, interfaces.ErrObjectNotFound) {
			s.logger.Error("media.upload.orphan_object",
				"path", stored.Path,
				"error", cleanupErr,
			)
		}
		return nil, err
	}
	return created, nil
}

func (s *service) GetAsset(ctx context.Context, id uuid.UUID) (*Asset, error) {
	if id == uuid.Nil {
		return nil, media.ErrAssetIDRequired
	}
	return s.assets.GetByID(ctx, id)
}

func (s *service) ListAssets(ctx context.Context, filters AssetFilters) ([]*Asset, error) {
	return s.assets.List(ctx, filters)
}

// DeleteAsset removes the CDN object, then its metadata row. A CDN 404
// counts as already deleted; any other CDN failure aborts so the row keeps
// pointing at a live object.
func (s *service) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return media.ErrAssetIDRequired
	}

	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, asset.Path); err != nil {
		if !errors.Is(err, interfaces.ErrObjectNotFound) {
			return fmt.Errorf("%w: delete %s: %v", media.ErrStorageUnavailable, asset.Path, err)
		}
		s.logger.Warn("media.delete.object_already_gone",
			"asset_id", id.String(),
			"path", asset.Path,
		)
	}

	return s.assets.Delete(ctx, id)
}

func (s *service) CreateFolder(ctx context.Context, input FolderInput) (*Folder, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, media.ErrFolderNameRequired
	}
	if input.ParentID != nil {
		if _, err := s.folders.GetByID(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	return s.folders.Create(ctx, &Folder{
		ID:        s.generateID(),
		Name:      name,
		ParentID:  input.ParentID,
		CreatedBy: input.ActorID,
		CreatedAt: s.now().UTC(),
	})
}

// DeleteFolder removes an empty folder. Folders holding assets or child
// folders are rejected so nothing is orphaned silently.
func (s *service) DeleteFolder(ctx context.Context, id uuid.UUID) error {
	if _, err := s.folders.GetByID(ctx, id); err != nil {
		return err
	}

	assets, err := s.assets.List(ctx, AssetFilters{FolderID: &id, Limit: 1})
	if err != nil {
		return err
	}
	if len(assets) > 0 {
		return media.ErrFolderNotEmpty
	}

	folders, err := s.folders.List(ctx)
	if err != nil {
		return err
	}
	for _, folder := range folders {
		if folder.ParentID != nil && *folder.ParentID == id {
			return media.ErrFolderNotEmpty
		}
	}

	return s.folders.Delete(ctx, id)
}

// FolderTree assembles the stored folders into their hierarchy. Folders
// whose parent is missing surface as roots.
func (s *service) FolderTree(ctx context.Context) ([]*FolderNode, error) {
	folders, err := s.folders.List(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uuid.UUID]*FolderNode, len(folders))
	for _, folder := range folders {
		nodes[folder.ID] = &FolderNode{Folder: folder}
	}

	var roots []*FolderNode
	for _, folder := range folders {
		node := nodes[folder.ID]
		if folder.ParentID != nil {
			if parent, ok := nodes[*folder.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	var sortNodes func(list []*FolderNode)
	sortNodes = func(list []*FolderNode) {
		sort.Slice(list, func(i, j int) bool {
			return list[i].Folder.Name < list[j].Folder.Name
		})
		for _, node := range list {
			sortNodes(node.Children)
		}
	}
	sortNodes(roots)

	return roots, nil
}

func (s *service) resolveContentType(declared, filename string, body []byte) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(body)
}

// objectPath builds the zone-relative storage path for an upload. The name
// carries a derived token so repeated uploads of the same filename never
// overwrite each other.
func (s *service) objectPath(filename string, actor uuid.UUID, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if normalized, err := slugpkg.Normalize(base); err == nil && slugpkg.IsValid(normalized) {
		base = normalized
	} else {
		base = "file"
	}

	token := identity.StoragePathToken(filename + "|" + actor.String() + "|" + now.Format(time.RFC3339Nano))
	return fmt.Sprintf("media/%04d/%02d/%s-%s%s", now.Year(), int(now.Month()), base, token, ext)
}
