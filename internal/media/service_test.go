package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/media"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleteErr error
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, path string, _ string, body io.Reader) (*interfaces.StoredObject, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data

	return &interfaces.StoredObject{
		Path:      path,
		PublicURL: f.PublicURL(path),
		Size:      int64(len(data)),
	}, nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[path]; !ok {
		return fmt.Errorf("fake delete %s: %w", path, interfaces.ErrObjectNotFound)
	}
	delete(f.objects, path)
	return nil
}

func (f *fakeStorage) PublicURL(path string) string {
	return "https://cdn.amara.example/" + path
}

func (f *fakeStorage) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[path]
	return ok
}

func newMediaService(storage interfaces.StorageProvider, opts ...ServiceOption) (Service, AssetRepository, FolderRepository) {
	assets := NewMemoryAssetRepository()
	folders := NewMemoryFolderRepository()
	base := []ServiceOption{
		WithClock(func() time.Time {
			return time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
		}),
	}
	svc := NewService(assets, folders, storage, append(base, opts...)...)
	return svc, assets, folders
}

func TestUploadStoresObjectThenMetadata(t *testing.T) {
	storage := newFakeStorage()
	svc, _, _ := newMediaService(storage)

	asset, err := svc.Upload(context.Background(), UploadInput{
		Filename: "Kem Chống Nắng.webp",
		Body:     strings.NewReader("webp-bytes"),
		ActorID:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !strings.HasPrefix(asset.Path, "media/2026/05/kem-chong-nang-") {
		t.Fatalf("unexpected object path %q", asset.Path)
	}
	if !strings.HasSuffix(asset.Path, ".webp") {
		t.Fatalf("expected .webp extension, got %q", asset.Path)
	}
	if !storage.has(asset.Path) {
		t.Fatalf("object %q missing from storage", asset.Path)
	}
	if asset.Size != int64(len("webp-bytes")) {
		t.Fatalf("unexpected size %d", asset.Size)
	}
	if asset.MimeType != "image/webp" {
		t.Fatalf("expected mime resolved from extension, got %q", asset.MimeType)
	}
	if asset.PublicURL != "https://cdn.amara.example/"+asset.Path {
		t.Fatalf("unexpected public url %q", asset.PublicURL)
	}

	fetched, err := svc.GetAsset(context.Background(), asset.ID)
	if err != nil {
		t.Fatalf("get asset: %v", err)
	}
	if fetched.Path != asset.Path {
		t.Fatalf("metadata path mismatch: %q vs %q", fetched.Path, asset.Path)
	}
}

func TestUploadRejectsEmptyBody(t *testing.T) {
	svc, _, _ := newMediaService(newFakeStorage())

	if _, err := svc.Upload(context.Background(), UploadInput{
		Filename: "empty.png",
		Body:     strings.NewReader(""),
		ActorID:  uuid.New(),
	}); !errors.Is(err, media.ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}

	if _, err := svc.Upload(context.Background(), UploadInput{
		Filename: "  ",
		Body:     strings.NewReader("x"),
		ActorID:  uuid.New(),
	}); !errors.Is(err, media.ErrFilenameRequired) {
		t.Fatalf("expected ErrFilenameRequired, got %v", err)
	}
}

func TestUploadAbortsWhenStorageFails(t *testing.T) {
	storage := newFakeStorage()
	storage.uploadErr = errors.New("storage down")
	svc, assets, _ := newMediaService(storage)

	if _, err := svc.Upload(context.Background(), UploadInput{
		Filename: "serum.jpg",
		Body:     strings.NewReader("jpg-bytes"),
		ActorID:  uuid.New(),
	}); err == nil {
		t.Fatal("expected upload error")
	}

	records, err := assets.List(context.Background(), AssetFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no metadata rows after failed upload, got %d", len(records))
	}
}

type failingAssetRepository struct {
	AssetRepository
}

func (f *failingAssetRepository) Create(context.Context, *Asset) (*Asset, error) {
	return nil, errors.New("insert failed")
}

func TestUploadRemovesObjectWhenMetadataFails(t *testing.T) {
	storage := newFakeStorage()
	folders := NewMemoryFolderRepository()
	svc := NewService(&failingAssetRepository{NewMemoryAssetRepository()}, folders, storage)

	if _, err := svc.Upload(context.Background(), UploadInput{
		Filename: "serum.jpg",
		Body:     strings.NewReader("jpg-bytes"),
		ActorID:  uuid.New(),
	}); err == nil {
		t.Fatal("expected upload error")
	}

	storage.mu.Lock()
	remaining := len(storage.objects)
	storage.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected orphaned object to be removed, %d left", remaining)
	}
}

func TestDeleteAssetRemovesObjectAndRow(t *testing.T) {
	storage := newFakeStorage()
	svc, _, _ := newMediaService(storage)

	asset, err := svc.Upload(context.Background(), UploadInput{
		Filename: "toner.png",
		Body:     strings.NewReader("png-bytes"),
		ActorID:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.DeleteAsset(context.Background(), asset.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if storage.has(asset.Path) {
		t.Fatalf("object %q should be gone", asset.Path)
	}
	if _, err := svc.GetAsset(context.Background(), asset.ID); !media.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDeleteAssetTreatsMissingObjectAsSuccess(t *testing.T) {
	storage := newFakeStorage()
	svc, _, _ := newMediaService(storage)

	asset, err := svc.Upload(context.Background(), UploadInput{
		Filename: "toner.png",
		Body:     strings.NewReader("png-bytes"),
		ActorID:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	// Simulate the object being purged on the CDN side already.
	storage.mu.Lock()
	delete(storage.objects, asset.Path)
	storage.mu.Unlock()

	if err := svc.DeleteAsset(context.Background(), asset.ID); err != nil {
		t.Fatalf("delete should treat 404 as success, got %v", err)
	}
	if _, err := svc.GetAsset(context.Background(), asset.ID); !media.IsNotFound(err) {
		t.Fatalf("expected metadata gone, got %v", err)
	}
}

func TestDeleteAssetAbortsOnStorageFailure(t *testing.T) {
	storage := newFakeStorage()
	svc, _, _ := newMediaService(storage)

	asset, err := svc.Upload(context.Background(), UploadInput{
		Filename: "toner.png",
		Body:     strings.NewReader("png-bytes"),
		ActorID:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	storage.deleteErr = errors.New("storage down")

	if err := svc.DeleteAsset(context.Background(), asset.ID); err == nil {
		t.Fatal("expected delete error")
	}
	if _, err := svc.GetAsset(context.Background(), asset.ID); err != nil {
		t.Fatalf("metadata row must survive a failed CDN delete: %v", err)
	}
}

func TestFolderTreeAndEmptyDeleteGuard(t *testing.T) {
	storage := newFakeStorage()
	svc, _, _ := newMediaService(storage)
	actor := uuid.New()

	root, err := svc.CreateFolder(context.Background(), FolderInput{Name: "Products", ActorID: actor})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	child, err := svc.CreateFolder(context.Background(), FolderInput{Name: "Serums", ParentID: &root.ID, ActorID: actor})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if _, err := svc.CreateFolder(context.Background(), FolderInput{Name: "Banners", ActorID: actor}); err != nil {
		t.Fatalf("create sibling: %v", err)
	}

	tree, err := svc.FolderTree(context.Background())
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if tree[0].Folder.Name != "Banners" || tree[1].Folder.Name != "Products" {
		t.Fatalf("unexpected root order: %s, %s", tree[0].Folder.Name, tree[1].Folder.Name)
	}
	if len(tree[1].Children) != 1 || tree[1].Children[0].Folder.ID != child.ID {
		t.Fatalf("expected Serums nested under Products")
	}

	if err := svc.DeleteFolder(context.Background(), root.ID); !errors.Is(err, media.ErrFolderNotEmpty) {
		t.Fatalf("expected ErrFolderNotEmpty for folder with children, got %v", err)
	}

	if _, err := svc.Upload(context.Background(), UploadInput{
		Filename: "serum.jpg",
		Body:     strings.NewReader("jpg"),
		FolderID: &child.ID,
		ActorID:  actor,
	}); err != nil {
		t.Fatalf("upload into folder: %v", err)
	}
	if err := svc.DeleteFolder(context.Background(), child.ID); !errors.Is(err, media.ErrFolderNotEmpty) {
		t.Fatalf("expected ErrFolderNotEmpty for folder with assets, got %v", err)
	}
}
