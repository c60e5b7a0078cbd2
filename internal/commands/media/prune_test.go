package mediacmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	mediasvc "github.com/amara-beauty/storefront-cms/internal/media"
	"github.com/amara-beauty/storefront-cms/media"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

type stubStorage struct {
	mu      sync.Mutex
	objects map[string]struct{}
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string]struct{})}
}

func (s *stubStorage) Upload(_ context.Context, path string, _ string, body io.Reader) (*interfaces.StoredObject, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.objects[path] = struct{}{}
	s.mu.Unlock()
	return &interfaces.StoredObject{Path: path, PublicURL: s.PublicURL(path), Size: int64(len(data))}, nil
}

func (s *stubStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return fmt.Errorf("stub delete %s: %w", path, interfaces.ErrObjectNotFound)
	}
	delete(s.objects, path)
	return nil
}

func (s *stubStorage) PublicURL(path string) string {
	return "https://cdn.amara.example/" + path
}

func TestPruneFolderCommand(t *testing.T) {
	storage := newStubStorage()
	svc := mediasvc.NewService(mediasvc.NewMemoryAssetRepository(), mediasvc.NewMemoryFolderRepository(), storage)
	actor := uuid.New()

	folder, err := svc.CreateFolder(context.Background(), mediasvc.FolderInput{Name: "Campaign", ActorID: actor})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	for _, name := range []string{"a.jpg", "b.jpg"} {
		if _, err := svc.Upload(context.Background(), mediasvc.UploadInput{
			Filename: name,
			Body:     strings.NewReader("bytes"),
			FolderID: &folder.ID,
			ActorID:  actor,
		}); err != nil {
			t.Fatalf("upload %s: %v", name, err)
		}
	}

	handler := NewPruneFolderHandler(svc, nil)
	if err := handler.Execute(context.Background(), PruneFolderCommand{FolderID: folder.ID, ActorID: actor}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	assets, err := svc.ListAssets(context.Background(), mediasvc.AssetFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(assets) != 0 {
		t.Fatalf("expected all assets pruned, %d remain", len(assets))
	}

	storage.mu.Lock()
	remaining := len(storage.objects)
	storage.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected all objects pruned, %d remain", remaining)
	}

	tree, err := svc.FolderTree(context.Background())
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree) != 0 {
		t.Fatal("folder must be removed after prune")
	}
}

func TestDeleteAssetCommand(t *testing.T) {
	storage := newStubStorage()
	svc := mediasvc.NewService(mediasvc.NewMemoryAssetRepository(), mediasvc.NewMemoryFolderRepository(), storage)

	asset, err := svc.Upload(context.Background(), mediasvc.UploadInput{
		Filename: "banner.jpg",
		Body:     strings.NewReader("bytes"),
		ActorID:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	handler := NewDeleteAssetHandler(svc, nil)
	if err := handler.Execute(context.Background(), DeleteAssetCommand{AssetID: asset.ID}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := svc.GetAsset(context.Background(), asset.ID); !media.IsNotFound(err) {
		t.Fatalf("expected asset removed, got %v", err)
	}
}

func TestDeleteAssetCommandRejectsMissingID(t *testing.T) {
	svc := mediasvc.NewService(mediasvc.NewMemoryAssetRepository(), mediasvc.NewMemoryFolderRepository(), newStubStorage())
	handler := NewDeleteAssetHandler(svc, nil)

	err := handler.Execute(context.Background(), DeleteAssetCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
