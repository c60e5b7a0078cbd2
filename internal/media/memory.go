package media

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/media"
)

type memoryAssetRepository struct {
	mu     sync.RWMutex
	assets map[uuid.UUID]*Asset
}

// NewMemoryAssetRepository creates an in-memory asset repository.
func NewMemoryAssetRepository() AssetRepository {
	return &memoryAssetRepository{assets: make(map[uuid.UUID]*Asset)}
}

func (m *memoryAssetRepository) GetByID(_ context.Context, id uuid.UUID) (*Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.assets[id]
	if !ok {
		return nil, &media.NotFoundError{Resource: "asset", Key: id.String()}
	}
	return cloneAsset(record), nil
}

func (m *memoryAssetRepository) List(_ context.Context, filters AssetFilters) ([]*Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Asset, 0, len(m.assets))
	for _, record := range m.assets {
		if filters.FolderID != nil {
			if record.FolderID == nil || *record.FolderID != *filters.FolderID {
				continue
			}
		}
		if filters.MimeType != "" && !strings.HasPrefix(record.MimeType, filters.MimeType) {
			continue
		}
		records = append(records, cloneAsset(record))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID.String() > records[j].ID.String()
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if filters.Offset > 0 {
		if filters.Offset >= len(records) {
			return []*Asset{}, nil
		}
		records = records[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(records) {
		records = records[:filters.Limit]
	}
	return records, nil
}

func (m *memoryAssetRepository) Create(_ context.Context, asset *Asset) (*Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.assets[asset.ID] = cloneAsset(asset)
	return cloneAsset(asset), nil
}

func (m *memoryAssetRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.assets[id]; !ok {
		return &media.NotFoundError{Resource: "asset", Key: id.String()}
	}
	delete(m.assets, id)
	return nil
}

func cloneAsset(record *Asset) *Asset {
	clone := *record
	clone.Folder = nil
	if record.FolderID != nil {
		folderID := *record.FolderID
		clone.FolderID = &folderID
	}
	return &clone
}

type memoryFolderRepository struct {
	mu      sync.RWMutex
	folders map[uuid.UUID]*Folder
}

// NewMemoryFolderRepository creates an in-memory folder repository.
func NewMemoryFolderRepository() FolderRepository {
	return &memoryFolderRepository{folders: make(map[uuid.UUID]*Folder)}
}

func (m *memoryFolderRepository) GetByID(_ context.Context, id uuid.UUID) (*Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.folders[id]
	if !ok {
		return nil, &media.NotFoundError{Resource: "folder", Key: id.String()}
	}
	return cloneFolder(record), nil
}

func (m *memoryFolderRepository) List(_ context.Context) ([]*Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Folder, 0, len(m.folders))
	for _, record := range m.folders {
		records = append(records, cloneFolder(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}

func (m *memoryFolderRepository) Create(_ context.Context, folder *Folder) (*Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.folders[folder.ID] = cloneFolder(folder)
	return cloneFolder(folder), nil
}

func (m *memoryFolderRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.folders[id]; !ok {
		return &media.NotFoundError{Resource: "folder", Key: id.String()}
	}
	delete(m.folders, id)
	return nil
}

func cloneFolder(record *Folder) *Folder {
	clone := *record
	clone.Parent = nil
	clone.Children = nil
	if record.ParentID != nil {
		parentID := *record.ParentID
		clone.ParentID = &parentID
	}
	return &clone
}
