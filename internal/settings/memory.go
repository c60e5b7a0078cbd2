package settings

import (
	"context"
	"sort"
	"sync"

	"github.com/amara-beauty/storefront-cms/settings"
)

type memoryRepository struct {
	mu     sync.RWMutex
	values map[string]*SiteSetting
}

// NewMemoryRepository creates an in-memory settings store for tests and
// embedded setups.
func NewMemoryRepository() Repository {
	return &memoryRepository{values: map[string]*SiteSetting{}}
}

func (m *memoryRepository) Get(_ context.Context, key string) (*SiteSetting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.values[key]
	if !ok {
		return nil, &settings.NotFoundError{Key: key}
	}
	return cloneSetting(record), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*SiteSetting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*SiteSetting, 0, len(m.values))
	for _, record := range m.values {
		records = append(records, cloneSetting(record))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Key < records[j].Key
	})
	return records, nil
}

func (m *memoryRepository) Upsert(_ context.Context, setting *SiteSetting) (*SiteSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.values[setting.Key]; ok {
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
	}
	m.values[setting.Key] = cloneSetting(setting)
	return cloneSetting(setting), nil
}

func (m *memoryRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.values[key]; !ok {
		return &settings.NotFoundError{Key: key}
	}
	delete(m.values, key)
	return nil
}

func cloneSetting(record *SiteSetting) *SiteSetting {
	if record == nil {
		return nil
	}
	clone := *record
	if record.Value != nil {
		clone.Value = append([]byte(nil), record.Value...)
	}
	return &clone
}
