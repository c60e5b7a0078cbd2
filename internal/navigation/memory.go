package navigation

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryItemRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Item
}

// NewMemoryItemRepository creates an in-memory navigation store for tests
// and embedded setups.
func NewMemoryItemRepository() ItemRepository {
	return &memoryItemRepository{items: map[uuid.UUID]*Item{}}
}

func (m *memoryItemRepository) GetByID(_ context.Context, id uuid.UUID) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.items[id]
	if !ok {
		return nil, &NotFoundError{Resource: "item", Key: id.String()}
	}
	return cloneItem(record), nil
}

func (m *memoryItemRepository) List(_ context.Context, filters ItemFilters) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Item, 0, len(m.items))
	for _, record := range m.items {
		if filters.LocaleID != nil && record.LocaleID != *filters.LocaleID {
			continue
		}
		if filters.Group != "" && record.Group != filters.Group {
			continue
		}
		if filters.EnabledOnly && !record.IsEnabled {
			continue
		}
		records = append(records, cloneItem(record))
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Position != records[j].Position {
			return records[i].Position < records[j].Position
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (m *memoryItemRepository) Create(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[item.ID] = cloneItem(item)
	return cloneItem(item), nil
}

func (m *memoryItemRepository) Update(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[item.ID]; !ok {
		return nil, &NotFoundError{Resource: "item", Key: item.ID.String()}
	}
	m.items[item.ID] = cloneItem(item)
	return cloneItem(item), nil
}

func (m *memoryItemRepository) ApplyPositions(_ context.Context, updates []PositionUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// All or nothing, mirroring the transactional bun implementation.
	for _, update := range updates {
		if _, ok := m.items[update.ID]; !ok {
			return &NotFoundError{Resource: "item", Key: update.ID.String()}
		}
	}
	for _, update := range updates {
		record := m.items[update.ID]
		record.Position = update.Position
		if update.ParentID != nil {
			record.ParentID = update.ParentID
		}
	}
	return nil
}

func (m *memoryItemRepository) Delete(_ context.Context, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		if _, ok := m.items[id]; !ok {
			return &NotFoundError{Resource: "item", Key: id.String()}
		}
	}
	for _, id := range ids {
		delete(m.items, id)
	}
	return nil
}

func cloneItem(record *Item) *Item {
	if record == nil {
		return nil
	}
	clone := *record
	clone.Children = nil
	clone.Parent = nil
	return &clone
}
