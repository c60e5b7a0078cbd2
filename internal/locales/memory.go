package locales

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/locales"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Locale
	byCode map[string]uuid.UUID
}

// NewMemoryRepository constructs an in-memory locale repository for tests
// and bootstrap flows that run without a database.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]*Locale),
		byCode: make(map[string]uuid.UUID),
	}
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, locales.ErrUnknownLocale
	}
	return cloneLocale(record), nil
}

func (m *memoryRepository) GetByCode(_ context.Context, code string) (*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byCode[locales.Normalize(code)]
	if !ok {
		return nil, locales.ErrUnknownLocale
	}
	return cloneLocale(m.byID[id]), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Locale, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneLocale(record))
	}
	return records, nil
}

func (m *memoryRepository) Upsert(_ context.Context, locale *Locale) (*Locale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneLocale(locale)
	cloned.Code = locales.Normalize(cloned.Code)
	if existing, ok := m.byCode[cloned.Code]; ok {
		cloned.ID = existing
	}
	m.byID[cloned.ID] = cloned
	m.byCode[cloned.Code] = cloned.ID
	return cloneLocale(cloned), nil
}

func cloneLocale(locale *Locale) *Locale {
	if locale == nil {
		return nil
	}
	cloned := *locale
	return &cloned
}
