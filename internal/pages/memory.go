package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryPageRepository struct {
	mu    sync.RWMutex
	pages map[uuid.UUID]*PageDefinition
}

// NewMemoryPageRepository creates an in-memory page store for tests and
// embedded setups.
func NewMemoryPageRepository() PageRepository {
	return &memoryPageRepository{pages: map[uuid.UUID]*PageDefinition{}}
}

func (m *memoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*PageDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.pages[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	return clonePage(record), nil
}

func (m *memoryPageRepository) GetBySlug(_ context.Context, localeID uuid.UUID, slug string) (*PageDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.pages {
		if record.Slug == slug && record.LocaleID == localeID {
			return clonePage(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "page", Key: slug}
}

func (m *memoryPageRepository) List(_ context.Context, filters PageFilters) ([]*PageDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*PageDefinition, 0, len(m.pages))
	for _, record := range m.pages {
		if filters.LocaleID != nil && record.LocaleID != *filters.LocaleID {
			continue
		}
		if filters.PageType != "" && record.PageType != filters.PageType {
			continue
		}
		if filters.Published != nil && record.IsPublished != *filters.Published {
			continue
		}
		records = append(records, clonePage(record))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Slug < records[j].Slug
	})
	return records, nil
}

func (m *memoryPageRepository) Create(_ context.Context, page *PageDefinition) (*PageDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages[page.ID] = clonePage(page)
	return clonePage(page), nil
}

func (m *memoryPageRepository) Update(_ context.Context, page *PageDefinition) (*PageDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.pages[page.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: page.ID.String()}
	}
	clone := clonePage(page)
	clone.Sections = cloneSections(existing.Sections)
	m.pages[page.ID] = clone
	return clonePage(clone), nil
}

func (m *memoryPageRepository) ReplaceSections(_ context.Context, pageID uuid.UUID, sections []*PageSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.pages[pageID]
	if !ok {
		return &NotFoundError{Resource: "page", Key: pageID.String()}
	}
	record.Sections = cloneSections(sections)
	return nil
}

func (m *memoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pages[id]; !ok {
		return &NotFoundError{Resource: "page", Key: id.String()}
	}
	delete(m.pages, id)
	return nil
}

type memoryStaticPageRepository struct {
	mu    sync.RWMutex
	pages map[string]*StaticPage
}

// NewMemoryStaticPageRepository creates an in-memory static page store.
func NewMemoryStaticPageRepository() StaticPageRepository {
	return &memoryStaticPageRepository{pages: map[string]*StaticPage{}}
}

func (m *memoryStaticPageRepository) GetBySlug(_ context.Context, slug string) (*StaticPage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.pages[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "static page", Key: slug}
	}
	return cloneStaticPage(record), nil
}

func (m *memoryStaticPageRepository) Upsert(_ context.Context, page *StaticPage) (*StaticPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.pages[page.Slug]; ok {
		page.ID = existing.ID
	}
	m.pages[page.Slug] = cloneStaticPage(page)
	return cloneStaticPage(page), nil
}

func (m *memoryStaticPageRepository) UpsertSlot(_ context.Context, slot *StaticPageSlot) (*StaticPageSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range m.pages {
		if record.ID != slot.StaticPageID {
			continue
		}
		for i, existing := range record.Slots {
			if existing.LocaleID == slot.LocaleID && existing.Key == slot.Key {
				slot.ID = existing.ID
				clone := *slot
				record.Slots[i] = &clone
				return slot, nil
			}
		}
		clone := *slot
		record.Slots = append(record.Slots, &clone)
		return slot, nil
	}
	return nil, &NotFoundError{Resource: "static page", Key: slot.StaticPageID.String()}
}

func clonePage(record *PageDefinition) *PageDefinition {
	if record == nil {
		return nil
	}
	clone := *record
	clone.Sections = cloneSections(record.Sections)
	return &clone
}

func cloneSections(sections []*PageSection) []*PageSection {
	out := make([]*PageSection, len(sections))
	for i, section := range sections {
		if section == nil {
			continue
		}
		clone := *section
		if section.Config != nil {
			clone.Config = append([]byte(nil), section.Config...)
		}
		out[i] = &clone
	}
	return out
}

func cloneStaticPage(record *StaticPage) *StaticPage {
	if record == nil {
		return nil
	}
	clone := *record
	clone.Translations = make([]*StaticPageTranslation, len(record.Translations))
	for i, tr := range record.Translations {
		if tr == nil {
			continue
		}
		trClone := *tr
		clone.Translations[i] = &trClone
	}
	clone.Slots = make([]*StaticPageSlot, len(record.Slots))
	for i, slot := range record.Slots {
		if slot == nil {
			continue
		}
		slotClone := *slot
		clone.Slots[i] = &slotClone
	}
	return &clone
}
