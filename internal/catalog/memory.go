package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryProductRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Product
}

// NewMemoryProductRepository constructs an in-memory product repository.
func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{byID: make(map[uuid.UUID]*Product)}
}

func (m *memoryProductRepository) GetByID(_ context.Context, id uuid.UUID) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok || record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "product", Key: id.String()}
	}
	return cloneProduct(record), nil
}

func (m *memoryProductRepository) GetBySlug(_ context.Context, localeID uuid.UUID, slug string) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.DeletedAt != nil {
			continue
		}
		for _, tr := range record.Translations {
			if tr.LocaleID == localeID && tr.Slug != nil && *tr.Slug == slug {
				return cloneProduct(record), nil
			}
		}
	}
	return nil, &NotFoundError{Resource: "product", Key: slug}
}

func (m *memoryProductRepository) List(_ context.Context, filters ProductFilters) ([]*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Product, 0, len(m.byID))
	for _, record := range m.byID {
		if record.DeletedAt != nil {
			continue
		}
		if filters.Status != "" && record.Status != string(filters.Status) {
			continue
		}
		if filters.CategoryID != nil {
			if record.CategoryID == nil || *record.CategoryID != *filters.CategoryID {
				continue
			}
		}
		if filters.Featured != nil && record.IsFeatured != *filters.Featured {
			continue
		}
		if filters.BestSeller != nil && record.IsBestSeller != *filters.BestSeller {
			continue
		}
		records = append(records, cloneProduct(record))
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].SortOrder != records[j].SortOrder {
			return records[i].SortOrder < records[j].SortOrder
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if filters.Limit > 0 && len(records) > filters.Limit {
		records = records[:filters.Limit]
	}
	return records, nil
}

func (m *memoryProductRepository) Create(_ context.Context, product *Product) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneProduct(product)
	m.byID[cloned.ID] = cloned
	return cloneProduct(cloned), nil
}

func (m *memoryProductRepository) Update(_ context.Context, product *Product) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[product.ID]; !ok {
		return nil, &NotFoundError{Resource: "product", Key: product.ID.String()}
	}
	cloned := cloneProduct(product)
	m.byID[cloned.ID] = cloned
	return cloneProduct(cloned), nil
}

func (m *memoryProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "product", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

type memoryCategoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Category
}

// NewMemoryCategoryRepository constructs an in-memory category repository.
func NewMemoryCategoryRepository() CategoryRepository {
	return &memoryCategoryRepository{byID: make(map[uuid.UUID]*Category)}
}

func (m *memoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: id.String()}
	}
	return m.withChildren(record), nil
}

func (m *memoryCategoryRepository) GetBySlug(_ context.Context, slug string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.Slug == slug {
			return m.withChildren(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "category", Key: slug}
}

func (m *memoryCategoryRepository) List(_ context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Category, 0, len(m.byID))
	for _, record := range m.byID {
		if !record.IsEnabled {
			continue
		}
		records = append(records, cloneCategory(record))
	}
	sortCategories(records)
	return records, nil
}

func (m *memoryCategoryRepository) ListRoots(_ context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Category, 0)
	for _, record := range m.byID {
		if record.ParentID == nil && record.IsEnabled {
			records = append(records, cloneCategory(record))
		}
	}
	sortCategories(records)
	return records, nil
}

func (m *memoryCategoryRepository) ListChildren(_ context.Context, parentID uuid.UUID) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Category, 0)
	for _, record := range m.byID {
		if record.ParentID != nil && *record.ParentID == parentID && record.IsEnabled {
			records = append(records, cloneCategory(record))
		}
	}
	sortCategories(records)
	return records, nil
}

func (m *memoryCategoryRepository) Create(_ context.Context, category *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneCategory(category)
	m.byID[cloned.ID] = cloned
	return cloneCategory(cloned), nil
}

func (m *memoryCategoryRepository) Update(_ context.Context, category *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[category.ID]; !ok {
		return nil, &NotFoundError{Resource: "category", Key: category.ID.String()}
	}
	cloned := cloneCategory(category)
	m.byID[cloned.ID] = cloned
	return cloneCategory(cloned), nil
}

func (m *memoryCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "category", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryCategoryRepository) withChildren(record *Category) *Category {
	cloned := cloneCategory(record)
	for _, candidate := range m.byID {
		if candidate.ParentID != nil && *candidate.ParentID == record.ID {
			cloned.Children = append(cloned.Children, cloneCategory(candidate))
		}
	}
	sortCategories(cloned.Children)
	return cloned
}

func sortCategories(records []*Category) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SortOrder < records[j].SortOrder
	})
}

func cloneProduct(record *Product) *Product {
	if record == nil {
		return nil
	}
	cloned := *record
	cloned.Translations = make([]*ProductTranslation, 0, len(record.Translations))
	for _, tr := range record.Translations {
		c := *tr
		cloned.Translations = append(cloned.Translations, &c)
	}
	cloned.Media = make([]*ProductMedia, 0, len(record.Media))
	for _, media := range record.Media {
		c := *media
		cloned.Media = append(cloned.Media, &c)
	}
	cloned.Links = make([]*ProductLink, 0, len(record.Links))
	for _, link := range record.Links {
		c := *link
		cloned.Links = append(cloned.Links, &c)
	}
	return &cloned
}

func cloneCategory(record *Category) *Category {
	if record == nil {
		return nil
	}
	cloned := *record
	cloned.Children = nil
	cloned.Translations = make([]*CategoryTranslation, 0, len(record.Translations))
	for _, tr := range record.Translations {
		c := *tr
		cloned.Translations = append(cloned.Translations, &c)
	}
	return &cloned
}
