package blog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/blog"
)

type memoryPostRepository struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*Post
}

// NewMemoryPostRepository creates an in-memory post store for tests and
// embedded setups.
func NewMemoryPostRepository() PostRepository {
	return &memoryPostRepository{posts: map[uuid.UUID]*Post{}}
}

func (m *memoryPostRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.posts[id]
	if !ok || record.DeletedAt != nil {
		return nil, &blog.NotFoundError{Resource: "post", Key: id.String()}
	}
	return clonePost(record), nil
}

func (m *memoryPostRepository) GetBySlug(_ context.Context, localeID uuid.UUID, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.posts {
		if record.DeletedAt != nil {
			continue
		}
		for _, tr := range record.Translations {
			if tr != nil && tr.LocaleID == localeID && tr.Slug != nil && *tr.Slug == slug {
				return clonePost(record), nil
			}
		}
	}
	return nil, &blog.NotFoundError{Resource: "post", Key: slug}
}

func (m *memoryPostRepository) List(_ context.Context, filters PostFilters) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Post, 0, len(m.posts))
	for _, record := range m.posts {
		if record.DeletedAt != nil {
			continue
		}
		if filters.Status != "" && record.Status != string(filters.Status) {
			continue
		}
		if !filters.VisibleAt.IsZero() {
			if record.PublishedAt == nil || record.PublishedAt.After(filters.VisibleAt) {
				continue
			}
		}
		records = append(records, clonePost(record))
	}

	sort.SliceStable(records, func(i, j int) bool {
		left, right := records[i], records[j]
		switch {
		case left.PublishedAt != nil && right.PublishedAt != nil:
			if !left.PublishedAt.Equal(*right.PublishedAt) {
				return left.PublishedAt.After(*right.PublishedAt)
			}
		case left.PublishedAt != nil:
			return true
		case right.PublishedAt != nil:
			return false
		}
		return left.CreatedAt.After(right.CreatedAt)
	})

	if filters.Offset > 0 {
		if filters.Offset >= len(records) {
			return []*Post{}, nil
		}
		records = records[filters.Offset:]
	}
	if filters.Limit > 0 && len(records) > filters.Limit {
		records = records[:filters.Limit]
	}
	return records, nil
}

func (m *memoryPostRepository) Create(_ context.Context, post *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.posts[post.ID] = clonePost(post)
	return clonePost(post), nil
}

func (m *memoryPostRepository) Update(_ context.Context, post *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[post.ID]; !ok {
		return nil, &blog.NotFoundError{Resource: "post", Key: post.ID.String()}
	}
	m.posts[post.ID] = clonePost(post)
	return clonePost(post), nil
}

func (m *memoryPostRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return &blog.NotFoundError{Resource: "post", Key: id.String()}
	}
	delete(m.posts, id)
	return nil
}

func clonePost(record *Post) *Post {
	if record == nil {
		return nil
	}
	clone := *record
	clone.Translations = make([]*PostTranslation, len(record.Translations))
	for i, tr := range record.Translations {
		if tr == nil {
			continue
		}
		trClone := *tr
		clone.Translations[i] = &trClone
	}
	clone.Media = make([]*PostMedia, len(record.Media))
	for i, media := range record.Media {
		if media == nil {
			continue
		}
		mediaClone := *media
		clone.Media[i] = &mediaClone
	}
	return &clone
}
