package navigation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/locales"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/navigation"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// ItemInput captures the payload for creating or updating a navigation
// item.
type ItemInput struct {
	ID        *uuid.UUID
	Locale    string
	Group     string
	ParentID  *uuid.UUID
	Position  int
	IsEnabled bool
	Label     string
	Href      string
	Icon      *string
	Target    *string
	Highlight bool
	Badge     *string
	ActorID   uuid.UUID
}

// Service exposes navigation reads for the storefront and item mutations
// for the admin application.
type Service interface {
	GetNavigation(ctx context.Context, locale string, group string) ([]Node, error)

	CreateItem(ctx context.Context, input ItemInput) (*Item, error)
	UpdateItem(ctx context.Context, input ItemInput) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, locale string, group string, parentID *uuid.UUID, orderedIDs []uuid.UUID) error
	BulkUpdate(ctx context.Context, updates []PositionUpdate) error
}

// ServiceOption customises the navigation service.
type ServiceOption func(*service)

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHrefResolver overrides the default prefix-based href resolver.
func WithHrefResolver(resolver HrefResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.resolver = resolver
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

// WithIDGenerator overrides id generation, used by tests.
func WithIDGenerator(id func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if id != nil {
			s.id = id
		}
	}
}

type service struct {
	repo     ItemRepository
	locales  locales.Repository
	resolver HrefResolver
	logger   interfaces.Logger
	now      func() time.Time
	id       func() uuid.UUID
}

// NewService constructs a navigation service with the required
// dependencies.
func NewService(repo ItemRepository, localeRepo locales.Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		locales:  localeRepo,
		resolver: NewPrefixResolver(),
		logger:   logging.NoOp(),
		now:      time.Now,
		id:       uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetNavigation returns the enabled items for (locale, group) as a nested
// tree in position order with locale-aware hrefs. Store failures degrade
// to an empty tree.
func (s *service) GetNavigation(ctx context.Context, locale string, group string) ([]Node, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, navigation.ErrUnknownLocale
	}

	records, err := s.repo.List(ctx, ItemFilters{
		LocaleID:    &loc.ID,
		Group:       strings.TrimSpace(group),
		EnabledOnly: true,
	})
	if err != nil {
		s.logger.Error("navigation.get.query_failed", "error", err, "locale", locale, "group", group)
		return []Node{}, nil
	}

	return s.buildTree(ctx, loc.Code, records), nil
}

// CreateItem validates and inserts a navigation item.
func (s *service) CreateItem(ctx context.Context, input ItemInput) (*Item, error) {
	record, err := s.buildItem(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, record)
}

// UpdateItem validates and replaces a navigation item.
func (s *service) UpdateItem(ctx context.Context, input ItemInput) (*Item, error) {
	if input.ID == nil || *input.ID == uuid.Nil {
		return nil, navigation.ErrItemIDRequired
	}
	existing, err := s.repo.GetByID(ctx, *input.ID)
	if err != nil {
		return nil, err
	}
	record, err := s.buildItem(ctx, input, existing)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, record)
}

// DeleteItem removes the item and its entire subtree in one transaction.
func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return navigation.ErrItemIDRequired
	}
	root, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	siblings, err := s.repo.List(ctx, ItemFilters{LocaleID: &root.LocaleID, Group: root.Group})
	if err != nil {
		return err
	}

	doomed := collectSubtree(siblings, id)
	return s.repo.Delete(ctx, doomed)
}

// Reorder rewrites the positions of the sibling set under parentID to match
// orderedIDs, atomically. Every current sibling must appear exactly once.
func (s *service) Reorder(ctx context.Context, locale string, group string, parentID *uuid.UUID, orderedIDs []uuid.UUID) error {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return navigation.ErrUnknownLocale
	}
	group = strings.TrimSpace(group)
	if group == "" {
		return navigation.ErrGroupRequired
	}

	records, err := s.repo.List(ctx, ItemFilters{LocaleID: &loc.ID, Group: group})
	if err != nil {
		return err
	}

	siblings := map[uuid.UUID]struct{}{}
	for _, record := range records {
		if sameParent(record.ParentID, parentID) {
			siblings[record.ID] = struct{}{}
		}
	}
	if len(siblings) != len(orderedIDs) {
		return navigation.ErrReorderIncomplete
	}
	for _, id := range orderedIDs {
		if _, ok := siblings[id]; !ok {
			return navigation.ErrReorderIncomplete
		}
		delete(siblings, id)
	}

	updates := make([]PositionUpdate, 0, len(orderedIDs))
	for position, id := range orderedIDs {
		updates = append(updates, PositionUpdate{ID: id, Position: position})
	}
	return s.repo.ApplyPositions(ctx, updates)
}

// BulkUpdate applies position and re-parenting updates atomically.
func (s *service) BulkUpdate(ctx context.Context, updates []PositionUpdate) error {
	for _, update := range updates {
		if update.ID == uuid.Nil {
			return navigation.ErrItemIDRequired
		}
		if update.Position < 0 {
			return navigation.ErrPositionInvalid
		}
		if update.ParentID != nil {
			if err := s.checkCycle(ctx, update.ID, *update.ParentID); err != nil {
				return err
			}
		}
	}
	return s.repo.ApplyPositions(ctx, updates)
}

func (s *service) buildItem(ctx context.Context, input ItemInput, existing *Item) (*Item, error) {
	if strings.TrimSpace(input.Label) == "" {
		return nil, navigation.ErrLabelRequired
	}
	group := strings.TrimSpace(input.Group)
	if group == "" {
		return nil, navigation.ErrGroupRequired
	}
	if input.Position < 0 {
		return nil, navigation.ErrPositionInvalid
	}
	loc, err := s.locales.GetByCode(ctx, input.Locale)
	if err != nil {
		return nil, navigation.ErrUnknownLocale
	}

	if input.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, navigation.ErrParentInvalid
		}
		if parent.LocaleID != loc.ID || parent.Group != group {
			return nil, navigation.ErrParentInvalid
		}
		if existing != nil {
			if err := s.checkCycle(ctx, existing.ID, *input.ParentID); err != nil {
				return nil, err
			}
		}
	}

	now := s.now()
	record := &Item{
		ID:        s.id(),
		LocaleID:  loc.ID,
		Group:     group,
		ParentID:  input.ParentID,
		Position:  input.Position,
		IsEnabled: input.IsEnabled,
		Label:     input.Label,
		Href:      strings.TrimSpace(input.Href),
		Icon:      input.Icon,
		Target:    input.Target,
		Highlight: input.Highlight,
		Badge:     input.Badge,
		CreatedBy: input.ActorID,
		UpdatedBy: input.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.ID != nil && *input.ID != uuid.Nil {
		record.ID = *input.ID
	}
	if existing != nil {
		record.CreatedBy = existing.CreatedBy
		record.CreatedAt = existing.CreatedAt
	}
	return record, nil
}

func (s *service) checkCycle(ctx context.Context, id, parentID uuid.UUID) error {
	current := parentID
	for current != uuid.Nil {
		if current == id {
			return navigation.ErrParentCycle
		}
		parent, err := s.repo.GetByID(ctx, current)
		if err != nil {
			if navigation.IsNotFound(err) {
				return nil
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return nil
}

func (s *service) buildTree(ctx context.Context, locale string, records []*Item) []Node {
	children := map[uuid.UUID][]*Item{}
	var roots []*Item
	byID := map[uuid.UUID]*Item{}
	for _, record := range records {
		byID[record.ID] = record
	}
	for _, record := range records {
		if record.ParentID != nil {
			if _, ok := byID[*record.ParentID]; ok {
				children[*record.ParentID] = append(children[*record.ParentID], record)
				continue
			}
		}
		roots = append(roots, record)
	}

	var build func(items []*Item) []Node
	build = func(items []*Item) []Node {
		nodes := make([]Node, 0, len(items))
		for _, item := range items {
			href, err := s.resolver.Resolve(ctx, locale, item)
			if err != nil {
				s.logger.Warn("navigation.href_resolve_failed", "item_id", item.ID, "href", item.Href, "error", err)
				href = item.Href
			}
			node := Node{
				ID:        item.ID,
				Label:     item.Label,
				Href:      href,
				Highlight: item.Highlight,
				Children:  build(children[item.ID]),
			}
			if item.Icon != nil {
				node.Icon = *item.Icon
			}
			if item.Target != nil {
				node.Target = *item.Target
			}
			if item.Badge != nil {
				node.Badge = *item.Badge
			}
			nodes = append(nodes, node)
		}
		return nodes
	}
	return build(roots)
}

// collectSubtree gathers id plus every descendant reachable through the
// sibling set.
func collectSubtree(records []*Item, id uuid.UUID) []uuid.UUID {
	children := map[uuid.UUID][]uuid.UUID{}
	for _, record := range records {
		if record.ParentID != nil {
			children[*record.ParentID] = append(children[*record.ParentID], record.ID)
		}
	}
	doomed := []uuid.UUID{}
	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		doomed = append(doomed, next)
		queue = append(queue, children[next]...)
	}
	return doomed
}

func sameParent(a, b *uuid.UUID) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return *a == *b
	}
}
