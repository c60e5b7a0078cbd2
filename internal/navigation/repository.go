package navigation

import (
	"context"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/navigation"
)

// Model aliases for internal consumers.
type (
	Item          = navigation.Item
	Node          = navigation.Node
	NotFoundError = navigation.NotFoundError
)

// ItemFilters narrows navigation listings.
type ItemFilters struct {
	LocaleID    *uuid.UUID
	Group       string
	EnabledOnly bool
}

// PositionUpdate moves one item to a new position, optionally re-parenting
// it.
type PositionUpdate struct {
	ID       uuid.UUID
	Position int
	ParentID *uuid.UUID
}

// ItemRepository persists navigation items. ApplyPositions commits every
// update atomically so a failed write never leaves a half-reordered menu.
type ItemRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context, filters ItemFilters) ([]*Item, error)
	Create(ctx context.Context, item *Item) (*Item, error)
	Update(ctx context.Context, item *Item) (*Item, error)
	ApplyPositions(ctx context.Context, updates []PositionUpdate) error
	Delete(ctx context.Context, ids []uuid.UUID) error
}
