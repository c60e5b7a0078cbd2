package storefront

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/identity"
	navigationsvc "github.com/amara-beauty/storefront-cms/internal/navigation"
	"github.com/amara-beauty/storefront-cms/navigation"
)

var (
	ErrSeedNavigationServiceRequired = errors.New("storefront: navigation service is required")
	ErrSeedGroupRequired             = errors.New("storefront: navigation group is required")
)

// SeedNavigationItem is one declarative menu entry for SeedNavigation.
// Children nest under their parent's position scope.
type SeedNavigationItem struct {
	Label     string
	Href      string
	Icon      string
	Badge     string
	Highlight bool
	Children  []SeedNavigationItem
}

// SeedNavigationOptions declares one navigation group for one locale.
type SeedNavigationOptions struct {
	Navigation navigationsvc.Service
	Locale     string
	Group      string
	Actor      uuid.UUID
	Items      []SeedNavigationItem
}

// SeedNavigation converges the (locale, group) menu onto the declared items.
// Item ids derive from (locale, group, href), so repeated seeds update rows
// in place instead of duplicating them.
func SeedNavigation(ctx context.Context, opts SeedNavigationOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Navigation == nil {
		return ErrSeedNavigationServiceRequired
	}
	group := strings.TrimSpace(opts.Group)
	if group == "" {
		return ErrSeedGroupRequired
	}
	return seedNavigationLevel(ctx, opts, nil, opts.Items)
}

func seedNavigationLevel(ctx context.Context, opts SeedNavigationOptions, parentID *uuid.UUID, items []SeedNavigationItem) error {
	for position, item := range items {
		id := identity.NavigationItemUUID(opts.Locale, opts.Group, item.Href)
		input := navigationsvc.ItemInput{
			ID:        &id,
			Locale:    opts.Locale,
			Group:     opts.Group,
			ParentID:  parentID,
			Position:  position,
			IsEnabled: true,
			Label:     item.Label,
			Href:      item.Href,
			Highlight: item.Highlight,
			ActorID:   opts.Actor,
		}
		if item.Icon != "" {
			icon := item.Icon
			input.Icon = &icon
		}
		if item.Badge != "" {
			badge := item.Badge
			input.Badge = &badge
		}

		if _, err := opts.Navigation.UpdateItem(ctx, input); err != nil {
			if !navigation.IsNotFound(err) {
				return err
			}
			if _, err := opts.Navigation.CreateItem(ctx, input); err != nil {
				return err
			}
		}

		if len(item.Children) > 0 {
			if err := seedNavigationLevel(ctx, opts, &id, item.Children); err != nil {
				return err
			}
		}
	}
	return nil
}
