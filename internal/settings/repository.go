package settings

import (
	"context"

	"github.com/amara-beauty/storefront-cms/settings"
)

// SiteSetting aliases the public model for internal consumers.
type SiteSetting = settings.SiteSetting

// Repository persists loosely-structured site settings keyed by name.
type Repository interface {
	Get(ctx context.Context, key string) (*SiteSetting, error)
	List(ctx context.Context) ([]*SiteSetting, error)
	Upsert(ctx context.Context, setting *SiteSetting) (*SiteSetting, error)
	Delete(ctx context.Context, key string) error
}
