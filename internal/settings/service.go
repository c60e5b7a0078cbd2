package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
	"github.com/amara-beauty/storefront-cms/settings"
)

// Service exposes typed reads over the loosely-structured settings rows
// plus the admin upsert.
type Service interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Socials(ctx context.Context) ([]settings.SocialLink, error)
	FloatingActions(ctx context.Context) ([]settings.FloatingAction, error)
	SectionVisibility(ctx context.Context, key string) (settings.SectionVisibility, error)

	Upsert(ctx context.Context, key string, value json.RawMessage, actor uuid.UUID) (*SiteSetting, error)
	Delete(ctx context.Context, key string) error
}

// ServiceOption customises the settings service.
type ServiceOption func(*service)

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
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

type service struct {
	repo   Repository
	logger interfaces.Logger
	now    func() time.Time
}

// NewService constructs a settings service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the raw stored value for key.
func (s *service) Get(ctx context.Context, key string) (json.RawMessage, error) {
	record, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return record.Value, nil
}

// Socials returns the enabled social links sorted by their order field. A
// missing key or an undecodable value yields an empty list.
func (s *service) Socials(ctx context.Context) ([]settings.SocialLink, error) {
	record, err := s.repo.Get(ctx, settings.KeySocials)
	if err != nil {
		if settings.IsNotFound(err) {
			return []settings.SocialLink{}, nil
		}
		return nil, err
	}

	var links []settings.SocialLink
	if err := json.Unmarshal(record.Value, &links); err != nil {
		s.logger.Warn("settings.socials.decode_failed", "error", err)
		return []settings.SocialLink{}, nil
	}

	enabled := make([]settings.SocialLink, 0, len(links))
	for _, link := range links {
		if link.IsEnabled {
			enabled = append(enabled, link)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Order < enabled[j].Order
	})
	return enabled, nil
}

// FloatingActions returns the enabled floating action buttons sorted by
// their order field.
func (s *service) FloatingActions(ctx context.Context) ([]settings.FloatingAction, error) {
	record, err := s.repo.Get(ctx, settings.KeyFloatingActions)
	if err != nil {
		if settings.IsNotFound(err) {
			return []settings.FloatingAction{}, nil
		}
		return nil, err
	}

	var actions []settings.FloatingAction
	if err := json.Unmarshal(record.Value, &actions); err != nil {
		s.logger.Warn("settings.floating_actions.decode_failed", "error", err)
		return []settings.FloatingAction{}, nil
	}

	enabled := make([]settings.FloatingAction, 0, len(actions))
	for _, action := range actions {
		if action.IsEnabled {
			enabled = append(enabled, action)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Order < enabled[j].Order
	})
	return enabled, nil
}

// SectionVisibility decodes the stored visibility toggle, accepting both
// the structured shape and the legacy bare boolean. A missing key defaults
// to visible on every breakpoint.
func (s *service) SectionVisibility(ctx context.Context, key string) (settings.SectionVisibility, error) {
	visible := settings.SectionVisibility{Mobile: true, Tablet: true, Desktop: true}

	record, err := s.repo.Get(ctx, key)
	if err != nil {
		if settings.IsNotFound(err) {
			return visible, nil
		}
		return visible, err
	}

	var value settings.SectionVisibility
	if err := json.Unmarshal(record.Value, &value); err != nil {
		s.logger.Warn("settings.visibility.decode_failed", "key", key, "error", err)
		return visible, nil
	}
	return value, nil
}

// Upsert validates and stores one setting value.
func (s *service) Upsert(ctx context.Context, key string, value json.RawMessage, actor uuid.UUID) (*SiteSetting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, settings.ErrKeyRequired
	}
	if len(value) == 0 {
		return nil, settings.ErrValueRequired
	}
	if !json.Valid(value) {
		return nil, fmt.Errorf("%w: value is not valid JSON", settings.ErrValueRequired)
	}

	now := s.now()
	return s.repo.Upsert(ctx, &SiteSetting{
		ID:        uuid.New(),
		Key:       key,
		Value:     value,
		UpdatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *service) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return settings.ErrKeyRequired
	}
	return s.repo.Delete(ctx, key)
}
