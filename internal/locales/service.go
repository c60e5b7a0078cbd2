package locales

import (
	"context"

	"github.com/amara-beauty/storefront-cms/internal/identity"
	"github.com/amara-beauty/storefront-cms/locales"
)

// Service resolves locale codes against the persisted registry. The
// supported set is fixed in code; the registry rows exist so translations
// can reference locale ids with referential integrity.
type Service interface {
	Resolve(ctx context.Context, code string) (*Locale, error)
	Default(ctx context.Context) (*Locale, error)
	List(ctx context.Context) ([]*Locale, error)
	EnsureSupported(ctx context.Context) error
}

type service struct {
	repo Repository
}

// NewService constructs the locale registry service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Resolve validates code against the supported set and returns its registry
// row.
func (s *service) Resolve(ctx context.Context, code string) (*Locale, error) {
	normalized, err := locales.Validate(code)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByCode(ctx, normalized)
}

// Default returns the registry row for the default locale.
func (s *service) Default(ctx context.Context) (*Locale, error) {
	return s.repo.GetByCode(ctx, locales.Default)
}

// List returns every registered locale.
func (s *service) List(ctx context.Context) ([]*Locale, error) {
	return s.repo.List(ctx)
}

// EnsureSupported upserts registry rows for the fixed locale set using
// deterministic ids, so repeated bootstraps converge on the same rows.
func (s *service) EnsureSupported(ctx context.Context) error {
	displays := map[string]struct {
		display string
		native  string
	}{
		locales.Vietnamese: {display: "Vietnamese", native: "Tiếng Việt"},
		locales.English:    {display: "English", native: "English"},
		locales.Korean:     {display: "Korean", native: "한국어"},
	}

	for _, code := range locales.Supported() {
		info := displays[code]
		native := info.native
		record := &Locale{
			ID:         identity.LocaleUUID(code),
			Code:       code,
			Display:    info.display,
			NativeName: &native,
			IsActive:   true,
			IsDefault:  code == locales.Default,
		}
		if _, err := s.repo.Upsert(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
