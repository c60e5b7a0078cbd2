package locales

import (
	"context"
	"errors"
	"testing"

	locales "github.com/amara-beauty/storefront-cms/locales"
)

func TestEnsureSupportedSeedsFixedSet(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if err := svc.EnsureSupported(ctx); err != nil {
		t.Fatalf("ensure supported: %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 locales, got %d", len(all))
	}

	vi, err := svc.Resolve(ctx, "vi")
	if err != nil {
		t.Fatalf("resolve vi: %v", err)
	}
	if !vi.IsDefault {
		t.Fatal("vi must be the default locale")
	}

	// Reseeding converges on the same rows.
	if err := svc.EnsureSupported(ctx); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	again, err := svc.Resolve(ctx, "vi")
	if err != nil {
		t.Fatalf("resolve vi after reseed: %v", err)
	}
	if again.ID != vi.ID {
		t.Fatalf("locale id changed across seeds: %s vs %s", again.ID, vi.ID)
	}
	all, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("list after reseed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 locales after reseed, got %d", len(all))
	}
}

func TestResolveRejectsUnknownCode(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())
	if err := svc.EnsureSupported(ctx); err != nil {
		t.Fatalf("ensure supported: %v", err)
	}

	if _, err := svc.Resolve(ctx, "fr"); !errors.Is(err, locales.ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}

	resolved, err := svc.Resolve(ctx, " EN ")
	if err != nil {
		t.Fatalf("resolve normalized code: %v", err)
	}
	if resolved.Code != "en" {
		t.Fatalf("unexpected code %q", resolved.Code)
	}
}
