package di

import (
	"context"
	"errors"
	"testing"

	"github.com/amara-beauty/storefront-cms/internal/runtimeconfig"
)

func TestNewContainerDefaultsToMemoryRepositories(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if container.CatalogService() == nil {
		t.Fatal("catalog service must be wired")
	}
	if container.BlogService() == nil {
		t.Fatal("blog service must be wired")
	}
	if container.PageService() == nil {
		t.Fatal("page service must be wired")
	}
	if container.StaticPageService() == nil {
		t.Fatal("static page service must be wired")
	}
	if container.NavigationService() == nil {
		t.Fatal("navigation service must be wired")
	}
	if container.SettingsService() == nil {
		t.Fatal("settings service must be wired")
	}
	if container.MediaService() == nil {
		t.Fatal("media service must be wired")
	}
	if container.BlogImporter() == nil {
		t.Fatal("blog importer must be wired")
	}
}

func TestNewContainerSeedsLocales(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	registered, err := container.LocaleService().List(context.Background())
	if err != nil {
		t.Fatalf("list locales: %v", err)
	}
	if len(registered) != 3 {
		t.Fatalf("expected 3 seeded locales, got %d", len(registered))
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = "fr"

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrDefaultLocaleUnsupported) {
		t.Fatalf("expected config validation error, got %v", err)
	}
}

func TestNewContainerDisabledMediaLibraryGetsNoopStorage(t *testing.T) {
	container, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if err := container.StorageProvider().Delete(context.Background(), "x"); err == nil {
		t.Fatal("noop storage must reject operations")
	}
}
