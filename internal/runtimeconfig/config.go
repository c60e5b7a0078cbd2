package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/amara-beauty/storefront-cms/locales"
)

var (
	// ErrDefaultLocaleUnsupported reports a default locale outside the fixed set.
	ErrDefaultLocaleUnsupported = errors.New("storefront config: default locale is not supported")
	// ErrDatabaseDriverUnknown reports an unsupported database driver.
	ErrDatabaseDriverUnknown = errors.New("storefront config: database driver is invalid")
	// ErrDatabaseDSNRequired reports a missing connection string.
	ErrDatabaseDSNRequired = errors.New("storefront config: database dsn is required")
	// ErrStorageZoneRequired reports missing Bunny storage zone settings.
	ErrStorageZoneRequired = errors.New("storefront config: storage zone is required when media library is enabled")
	// ErrStorageAccessKeyRequired reports a missing Bunny access key.
	ErrStorageAccessKeyRequired = errors.New("storefront config: storage access key is required when media library is enabled")
	// ErrStoragePullZoneRequired reports a missing pull zone URL.
	ErrStoragePullZoneRequired = errors.New("storefront config: storage pull zone url is required when media library is enabled")
	// ErrImportDirRequired reports a missing markdown content directory.
	ErrImportDirRequired = errors.New("storefront config: import content directory is required when markdown import is enabled")
	// ErrLoggingProviderRequired reports a blank logging provider.
	ErrLoggingProviderRequired = errors.New("storefront config: logging provider is required when logging feature is enabled")
	// ErrLoggingProviderUnknown reports an unsupported logging provider.
	ErrLoggingProviderUnknown = errors.New("storefront config: logging provider is invalid")
	// ErrLoggingLevelInvalid reports an unsupported logging level.
	ErrLoggingLevelInvalid = errors.New("storefront config: logging level is invalid")
	// ErrLoggingFormatInvalid reports an unsupported logging format.
	ErrLoggingFormatInvalid = errors.New("storefront config: logging format is invalid")
)

// Config aggregates feature flags and adapter bindings for the storefront
// module. Fields intentionally use simple types so host applications can
// bind them from environment or files.
type Config struct {
	Enabled       bool
	DefaultLocale string
	Database      DatabaseConfig
	Storage       StorageConfig
	Cache         CacheConfig
	Navigation    NavigationConfig
	Import        ImportConfig
	Features      Features
	Logging       LoggingConfig
}

// DatabaseConfig selects the bun driver and connection string.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// StorageConfig carries the Bunny CDN storage zone bindings.
type StorageConfig struct {
	Endpoint    string
	Zone        string
	AccessKey   string
	PullZoneURL string
	Timeout     time.Duration
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NavigationConfig captures routing configuration for menu URL resolution.
type NavigationConfig struct {
	RouteConfig  *urlkit.Config
	LocaleGroups map[string]string
}

// ImportConfig captures filesystem behaviour for markdown blog ingestion.
type ImportConfig struct {
	ContentDir     string
	UpdateExisting bool
}

// Features toggles module functionality.
type Features struct {
	MediaLibrary   bool
	MarkdownImport bool
	Logger         bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the opinionated defaults for a Vietnamese-first
// storefront deployment.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: locales.Default,
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file:storefront.db?cache=shared&_fk=1",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Import: ImportConfig{
			ContentDir: "content",
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.DefaultLocale != "" && !locales.IsSupported(cfg.DefaultLocale) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleUnsupported, cfg.DefaultLocale)
	}
	if driver := normalize(cfg.Database.Driver); driver != "" && driver != "sqlite" && driver != "postgres" {
		return fmt.Errorf("%w: %s", ErrDatabaseDriverUnknown, driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" && normalize(cfg.Database.Driver) != "" {
		return ErrDatabaseDSNRequired
	}
	if cfg.Features.MediaLibrary {
		if strings.TrimSpace(cfg.Storage.Zone) == "" {
			return ErrStorageZoneRequired
		}
		if strings.TrimSpace(cfg.Storage.AccessKey) == "" {
			return ErrStorageAccessKeyRequired
		}
		if strings.TrimSpace(cfg.Storage.PullZoneURL) == "" {
			return ErrStoragePullZoneRequired
		}
	}
	if cfg.Features.MarkdownImport {
		if strings.TrimSpace(cfg.Import.ContentDir) == "" {
			return ErrImportDirRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
