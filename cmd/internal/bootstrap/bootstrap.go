// Package bootstrap shares configuration loading and database wiring
// between the storefront command line binaries.
package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	storefront "github.com/amara-beauty/storefront-cms"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// NewViper binds STOREFRONT_* environment variables over an optional
// storefront.yaml in the working directory or /etc/storefront.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := storefront.DefaultConfig()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.driver", defaults.Database.Driver)
	v.SetDefault("database.dsn", defaults.Database.DSN)
	v.SetDefault("database.migrate", true)
	v.SetDefault("default_locale", defaults.DefaultLocale)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.default_ttl", defaults.Cache.DefaultTTL)
	v.SetDefault("storage.endpoint", "https://sg.storage.bunnycdn.com")
	v.SetDefault("storage.timeout", 30*time.Second)
	v.SetDefault("import.content_dir", defaults.Import.ContentDir)
	v.SetDefault("logging.provider", defaults.Logging.Provider)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("admin.email", "admin@localhost")

	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/storefront")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("config file ignored: %v", err)
		}
	}
	return v
}

// BuildConfig maps the bound viper keys onto the module configuration.
func BuildConfig(v *viper.Viper) storefront.Config {
	cfg := storefront.DefaultConfig()
	cfg.DefaultLocale = v.GetString("default_locale")
	cfg.Database.Driver = v.GetString("database.driver")
	cfg.Database.DSN = v.GetString("database.dsn")
	cfg.Cache.Enabled = v.GetBool("cache.enabled")
	cfg.Cache.DefaultTTL = v.GetDuration("cache.default_ttl")
	cfg.Storage.Endpoint = v.GetString("storage.endpoint")
	cfg.Storage.Zone = v.GetString("storage.zone")
	cfg.Storage.AccessKey = v.GetString("storage.access_key")
	cfg.Storage.PullZoneURL = v.GetString("storage.pull_zone_url")
	cfg.Storage.Timeout = v.GetDuration("storage.timeout")
	cfg.Import.ContentDir = v.GetString("import.content_dir")
	cfg.Import.UpdateExisting = v.GetBool("import.update_existing")
	cfg.Features.MediaLibrary = v.GetBool("features.media_library")
	cfg.Features.MarkdownImport = v.GetBool("features.markdown_import")
	cfg.Features.Logger = v.GetBool("features.logger")
	cfg.Logging.Provider = v.GetString("logging.provider")
	cfg.Logging.Level = v.GetString("logging.level")
	cfg.Logging.Format = v.GetString("logging.format")
	cfg.Logging.AddSource = v.GetBool("logging.add_source")
	return cfg
}

// OpenDatabase opens the configured driver and wraps it in a bun.DB.
func OpenDatabase(cfg storefront.Config) (*bun.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite", "sqlite3":
		sqlDB, err := sql.Open("sqlite3", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
		bunDB.SetMaxOpenConns(1)
		return bunDB, nil
	case "postgres", "pg":
		sqlDB, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", storefront.ErrDatabaseDriverUnknown, cfg.Database.Driver)
	}
}
