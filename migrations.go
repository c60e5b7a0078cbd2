package storefront

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// MigrationsFS returns the embedded schema migration files.
func MigrationsFS() embed.FS {
	return migrationsFS
}

// RunMigrations applies every embedded migration file in name order. The
// statements are idempotent, so repeated runs against the same database
// are safe.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	entries, err := fs.Glob(migrationsFS, "data/sql/migrations/*.sql")
	if err != nil {
		return fmt.Errorf("storefront: list migrations: %w", err)
	}
	sort.Strings(entries)
	for _, name := range entries {
		payload, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("storefront: read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(payload)); err != nil {
			return fmt.Errorf("storefront: apply migration %s: %w", name, err)
		}
	}
	return nil
}
