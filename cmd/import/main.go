package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	storefront "github.com/amara-beauty/storefront-cms"
	"github.com/amara-beauty/storefront-cms/cmd/internal/bootstrap"
	blogsvc "github.com/amara-beauty/storefront-cms/internal/blog"
	"github.com/amara-beauty/storefront-cms/internal/di"
	"github.com/amara-beauty/storefront-cms/internal/identity"
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("blog import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("blog-import", flag.ExitOnError)
	contentDir := fs.String("content-dir", "", "Path to the markdown content root (defaults to import.content_dir)")
	author := fs.String("author", "", "Author UUID recorded on imported posts")
	updateExisting := fs.Bool("update-existing", false, "Overwrite posts previously imported from the same slug")
	dryRun := fs.Bool("dry-run", false, "Parse and group documents without persisting anything")

	if err := fs.Parse(args); err != nil {
		return err
	}

	v := bootstrap.NewViper()
	cfg := bootstrap.BuildConfig(v)

	dir := *contentDir
	if dir == "" {
		dir = cfg.Import.ContentDir
	}
	if dir == "" {
		return storefront.ErrImportDirRequired
	}

	authorID := identity.UUID("admin:" + v.GetString("admin.email"))
	if *author != "" {
		parsed, err := uuid.Parse(*author)
		if err != nil {
			return fmt.Errorf("parse author: %w", err)
		}
		authorID = parsed
	}

	bunDB, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer bunDB.Close()

	ctx := context.Background()
	if err := storefront.RunMigrations(ctx, bunDB); err != nil {
		return err
	}

	module, err := storefront.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		return err
	}

	result, err := module.Importer().ImportDirectory(ctx, dir, blogsvc.ImportOptions{
		AuthorID:       authorID,
		UpdateExisting: *updateExisting || cfg.Import.UpdateExisting,
		DryRun:         *dryRun,
	})
	if err != nil {
		return err
	}

	log.Printf("created=%d updated=%d skipped=%d", len(result.CreatedIDs), len(result.UpdatedIDs), len(result.Skipped))
	for _, skipped := range result.Skipped {
		log.Printf("skipped: %s", skipped)
	}
	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			log.Printf("error: %s", msg)
		}
		return fmt.Errorf("%d document(s) failed to import", len(result.Errors))
	}
	return nil
}
