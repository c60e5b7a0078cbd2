package blog

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/identity"
	"github.com/amara-beauty/storefront-cms/internal/locales"
)

func newImporterFixture(t *testing.T) (*Importer, Service) {
	t.Helper()

	localeRepo := locales.NewMemoryRepository()
	if err := locales.NewService(localeRepo).EnsureSupported(context.Background()); err != nil {
		t.Fatalf("seed locales: %v", err)
	}

	posts := NewMemoryPostRepository()
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := NewService(posts, localeRepo, WithClock(func() time.Time { return now }))
	return NewImporter(svc, posts), svc
}

func TestImportGroupsLocalesBySlug(t *testing.T) {
	importer, svc := newImporterFixture(t)

	fsys := fstest.MapFS{
		"cham-soc-da.md": &fstest.MapFile{Data: []byte(`---
title: "Chăm sóc da mùa hè"
slug: cham-soc-da
locale: vi
date: 2026-05-01T00:00:00Z
excerpt: "Giữ da khỏe trong nắng hè"
---
# Chăm sóc da

Dưỡng ẩm **mỗi ngày**.
`)},
		"summer-skincare.md": &fstest.MapFile{Data: []byte(`---
title: "Summer skincare"
slug: cham-soc-da
locale: en
---
English body here.
`)},
	}

	result, err := importer.ImportFS(context.Background(), fsys, ImportOptions{AuthorID: uuid.New()})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.CreatedIDs) != 1 {
		t.Fatalf("expected 1 created post, got %d", len(result.CreatedIDs))
	}
	if result.CreatedIDs[0] != identity.ImportedPostUUID("cham-soc-da") {
		t.Fatalf("post id must derive from slug")
	}

	view, err := svc.GetPostBySlug(context.Background(), "vi", "cham-soc-da")
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if view == nil {
		t.Fatal("dated import must be published and visible")
	}
	if !strings.Contains(view.BodyHTML, "<strong>mỗi ngày</strong>") {
		t.Fatalf("markdown body must be rendered, got %q", view.BodyHTML)
	}

	enView, err := svc.GetPostBySlug(context.Background(), "en", "cham-soc-da")
	if err != nil {
		t.Fatalf("get en post: %v", err)
	}
	if enView == nil || enView.Title != "Summer skincare" {
		t.Fatalf("expected english translation, got %+v", enView)
	}
}

func TestImportSkipsExistingWithoutUpdateFlag(t *testing.T) {
	importer, _ := newImporterFixture(t)

	fsys := fstest.MapFS{
		"toner-guide.md": &fstest.MapFile{Data: []byte(`---
title: "Toner guide"
date: 2026-05-01T00:00:00Z
---
First version.
`)},
	}

	if _, err := importer.ImportFS(context.Background(), fsys, ImportOptions{AuthorID: uuid.New()}); err != nil {
		t.Fatalf("first import: %v", err)
	}

	result, err := importer.ImportFS(context.Background(), fsys, ImportOptions{AuthorID: uuid.New()})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "toner-guide" {
		t.Fatalf("expected skip for existing slug, got %+v", result)
	}

	updated, err := importer.ImportFS(context.Background(), fsys, ImportOptions{AuthorID: uuid.New(), UpdateExisting: true})
	if err != nil {
		t.Fatalf("update import: %v", err)
	}
	if len(updated.UpdatedIDs) != 1 {
		t.Fatalf("expected update with flag set, got %+v", updated)
	}
}

func TestImportDryRunPersistsNothing(t *testing.T) {
	importer, svc := newImporterFixture(t)

	fsys := fstest.MapFS{
		"mat-na.md": &fstest.MapFile{Data: []byte(`---
title: "Mặt nạ thiên nhiên"
date: 2026-05-01T00:00:00Z
---
Body.
`)},
	}

	result, err := importer.ImportFS(context.Background(), fsys, ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if len(result.CreatedIDs) != 1 {
		t.Fatalf("dry run must report would-create ids, got %+v", result)
	}

	view, err := svc.GetPostBySlug(context.Background(), "vi", "mat-na")
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if view != nil {
		t.Fatal("dry run must not persist posts")
	}
}

func TestImportReportsBadDocuments(t *testing.T) {
	importer, _ := newImporterFixture(t)

	fsys := fstest.MapFS{
		"no-title.md": &fstest.MapFile{Data: []byte(`---
slug: no-title
---
Body.
`)},
		"bad-locale.md": &fstest.MapFile{Data: []byte(`---
title: "Bad locale"
locale: fr
---
Body.
`)},
	}

	result, err := importer.ImportFS(context.Background(), fsys, ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 document errors, got %+v", result.Errors)
	}
	if len(result.CreatedIDs) != 0 {
		t.Fatalf("bad documents must not create posts")
	}
}
