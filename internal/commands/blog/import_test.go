package blogcmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	blogsvc "github.com/amara-beauty/storefront-cms/internal/blog"
	localessvc "github.com/amara-beauty/storefront-cms/internal/locales"
)

func newImportHandlerFixture(t *testing.T, gates FeatureGates) (*ImportDirectoryHandler, blogsvc.Service) {
	t.Helper()

	localeRepo := localessvc.NewMemoryRepository()
	if err := localessvc.NewService(localeRepo).EnsureSupported(context.Background()); err != nil {
		t.Fatalf("seed locales: %v", err)
	}

	posts := blogsvc.NewMemoryPostRepository()
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := blogsvc.NewService(posts, localeRepo, blogsvc.WithClock(func() time.Time { return now }))
	importer := blogsvc.NewImporter(svc, posts)

	return NewImportDirectoryHandler(importer, nil, gates), svc
}

func writeMarkdown(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestImportDirectoryCommand(t *testing.T) {
	handler, svc := newImportHandlerFixture(t, FeatureGates{})

	dir := t.TempDir()
	writeMarkdown(t, dir, "sua-rua-mat.md", `---
title: "Sữa rửa mặt dịu nhẹ"
date: 2026-05-01T00:00:00Z
---
Body content.
`)

	if err := handler.Execute(context.Background(), ImportDirectoryCommand{
		Directory: dir,
		AuthorID:  uuid.New(),
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	view, err := svc.GetPostBySlug(context.Background(), "vi", "sua-rua-mat")
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if view == nil {
		t.Fatal("imported post must be visible")
	}
}

func TestImportDirectoryCommandRequiresDirectory(t *testing.T) {
	handler, _ := newImportHandlerFixture(t, FeatureGates{})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestImportDirectoryCommandHonoursFeatureGate(t *testing.T) {
	handler, _ := newImportHandlerFixture(t, FeatureGates{
		MarkdownImportEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{Directory: t.TempDir()})
	if !errors.Is(err, ErrImportDisabled) {
		t.Fatalf("expected ErrImportDisabled, got %v", err)
	}
}
