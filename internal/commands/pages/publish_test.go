package pagescmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	localessvc "github.com/amara-beauty/storefront-cms/internal/locales"
	pagessvc "github.com/amara-beauty/storefront-cms/internal/pages"
)

func newPageService(t *testing.T) pagessvc.Service {
	t.Helper()

	localeRepo := localessvc.NewMemoryRepository()
	if err := localessvc.NewService(localeRepo).EnsureSupported(context.Background()); err != nil {
		t.Fatalf("seed locales: %v", err)
	}
	return pagessvc.NewService(pagessvc.NewMemoryPageRepository(), localeRepo)
}

func createDraftPage(t *testing.T, service pagessvc.Service) uuid.UUID {
	t.Helper()

	page, err := service.CreatePage(context.Background(), pagessvc.CreatePageInput{
		Slug:     "khuyen-mai",
		Locale:   "vi",
		Title:    "Khuyến mãi",
		PageType: "landing",
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	return page.ID
}

func TestPublishPageCommand(t *testing.T) {
	service := newPageService(t)
	pageID := createDraftPage(t, service)
	handler := NewPublishPageHandler(service, nil)

	if err := handler.Execute(context.Background(), PublishPageCommand{PageID: pageID}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	content, err := service.GetPageContent(context.Background(), "vi", "khuyen-mai")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if content == nil {
		t.Fatal("published page must be visible")
	}
}

func TestPublishPageCommandRejectsMissingID(t *testing.T) {
	handler := NewPublishPageHandler(newPageService(t), nil)

	err := handler.Execute(context.Background(), PublishPageCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestUnpublishPageCommand(t *testing.T) {
	service := newPageService(t)
	pageID := createDraftPage(t, service)
	handler := NewPublishPageHandler(service, nil)
	unpublish := NewUnpublishPageHandler(service, nil)

	if err := handler.Execute(context.Background(), PublishPageCommand{PageID: pageID}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := unpublish.Execute(context.Background(), UnpublishPageCommand{PageID: pageID}); err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	content, err := service.GetPageContent(context.Background(), "vi", "khuyen-mai")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if content != nil {
		t.Fatal("unpublished page must be hidden")
	}
}

func TestPublishPageCommandWrapsServiceError(t *testing.T) {
	service := newPageService(t)
	handler := NewPublishPageHandler(service, nil)

	err := handler.Execute(context.Background(), PublishPageCommand{PageID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for unknown page")
	}

	var notFound *pagessvc.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected page not found in chain, got %v", err)
	}
}
