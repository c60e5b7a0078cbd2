package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/locales"
	"github.com/amara-beauty/storefront-cms/navigation"
)

type serviceFixture struct {
	service Service
	repo    ItemRepository
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	localeRepo := locales.NewMemoryRepository()
	if err := locales.NewService(localeRepo).EnsureSupported(context.Background()); err != nil {
		t.Fatalf("seed locales: %v", err)
	}

	repo := NewMemoryItemRepository()
	return &serviceFixture{
		service: NewService(repo, localeRepo),
		repo:    repo,
	}
}

func (f *serviceFixture) createItem(t *testing.T, input ItemInput) *Item {
	t.Helper()
	record, err := f.service.CreateItem(context.Background(), input)
	if err != nil {
		t.Fatalf("create item %q: %v", input.Label, err)
	}
	return record
}

func TestGetNavigationBuildsOrderedTree(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	products := f.createItem(t, ItemInput{
		Locale: "en", Group: navigation.GroupHeader,
		Position: 1, IsEnabled: true,
		Label: "Products", Href: "/products",
	})
	f.createItem(t, ItemInput{
		Locale: "en", Group: navigation.GroupHeader,
		ParentID: &products.ID,
		Position: 0, IsEnabled: true,
		Label: "Serums", Href: "/products/serums",
	})
	f.createItem(t, ItemInput{
		Locale: "en", Group: navigation.GroupHeader,
		Position: 0, IsEnabled: true,
		Label: "Home", Href: "/",
	})
	f.createItem(t, ItemInput{
		Locale: "en", Group: navigation.GroupHeader,
		Position: 2, IsEnabled: false,
		Label: "Hidden", Href: "/hidden",
	})
	f.createItem(t, ItemInput{
		Locale: "en", Group: navigation.GroupFooter,
		Position: 0, IsEnabled: true,
		Label: "Privacy", Href: "/privacy",
	})

	nodes, err := f.service.GetNavigation(ctx, "en", navigation.GroupHeader)
	if err != nil {
		t.Fatalf("get navigation: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 enabled roots, got %d", len(nodes))
	}
	if nodes[0].Label != "Home" || nodes[1].Label != "Products" {
		t.Fatalf("unexpected order: %q, %q", nodes[0].Label, nodes[1].Label)
	}
	if len(nodes[1].Children) != 1 || nodes[1].Children[0].Label != "Serums" {
		t.Fatalf("expected nested child under Products, got %+v", nodes[1].Children)
	}
}

func TestGetNavigationLocalizesHrefs(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	for _, locale := range []string{"vi", "en", "ko"} {
		f.createItem(t, ItemInput{
			Locale: locale, Group: navigation.GroupHeader,
			Position: 0, IsEnabled: true,
			Label: "Products", Href: "/products",
		})
	}

	cases := map[string]string{
		"vi": "/products",
		"en": "/en/products",
		"ko": "/ko/products",
	}
	for locale, want := range cases {
		nodes, err := f.service.GetNavigation(ctx, locale, navigation.GroupHeader)
		if err != nil {
			t.Fatalf("get %s navigation: %v", locale, err)
		}
		if len(nodes) != 1 {
			t.Fatalf("%s: expected 1 node, got %d", locale, len(nodes))
		}
		if nodes[0].Href != want {
			t.Fatalf("%s: expected href %q, got %q", locale, want, nodes[0].Href)
		}
	}
}

func TestReorderRewritesPositionsAtomically(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	a := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupHeader, Position: 0, IsEnabled: true, Label: "A", Href: "/a"})
	b := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupHeader, Position: 1, IsEnabled: true, Label: "B", Href: "/b"})
	c := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupHeader, Position: 2, IsEnabled: true, Label: "C", Href: "/c"})

	if err := f.service.Reorder(ctx, "vi", navigation.GroupHeader, nil, []uuid.UUID{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	nodes, err := f.service.GetNavigation(ctx, "vi", navigation.GroupHeader)
	if err != nil {
		t.Fatalf("get navigation: %v", err)
	}
	got := []string{nodes[0].Label, nodes[1].Label, nodes[2].Label}
	want := []string{"C", "A", "B"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestReorderRejectsIncompleteSets(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	a := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupHeader, Position: 0, IsEnabled: true, Label: "A", Href: "/a"})
	f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupHeader, Position: 1, IsEnabled: true, Label: "B", Href: "/b"})

	err := f.service.Reorder(ctx, "vi", navigation.GroupHeader, nil, []uuid.UUID{a.ID})
	if !errors.Is(err, navigation.ErrReorderIncomplete) {
		t.Fatalf("expected ErrReorderIncomplete for missing sibling, got %v", err)
	}

	err = f.service.Reorder(ctx, "vi", navigation.GroupHeader, nil, []uuid.UUID{a.ID, uuid.New()})
	if !errors.Is(err, navigation.ErrReorderIncomplete) {
		t.Fatalf("expected ErrReorderIncomplete for foreign id, got %v", err)
	}
}

func TestDeleteItemCascadesToChildren(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	parent := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupFooter, Position: 0, IsEnabled: true, Label: "Parent", Href: "/p"})
	child := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupFooter, ParentID: &parent.ID, Position: 0, IsEnabled: true, Label: "Child", Href: "/p/c"})
	grandchild := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupFooter, ParentID: &child.ID, Position: 0, IsEnabled: true, Label: "Grandchild", Href: "/p/c/g"})
	keep := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupFooter, Position: 1, IsEnabled: true, Label: "Keep", Href: "/k"})

	if err := f.service.DeleteItem(ctx, parent.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, id := range []uuid.UUID{parent.ID, child.ID, grandchild.ID} {
		if _, err := f.repo.GetByID(ctx, id); !navigation.IsNotFound(err) {
			t.Fatalf("expected %s deleted, got %v", id, err)
		}
	}
	if _, err := f.repo.GetByID(ctx, keep.ID); err != nil {
		t.Fatalf("expected sibling to survive, got %v", err)
	}
}

func TestCreateItemValidation(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	if _, err := f.service.CreateItem(ctx, ItemInput{Locale: "vi", Group: navigation.GroupHeader, Href: "/x"}); !errors.Is(err, navigation.ErrLabelRequired) {
		t.Fatalf("expected ErrLabelRequired, got %v", err)
	}
	if _, err := f.service.CreateItem(ctx, ItemInput{Locale: "vi", Label: "X", Href: "/x"}); !errors.Is(err, navigation.ErrGroupRequired) {
		t.Fatalf("expected ErrGroupRequired, got %v", err)
	}
	if _, err := f.service.CreateItem(ctx, ItemInput{Locale: "de", Group: navigation.GroupHeader, Label: "X", Href: "/x"}); !errors.Is(err, navigation.ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}

	other := uuid.New()
	if _, err := f.service.CreateItem(ctx, ItemInput{
		Locale: "vi", Group: navigation.GroupHeader,
		ParentID: &other, Label: "X", Href: "/x",
	}); !errors.Is(err, navigation.ErrParentInvalid) {
		t.Fatalf("expected ErrParentInvalid, got %v", err)
	}
}

func TestUpdateItemRejectsCycle(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	parent := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupHeader, Position: 0, IsEnabled: true, Label: "Parent", Href: "/p"})
	child := f.createItem(t, ItemInput{Locale: "vi", Group: navigation.GroupHeader, ParentID: &parent.ID, Position: 0, IsEnabled: true, Label: "Child", Href: "/c"})

	_, err := f.service.UpdateItem(ctx, ItemInput{
		ID:     &parent.ID,
		Locale: "vi", Group: navigation.GroupHeader,
		ParentID: &child.ID,
		Label:    "Parent", Href: "/p",
		IsEnabled: true,
	})
	if !errors.Is(err, navigation.ErrParentCycle) {
		t.Fatalf("expected ErrParentCycle, got %v", err)
	}
}
