package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/catalog"
	"github.com/amara-beauty/storefront-cms/internal/locales"
)

type serviceFixture struct {
	service  Service
	products ProductRepository
	locales  locales.Repository
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	localeRepo := locales.NewMemoryRepository()
	if err := locales.NewService(localeRepo).EnsureSupported(context.Background()); err != nil {
		t.Fatalf("seed locales: %v", err)
	}

	products := NewMemoryProductRepository()
	categories := NewMemoryCategoryRepository()
	return &serviceFixture{
		service:  NewService(products, categories, localeRepo),
		products: products,
		locales:  localeRepo,
	}
}

func (f *serviceFixture) createProduct(t *testing.T, input CreateProductInput) *Product {
	t.Helper()
	record, err := f.service.CreateProduct(context.Background(), input)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return record
}

func str(v string) *string { return &v }

func price(v int64) *int64 { return &v }

func TestGetProductBySlugResolvesSlugThenID(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created := f.createProduct(t, CreateProductInput{
		Status:    "published",
		BasePrice: 250000,
		Translations: []TranslationInput{
			{Locale: "vi", Name: "Mela Serum", Slug: str("mela-serum")},
			{Locale: "en", Name: "Mela Serum"},
		},
	})

	bySlug, err := f.service.GetProductBySlug(ctx, "vi", "mela-serum")
	if err != nil {
		t.Fatalf("lookup by slug: %v", err)
	}
	if bySlug == nil || bySlug.ID != created.ID {
		t.Fatalf("expected product %s by slug, got %+v", created.ID, bySlug)
	}

	byID, err := f.service.GetProductBySlug(ctx, "vi", created.ID.String())
	if err != nil {
		t.Fatalf("lookup by id: %v", err)
	}
	if byID == nil || byID.ID != created.ID {
		t.Fatalf("expected product %s by id, got %+v", created.ID, byID)
	}

	missing, err := f.service.GetProductBySlug(ctx, "vi", "not-a-real-slug")
	if err != nil {
		t.Fatalf("lookup miss: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown slug, got %+v", missing)
	}
}

func TestGetProductBySlugFallsBackAcrossLocales(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created := f.createProduct(t, CreateProductInput{
		Status:    "published",
		BasePrice: 180000,
		Translations: []TranslationInput{
			{Locale: "vi", Name: "Kem Chống Nắng", Slug: str("kem-chong-nang")},
			{Locale: "ko", Name: "선크림"},
		},
	})

	// The ko translation has no slug of its own, so the view should still
	// expose an addressable slug from another locale.
	view, err := f.service.GetProductBySlug(ctx, "ko", created.ID.String())
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if view == nil {
		t.Fatal("expected product view")
	}
	if view.Slug != "kem-chong-nang" {
		t.Fatalf("expected fallback slug kem-chong-nang, got %q", view.Slug)
	}
	if view.Name != "선크림" {
		t.Fatalf("expected ko name, got %q", view.Name)
	}
}

func TestPriceOverrideFallsBackToBase(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created := f.createProduct(t, CreateProductInput{
		Status:    "published",
		BasePrice: 250000,
		Translations: []TranslationInput{
			{Locale: "vi", Name: "Mela Serum", Slug: str("mela-serum"), PriceOverride: price(199000)},
			{Locale: "en", Name: "Mela Serum"},
			{Locale: "ko", Name: "멜라 세럼"},
		},
	})

	cases := map[string]int64{
		"vi": 199000,
		"en": 250000,
		"ko": 250000,
	}
	for locale, want := range cases {
		view, err := f.service.GetProductBySlug(ctx, locale, created.ID.String())
		if err != nil {
			t.Fatalf("lookup %s: %v", locale, err)
		}
		if view == nil {
			t.Fatalf("expected product view for %s", locale)
		}
		if view.Price != want {
			t.Fatalf("locale %s: expected price %d, got %d", locale, want, view.Price)
		}
	}
}

func TestGetProductBySlugHidesDrafts(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.createProduct(t, CreateProductInput{
		Status:    "draft",
		BasePrice: 99000,
		Translations: []TranslationInput{
			{Locale: "vi", Name: "Sắp Ra Mắt", Slug: str("sap-ra-mat")},
		},
	})

	view, err := f.service.GetProductBySlug(ctx, "vi", "sap-ra-mat")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if view != nil {
		t.Fatalf("expected draft to stay hidden, got %+v", view)
	}
}

func TestListProductsFiltersPublished(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.createProduct(t, CreateProductInput{
		Status:       "published",
		BasePrice:    100000,
		IsBestSeller: true,
		Translations: []TranslationInput{{Locale: "vi", Name: "A", Slug: str("a")}},
	})
	f.createProduct(t, CreateProductInput{
		Status:       "draft",
		BasePrice:    100000,
		Translations: []TranslationInput{{Locale: "vi", Name: "B", Slug: str("b")}},
	})

	views, err := f.service.ListProducts(ctx, "vi", PublicFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 published product, got %d", len(views))
	}
	if views[0].Slug != "a" {
		t.Fatalf("expected slug a, got %q", views[0].Slug)
	}

	yes := true
	bestSellers, err := f.service.ListProducts(ctx, "vi", PublicFilters{BestSeller: &yes})
	if err != nil {
		t.Fatalf("list best sellers: %v", err)
	}
	if len(bestSellers) != 1 {
		t.Fatalf("expected 1 best seller, got %d", len(bestSellers))
	}
}

func TestListProductsDegradesOnStoreFailure(t *testing.T) {
	localeRepo := locales.NewMemoryRepository()
	if err := locales.NewService(localeRepo).EnsureSupported(context.Background()); err != nil {
		t.Fatalf("seed locales: %v", err)
	}

	svc := NewService(failingProductRepository{}, NewMemoryCategoryRepository(), localeRepo)

	views, err := svc.ListProducts(context.Background(), "vi", PublicFilters{})
	if err != nil {
		t.Fatalf("expected degraded read, got error %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(views))
	}
}

func TestListProductsRejectsUnknownLocale(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.service.ListProducts(context.Background(), "fr", PublicFilters{}); !errors.Is(err, catalog.ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
		want  error
	}{
		{
			name:  "missing translations",
			input: CreateProductInput{BasePrice: 100},
			want:  catalog.ErrProductNameRequired,
		},
		{
			name: "negative base price",
			input: CreateProductInput{
				BasePrice:    -1,
				Translations: []TranslationInput{{Locale: "vi", Name: "X"}},
			},
			want: catalog.ErrPriceInvalid,
		},
		{
			name: "duplicate locale",
			input: CreateProductInput{
				Translations: []TranslationInput{
					{Locale: "vi", Name: "X"},
					{Locale: "vi", Name: "Y"},
				},
			},
			want: catalog.ErrDuplicateLocale,
		},
		{
			name: "unknown locale",
			input: CreateProductInput{
				Translations: []TranslationInput{{Locale: "jp", Name: "X"}},
			},
			want: catalog.ErrUnknownLocale,
		},
		{
			name: "negative override",
			input: CreateProductInput{
				Translations: []TranslationInput{{Locale: "vi", Name: "X", PriceOverride: price(-5)}},
			},
			want: catalog.ErrPriceInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.service.CreateProduct(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestBuyLinksPreferLocaleBoundRows(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created := f.createProduct(t, CreateProductInput{
		Status:    "published",
		BasePrice: 150000,
		Translations: []TranslationInput{
			{Locale: "vi", Name: "Toner", Slug: str("toner")},
			{Locale: "ko", Name: "토너"},
		},
		Links: []LinkInput{
			{Platform: "shopee", URL: "https://shopee.vn/toner", SortOrder: 0},
			{Platform: "shopee", URL: "https://shopee.kr/toner", Locale: str("ko"), SortOrder: 0},
			{Platform: "coupang", URL: "https://coupang.com/toner", Locale: str("ko"), SortOrder: 1},
		},
	})

	ko, err := f.service.GetProductBySlug(ctx, "ko", created.ID.String())
	if err != nil {
		t.Fatalf("lookup ko: %v", err)
	}
	if len(ko.BuyLinks) != 2 {
		t.Fatalf("expected 2 ko buy links, got %d", len(ko.BuyLinks))
	}
	if ko.BuyLinks[0].URL != "https://shopee.kr/toner" {
		t.Fatalf("expected locale-bound shopee link, got %q", ko.BuyLinks[0].URL)
	}

	vi, err := f.service.GetProductBySlug(ctx, "vi", "toner")
	if err != nil {
		t.Fatalf("lookup vi: %v", err)
	}
	if len(vi.BuyLinks) != 1 {
		t.Fatalf("expected 1 vi buy link, got %d", len(vi.BuyLinks))
	}
	if vi.BuyLinks[0].URL != "https://shopee.vn/toner" {
		t.Fatalf("expected locale-agnostic shopee link, got %q", vi.BuyLinks[0].URL)
	}
}

func TestCategoryTreeAssembly(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	root, err := f.service.CreateCategory(ctx, CreateCategoryInput{
		Slug:      "skincare",
		IsEnabled: true,
		Translations: []CategoryTranslationInput{
			{Locale: "vi", Name: "Chăm Sóc Da"},
			{Locale: "en", Name: "Skincare"},
		},
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if _, err := f.service.CreateCategory(ctx, CreateCategoryInput{
		Slug:      "serums",
		ParentID:  &root.ID,
		IsEnabled: true,
		Translations: []CategoryTranslationInput{
			{Locale: "vi", Name: "Serum"},
		},
	}); err != nil {
		t.Fatalf("create child: %v", err)
	}

	tree, err := f.service.ListCategories(ctx, "en")
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	if tree[0].Name != "Skincare" {
		t.Fatalf("expected en name, got %q", tree[0].Name)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Slug != "serums" {
		t.Fatalf("expected serums child, got %+v", tree[0].Children)
	}
}

func TestUpdateCategoryRejectsCycle(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	parent, err := f.service.CreateCategory(ctx, CreateCategoryInput{
		Slug:         "makeup",
		IsEnabled:    true,
		Translations: []CategoryTranslationInput{{Locale: "vi", Name: "Trang Điểm"}},
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := f.service.CreateCategory(ctx, CreateCategoryInput{
		Slug:         "lipstick",
		ParentID:     &parent.ID,
		IsEnabled:    true,
		Translations: []CategoryTranslationInput{{Locale: "vi", Name: "Son"}},
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	_, err = f.service.UpdateCategory(ctx, UpdateCategoryInput{
		ID:           parent.ID,
		Slug:         "makeup",
		ParentID:     &child.ID,
		IsEnabled:    true,
		Translations: []CategoryTranslationInput{{Locale: "vi", Name: "Trang Điểm"}},
	})
	if !errors.Is(err, catalog.ErrCategoryParentCycle) {
		t.Fatalf("expected ErrCategoryParentCycle, got %v", err)
	}
}

type failingProductRepository struct{}

func (failingProductRepository) GetByID(context.Context, uuid.UUID) (*Product, error) {
	return nil, errors.New("store unavailable")
}

func (failingProductRepository) GetBySlug(context.Context, uuid.UUID, string) (*Product, error) {
	return nil, errors.New("store unavailable")
}

func (failingProductRepository) List(context.Context, ProductFilters) ([]*Product, error) {
	return nil, errors.New("store unavailable")
}

func (failingProductRepository) Create(context.Context, *Product) (*Product, error) {
	return nil, errors.New("store unavailable")
}

func (failingProductRepository) Update(context.Context, *Product) (*Product, error) {
	return nil, errors.New("store unavailable")
}

func (failingProductRepository) Delete(context.Context, uuid.UUID) error {
	return errors.New("store unavailable")
}
