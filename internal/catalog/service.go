package catalog

import (
	"context"
	"strings"
	"time"

	slugpkg "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/catalog"
	"github.com/amara-beauty/storefront-cms/internal/domain"
	"github.com/amara-beauty/storefront-cms/internal/locales"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// PublicFilters narrows storefront product listings. Only published
// products are ever returned through the public read path.
type PublicFilters struct {
	CategorySlug string
	Featured     *bool
	BestSeller   *bool
	Limit        int
}

// Service exposes catalog reads for the storefront and catalog mutations
// for the admin application.
type Service interface {
	ListProducts(ctx context.Context, locale string, filters PublicFilters) ([]catalog.ProductView, error)
	GetProductBySlug(ctx context.Context, locale string, slugOrID string) (*catalog.ProductView, error)

	ListCategories(ctx context.Context, locale string) ([]*catalog.CategoryView, error)
	RootCategories(ctx context.Context, locale string) ([]*catalog.CategoryView, error)
	ChildCategories(ctx context.Context, locale string, parentID uuid.UUID) ([]*catalog.CategoryView, error)
	GetCategoryBySlug(ctx context.Context, locale string, slug string) (*catalog.CategoryView, error)

	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// TranslationInput carries one locale of product copy.
type TranslationInput struct {
	Locale           string
	Name             string
	Slug             *string
	ShortDescription *string
	LongDescription  *string
	PriceOverride    *int64
	Benefits         []string
	Ingredients      []string
	HowToUse         *string
}

// MediaInput carries one ordered product image.
type MediaInput struct {
	URL       string
	Path      string
	Alt       *string
	SortOrder int
}

// LinkInput carries one external buy link.
type LinkInput struct {
	Platform  string
	URL       string
	Locale    *string
	Label     *string
	SortOrder int
}

// CreateProductInput captures the payload required to create a product.
type CreateProductInput struct {
	ID           *uuid.UUID
	Status       string
	BasePrice    int64
	Currency     string
	CategoryID   *uuid.UUID
	SortOrder    int
	IsFeatured   bool
	IsBestSeller bool
	CreatedBy    uuid.UUID
	UpdatedBy    uuid.UUID
	Translations []TranslationInput
	Media        []MediaInput
	Links        []LinkInput
}

// UpdateProductInput captures the mutable fields for an existing product.
// Translations, media, and links replace the stored aggregate wholesale.
type UpdateProductInput struct {
	ID           uuid.UUID
	Status       string
	BasePrice    int64
	Currency     string
	CategoryID   *uuid.UUID
	SortOrder    int
	IsFeatured   bool
	IsBestSeller bool
	UpdatedBy    uuid.UUID
	Translations []TranslationInput
	Media        []MediaInput
	Links        []LinkInput
}

// CategoryTranslationInput carries one locale of category copy.
type CategoryTranslationInput struct {
	Locale      string
	Name        string
	Description *string
}

// CreateCategoryInput captures the payload required to create a category.
type CreateCategoryInput struct {
	ID           *uuid.UUID
	Slug         string
	ParentID     *uuid.UUID
	SortOrder    int
	IsEnabled    bool
	Translations []CategoryTranslationInput
}

// UpdateCategoryInput captures the mutable fields for a category.
type UpdateCategoryInput struct {
	ID           uuid.UUID
	Slug         string
	ParentID     *uuid.UUID
	SortOrder    int
	IsEnabled    bool
	Translations []CategoryTranslationInput
}

// ServiceOption customises the catalog service.
type ServiceOption func(*service)

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides id generation, used by tests.
func WithIDGenerator(id func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if id != nil {
			s.id = id
		}
	}
}

type service struct {
	products   ProductRepository
	categories CategoryRepository
	locales    locales.Repository
	logger     interfaces.Logger
	now        func() time.Time
	id         func() uuid.UUID
}

// NewService constructs a catalog service with the required dependencies.
func NewService(products ProductRepository, categories CategoryRepository, localeRepo locales.Repository, opts ...ServiceOption) Service {
	s := &service{
		products:   products,
		categories: categories,
		locales:    localeRepo,
		logger:     logging.NoOp(),
		now:        time.Now,
		id:         uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts returns published products resolved for the locale. A store
// failure is logged and degrades to an empty list so the storefront can
// still render.
func (s *service) ListProducts(ctx context.Context, locale string, filters PublicFilters) ([]catalog.ProductView, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, catalog.ErrUnknownLocale
	}

	repoFilters := ProductFilters{
		Status:     domain.StatusPublished,
		Featured:   filters.Featured,
		BestSeller: filters.BestSeller,
		Limit:      filters.Limit,
	}
	if filters.CategorySlug != "" {
		category, err := s.categories.GetBySlug(ctx, filters.CategorySlug)
		if err != nil {
			if catalog.IsNotFound(err) {
				return []catalog.ProductView{}, nil
			}
			s.logger.Error("catalog.list_products.category_lookup_failed", "error", err, "category", filters.CategorySlug)
			return []catalog.ProductView{}, nil
		}
		repoFilters.CategoryID = &category.ID
	}

	records, err := s.products.List(ctx, repoFilters)
	if err != nil {
		s.logger.Error("catalog.list_products.query_failed", "error", err, "locale", locale)
		return []catalog.ProductView{}, nil
	}

	views := make([]catalog.ProductView, 0, len(records))
	for _, record := range records {
		views = append(views, s.productView(record, loc))
	}
	return views, nil
}

// GetProductBySlug resolves slugOrID against translation slugs first, then
// against the product id when the input parses as a UUID. A miss returns
// nil without an error.
func (s *service) GetProductBySlug(ctx context.Context, locale string, slugOrID string) (*catalog.ProductView, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, catalog.ErrUnknownLocale
	}

	trimmed := strings.TrimSpace(slugOrID)
	if trimmed == "" {
		return nil, nil
	}

	record, err := s.products.GetBySlug(ctx, loc.ID, trimmed)
	if err != nil && !catalog.IsNotFound(err) {
		s.logger.Error("catalog.get_product.query_failed", "error", err, "slug", trimmed)
		return nil, nil
	}

	if record == nil {
		id, parseErr := uuid.Parse(trimmed)
		if parseErr != nil {
			return nil, nil
		}
		record, err = s.products.GetByID(ctx, id)
		if err != nil {
			if catalog.IsNotFound(err) {
				return nil, nil
			}
			s.logger.Error("catalog.get_product.query_failed", "error", err, "id", trimmed)
			return nil, nil
		}
	}

	if record.Status != string(domain.StatusPublished) {
		return nil, nil
	}

	view := s.productView(record, loc)
	return &view, nil
}

func (s *service) ListCategories(ctx context.Context, locale string) ([]*catalog.CategoryView, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, catalog.ErrUnknownLocale
	}
	records, err := s.categories.List(ctx)
	if err != nil {
		s.logger.Error("catalog.list_categories.query_failed", "error", err, "locale", locale)
		return []*catalog.CategoryView{}, nil
	}
	return buildCategoryTree(records, loc.ID), nil
}

func (s *service) RootCategories(ctx context.Context, locale string) ([]*catalog.CategoryView, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, catalog.ErrUnknownLocale
	}
	records, err := s.categories.ListRoots(ctx)
	if err != nil {
		s.logger.Error("catalog.root_categories.query_failed", "error", err, "locale", locale)
		return []*catalog.CategoryView{}, nil
	}
	views := make([]*catalog.CategoryView, 0, len(records))
	for _, record := range records {
		views = append(views, categoryView(record, loc.ID))
	}
	return views, nil
}

func (s *service) ChildCategories(ctx context.Context, locale string, parentID uuid.UUID) ([]*catalog.CategoryView, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, catalog.ErrUnknownLocale
	}
	records, err := s.categories.ListChildren(ctx, parentID)
	if err != nil {
		s.logger.Error("catalog.child_categories.query_failed", "error", err, "locale", locale)
		return []*catalog.CategoryView{}, nil
	}
	views := make([]*catalog.CategoryView, 0, len(records))
	for _, record := range records {
		views = append(views, categoryView(record, loc.ID))
	}
	return views, nil
}

func (s *service) GetCategoryBySlug(ctx context.Context, locale string, slug string) (*catalog.CategoryView, error) {
	loc, err := s.locales.GetByCode(ctx, locale)
	if err != nil {
		return nil, catalog.ErrUnknownLocale
	}
	record, err := s.categories.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if catalog.IsNotFound(err) {
			return nil, nil
		}
		s.logger.Error("catalog.get_category.query_failed", "error", err, "slug", slug)
		return nil, nil
	}
	view := categoryView(record, loc.ID)
	for _, child := range record.Children {
		view.Children = append(view.Children, categoryView(child, loc.ID))
	}
	return view, nil
}

// CreateProduct validates and persists a product aggregate in one
// transaction.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	if len(input.Translations) == 0 {
		return nil, catalog.ErrProductNameRequired
	}
	if input.BasePrice < 0 {
		return nil, catalog.ErrPriceInvalid
	}

	now := s.now()
	record := &Product{
		ID:           s.id(),
		Status:       string(domain.NormalizeStatus(input.Status)),
		BasePrice:    input.BasePrice,
		Currency:     chooseCurrency(input.Currency),
		CategoryID:   input.CategoryID,
		SortOrder:    input.SortOrder,
		IsFeatured:   input.IsFeatured,
		IsBestSeller: input.IsBestSeller,
		CreatedBy:    input.CreatedBy,
		UpdatedBy:    input.UpdatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.ID != nil {
		record.ID = *input.ID
	}

	translations, err := s.buildTranslations(ctx, record.ID, input.Translations, now)
	if err != nil {
		return nil, err
	}
	record.Translations = translations
	record.Media = buildMedia(s.id, record.ID, input.Media, now)

	links, err := s.buildLinks(ctx, record.ID, input.Links, now)
	if err != nil {
		return nil, err
	}
	record.Links = links

	return s.products.Create(ctx, record)
}

// UpdateProduct replaces the product aggregate in one transaction.
func (s *service) UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error) {
	if input.ID == uuid.Nil {
		return nil, catalog.ErrProductIDRequired
	}
	if len(input.Translations) == 0 {
		return nil, catalog.ErrProductNameRequired
	}
	if input.BasePrice < 0 {
		return nil, catalog.ErrPriceInvalid
	}

	existing, err := s.products.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &Product{
		ID:           existing.ID,
		Status:       string(domain.NormalizeStatus(input.Status)),
		BasePrice:    input.BasePrice,
		Currency:     chooseCurrency(input.Currency),
		CategoryID:   input.CategoryID,
		SortOrder:    input.SortOrder,
		IsFeatured:   input.IsFeatured,
		IsBestSeller: input.IsBestSeller,
		CreatedBy:    existing.CreatedBy,
		UpdatedBy:    input.UpdatedBy,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    now,
	}

	translations, err := s.buildTranslations(ctx, record.ID, input.Translations, now)
	if err != nil {
		return nil, err
	}
	record.Translations = translations
	record.Media = buildMedia(s.id, record.ID, input.Media, now)

	links, err := s.buildLinks(ctx, record.ID, input.Links, now)
	if err != nil {
		return nil, err
	}
	record.Links = links

	return s.products.Update(ctx, record)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return catalog.ErrProductIDRequired
	}
	return s.products.Delete(ctx, id)
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, catalog.ErrCategorySlugRequired
	}
	if !slugpkg.IsValid(slug) {
		return nil, catalog.ErrSlugInvalid
	}

	now := s.now()
	record := &Category{
		ID:        s.id(),
		Slug:      slug,
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
		IsEnabled: input.IsEnabled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.ID != nil {
		record.ID = *input.ID
	}

	translations, err := s.buildCategoryTranslations(ctx, record.ID, input.Translations, now)
	if err != nil {
		return nil, err
	}
	record.Translations = translations

	return s.categories.Create(ctx, record)
}

func (s *service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	if input.ID == uuid.Nil {
		return nil, catalog.ErrCategoryIDRequired
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, catalog.ErrCategorySlugRequired
	}
	if input.ParentID != nil {
		if err := s.checkCategoryCycle(ctx, input.ID, *input.ParentID); err != nil {
			return nil, err
		}
	}

	existing, err := s.categories.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &Category{
		ID:        existing.ID,
		Slug:      slug,
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
		IsEnabled: input.IsEnabled,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: now,
	}

	translations, err := s.buildCategoryTranslations(ctx, record.ID, input.Translations, now)
	if err != nil {
		return nil, err
	}
	record.Translations = translations

	return s.categories.Update(ctx, record)
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return catalog.ErrCategoryIDRequired
	}
	children, err := s.categories.ListChildren(ctx, id)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.DeleteCategory(ctx, child.ID); err != nil {
			return err
		}
	}
	return s.categories.Delete(ctx, id)
}

func (s *service) buildTranslations(ctx context.Context, productID uuid.UUID, inputs []TranslationInput, now time.Time) ([]*ProductTranslation, error) {
	seen := map[string]struct{}{}
	translations := make([]*ProductTranslation, 0, len(inputs))
	for _, input := range inputs {
		code := strings.TrimSpace(input.Locale)
		if _, ok := seen[code]; ok {
			return nil, catalog.ErrDuplicateLocale
		}
		loc, err := s.locales.GetByCode(ctx, code)
		if err != nil {
			return nil, catalog.ErrUnknownLocale
		}
		if strings.TrimSpace(input.Name) == "" {
			return nil, catalog.ErrProductNameRequired
		}
		if input.PriceOverride != nil && *input.PriceOverride < 0 {
			return nil, catalog.ErrPriceInvalid
		}
		slug := input.Slug
		if slug != nil {
			normalized, err := slugpkg.Normalize(*slug)
			if err != nil || !slugpkg.IsValid(normalized) {
				return nil, catalog.ErrSlugInvalid
			}
			slug = &normalized
		}
		translations = append(translations, &ProductTranslation{
			ID:               s.id(),
			ProductID:        productID,
			LocaleID:         loc.ID,
			Name:             input.Name,
			Slug:             slug,
			ShortDescription: input.ShortDescription,
			LongDescription:  input.LongDescription,
			PriceOverride:    input.PriceOverride,
			Benefits:         input.Benefits,
			Ingredients:      input.Ingredients,
			HowToUse:         input.HowToUse,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		seen[code] = struct{}{}
	}
	return translations, nil
}

func (s *service) buildLinks(ctx context.Context, productID uuid.UUID, inputs []LinkInput, now time.Time) ([]*ProductLink, error) {
	links := make([]*ProductLink, 0, len(inputs))
	for _, input := range inputs {
		if strings.TrimSpace(input.URL) == "" {
			return nil, catalog.ErrLinkURLRequired
		}
		var localeID *uuid.UUID
		if input.Locale != nil {
			loc, err := s.locales.GetByCode(ctx, *input.Locale)
			if err != nil {
				return nil, catalog.ErrUnknownLocale
			}
			localeID = &loc.ID
		}
		links = append(links, &ProductLink{
			ID:        s.id(),
			ProductID: productID,
			Platform:  catalog.ParsePlatform(input.Platform),
			URL:       input.URL,
			LocaleID:  localeID,
			Label:     input.Label,
			SortOrder: input.SortOrder,
			CreatedAt: now,
		})
	}
	return links, nil
}

func (s *service) buildCategoryTranslations(ctx context.Context, categoryID uuid.UUID, inputs []CategoryTranslationInput, now time.Time) ([]*CategoryTranslation, error) {
	seen := map[string]struct{}{}
	translations := make([]*CategoryTranslation, 0, len(inputs))
	for _, input := range inputs {
		code := strings.TrimSpace(input.Locale)
		if _, ok := seen[code]; ok {
			return nil, catalog.ErrDuplicateLocale
		}
		loc, err := s.locales.GetByCode(ctx, code)
		if err != nil {
			return nil, catalog.ErrUnknownLocale
		}
		translations = append(translations, &CategoryTranslation{
			ID:          s.id(),
			CategoryID:  categoryID,
			LocaleID:    loc.ID,
			Name:        input.Name,
			Description: input.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		seen[code] = struct{}{}
	}
	return translations, nil
}

func (s *service) checkCategoryCycle(ctx context.Context, id, parentID uuid.UUID) error {
	current := parentID
	for current != uuid.Nil {
		if current == id {
			return catalog.ErrCategoryParentCycle
		}
		parent, err := s.categories.GetByID(ctx, current)
		if err != nil {
			if catalog.IsNotFound(err) {
				return nil
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return nil
}

func (s *service) productView(record *Product, loc *locales.Locale) catalog.ProductView {
	tr := catalog.TranslationForLocale(record, loc.ID)
	view := catalog.ProductView{
		ID:           record.ID,
		Slug:         catalog.ResolveSlug(record, tr),
		Price:        catalog.ResolvePrice(record, tr),
		Currency:     record.Currency,
		IsFeatured:   record.IsFeatured,
		IsBestSeller: record.IsBestSeller,
		Images:       catalog.OrderedImages(record),
		BuyLinks:     catalog.ResolveBuyLinks(record, loc.ID),
	}
	if tr != nil {
		view.Name = tr.Name
		view.Benefits = tr.Benefits
		view.Ingredients = tr.Ingredients
		if tr.ShortDescription != nil {
			view.ShortDescription = *tr.ShortDescription
		}
		if tr.LongDescription != nil {
			view.LongDescription = *tr.LongDescription
		}
		if tr.HowToUse != nil {
			view.HowToUse = *tr.HowToUse
		}
	}
	if len(view.Images) > 0 {
		view.PrimaryImage = view.Images[0]
	}
	if len(view.Images) > 1 {
		view.SecondaryImage = view.Images[1]
	}
	if record.Category != nil {
		view.Category = categoryView(record.Category, loc.ID)
	}
	return view
}

func categoryView(record *Category, localeID uuid.UUID) *catalog.CategoryView {
	view := &catalog.CategoryView{
		ID:        record.ID,
		Slug:      record.Slug,
		ParentID:  record.ParentID,
		SortOrder: record.SortOrder,
	}
	var fallback *CategoryTranslation
	for _, tr := range record.Translations {
		if tr == nil {
			continue
		}
		if fallback == nil {
			fallback = tr
		}
		if tr.LocaleID == localeID {
			fallback = tr
			break
		}
	}
	if fallback != nil {
		view.Name = fallback.Name
		if fallback.Description != nil {
			view.Description = *fallback.Description
		}
	}
	return view
}

func buildCategoryTree(records []*Category, localeID uuid.UUID) []*catalog.CategoryView {
	views := make(map[uuid.UUID]*catalog.CategoryView, len(records))
	for _, record := range records {
		views[record.ID] = categoryView(record, localeID)
	}

	roots := make([]*catalog.CategoryView, 0)
	for _, record := range records {
		view := views[record.ID]
		if record.ParentID != nil {
			if parent, ok := views[*record.ParentID]; ok {
				parent.Children = append(parent.Children, view)
				continue
			}
		}
		roots = append(roots, view)
	}
	return roots
}

func buildMedia(id func() uuid.UUID, productID uuid.UUID, inputs []MediaInput, now time.Time) []*ProductMedia {
	media := make([]*ProductMedia, 0, len(inputs))
	for _, input := range inputs {
		media = append(media, &ProductMedia{
			ID:        id(),
			ProductID: productID,
			URL:       input.URL,
			Path:      input.Path,
			Alt:       input.Alt,
			SortOrder: input.SortOrder,
			CreatedAt: now,
		})
	}
	return media
}

func chooseCurrency(currency string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(currency))
	if trimmed == "" {
		return "VND"
	}
	return trimmed
}
