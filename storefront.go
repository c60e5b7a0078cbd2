package storefront

import (
	"net/http"

	blogsvc "github.com/amara-beauty/storefront-cms/internal/blog"
	catalogsvc "github.com/amara-beauty/storefront-cms/internal/catalog"
	"github.com/amara-beauty/storefront-cms/internal/di"
	storefronthttp "github.com/amara-beauty/storefront-cms/internal/http"
	localessvc "github.com/amara-beauty/storefront-cms/internal/locales"
	mediasvc "github.com/amara-beauty/storefront-cms/internal/media"
	navigationsvc "github.com/amara-beauty/storefront-cms/internal/navigation"
	pagessvc "github.com/amara-beauty/storefront-cms/internal/pages"
	settingssvc "github.com/amara-beauty/storefront-cms/internal/settings"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// LocaleService exports the locale registry contract for consumers of the
// storefront package.
type LocaleService = localessvc.Service

// CatalogService exports the product and category service contract.
type CatalogService = catalogsvc.Service

// BlogService exports the blog service contract.
type BlogService = blogsvc.Service

// BlogImporter exports the markdown import helper.
type BlogImporter = blogsvc.Importer

// PageService exports the page-builder service contract.
type PageService = pagessvc.Service

// StaticPageService exports the static page slot service contract.
type StaticPageService = pagessvc.StaticService

// NavigationService exports the navigation service contract.
type NavigationService = navigationsvc.Service

// SettingsService exports the site settings service contract.
type SettingsService = settingssvc.Service

// MediaService exports the media library service contract.
type MediaService = mediasvc.Service

// Module is the top level storefront runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a storefront module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Locales returns the locale registry service.
func (m *Module) Locales() LocaleService {
	return m.container.LocaleService()
}

// Catalog returns the product and category service.
func (m *Module) Catalog() CatalogService {
	return m.container.CatalogService()
}

// Blog returns the blog service.
func (m *Module) Blog() BlogService {
	return m.container.BlogService()
}

// Importer returns the markdown blog importer.
func (m *Module) Importer() *BlogImporter {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.BlogImporter()
}

// Pages returns the page-builder service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// StaticPages returns the static page slot service.
func (m *Module) StaticPages() StaticPageService {
	return m.container.StaticPageService()
}

// Navigation returns the navigation service.
func (m *Module) Navigation() NavigationService {
	return m.container.NavigationService()
}

// Settings returns the site settings service.
func (m *Module) Settings() SettingsService {
	return m.container.SettingsService()
}

// Media returns the media library service.
func (m *Module) Media() MediaService {
	return m.container.MediaService()
}

// Storage returns the configured storage provider.
func (m *Module) Storage() interfaces.StorageProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.StorageProvider()
}

// RegisterPublicRoutes attaches the locale-prefixed read endpoints to mux.
func (m *Module) RegisterPublicRoutes(mux *http.ServeMux, opts ...storefronthttp.PublicOption) error {
	options := append([]storefronthttp.PublicOption{
		storefronthttp.WithCatalogService(m.container.CatalogService()),
		storefronthttp.WithBlogService(m.container.BlogService()),
		storefronthttp.WithPageService(m.container.PageService()),
		storefronthttp.WithStaticPageService(m.container.StaticPageService()),
		storefronthttp.WithNavigationService(m.container.NavigationService()),
		storefronthttp.WithSettingsService(m.container.SettingsService()),
	}, opts...)
	return storefronthttp.NewPublicAPI(options...).Register(mux)
}

// RegisterAdminRoutes attaches the bearer-authenticated mutation endpoints
// to mux. Without an auth service wired into the container every admin
// route fails closed.
func (m *Module) RegisterAdminRoutes(mux *http.ServeMux, opts ...storefronthttp.AdminOption) error {
	options := append([]storefronthttp.AdminOption{
		storefronthttp.WithAdminAuth(m.container.AuthService()),
		storefronthttp.WithAdminCatalog(m.container.CatalogService()),
		storefronthttp.WithAdminBlog(m.container.BlogService()),
		storefronthttp.WithAdminPages(m.container.PageService()),
		storefronthttp.WithAdminStaticPages(m.container.StaticPageService()),
		storefronthttp.WithAdminNavigation(m.container.NavigationService()),
		storefronthttp.WithAdminSettings(m.container.SettingsService()),
		storefronthttp.WithAdminMedia(m.container.MediaService()),
	}, opts...)
	return storefronthttp.NewAdminAPI(options...).Register(mux)
}
