package http

import (
	"fmt"
	"net/http"
	"strings"

	blogsvc "github.com/amara-beauty/storefront-cms/internal/blog"
	catalogsvc "github.com/amara-beauty/storefront-cms/internal/catalog"
	navigationsvc "github.com/amara-beauty/storefront-cms/internal/navigation"
	pagessvc "github.com/amara-beauty/storefront-cms/internal/pages"
	settingssvc "github.com/amara-beauty/storefront-cms/internal/settings"
	"github.com/amara-beauty/storefront-cms/locales"
)

// PublicAPI registers the locale-prefixed read endpoints the storefront
// consumes. The default locale serves unprefixed paths; en and ko get their
// prefix from the locale resolver, so "/api/products" and "/ko/api/products"
// hit the same handler with a different locale bound.
type PublicAPI struct {
	basePath   string
	catalog    catalogsvc.Service
	blog       blogsvc.Service
	pages      pagessvc.Service
	static     pagessvc.StaticService
	navigation navigationsvc.Service
	settings   settingssvc.Service
}

// PublicOption mutates the PublicAPI configuration.
type PublicOption func(*PublicAPI)

// NewPublicAPI constructs a PublicAPI instance.
func NewPublicAPI(opts ...PublicOption) *PublicAPI {
	api := &PublicAPI{
		basePath: "/api",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithPublicBasePath overrides the base path (defaults to "/api"). The
// locale prefix is applied outside the base, as "/ko" + base.
func WithPublicBasePath(path string) PublicOption {
	return func(api *PublicAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithCatalogService wires the catalog read service.
func WithCatalogService(service catalogsvc.Service) PublicOption {
	return func(api *PublicAPI) {
		api.catalog = service
	}
}

// WithBlogService wires the blog read service.
func WithBlogService(service blogsvc.Service) PublicOption {
	return func(api *PublicAPI) {
		api.blog = service
	}
}

// WithPageService wires the page-builder read service.
func WithPageService(service pagessvc.Service) PublicOption {
	return func(api *PublicAPI) {
		api.pages = service
	}
}

// WithStaticPageService wires the static page slot service.
func WithStaticPageService(service pagessvc.StaticService) PublicOption {
	return func(api *PublicAPI) {
		api.static = service
	}
}

// WithNavigationService wires the navigation read service.
func WithNavigationService(service navigationsvc.Service) PublicOption {
	return func(api *PublicAPI) {
		api.navigation = service
	}
}

// WithSettingsService wires the site settings service.
func WithSettingsService(service settingssvc.Service) PublicOption {
	return func(api *PublicAPI) {
		api.settings = service
	}
}

// Register attaches every public endpoint to the provided mux, once per
// supported locale. An unsupported prefix matches no pattern and 404s at
// the mux, which is the contract for unknown locales.
func (api *PublicAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: public api is nil")
	}

	for _, locale := range locales.Supported() {
		base := joinPath(locales.PathPrefix(locale)+api.basePath, "")
		api.registerContentRoutes(mux, base, locale)
	}

	// Settings are locale independent and only served unprefixed.
	base := joinPath(api.basePath, "")
	mux.HandleFunc("GET "+base+"/settings/socials", api.handleSocials)
	mux.HandleFunc("GET "+base+"/settings/floating-actions", api.handleFloatingActions)
	mux.HandleFunc("GET "+base+"/settings/visibility/{key}", api.handleSectionVisibility)

	return nil
}

func (api *PublicAPI) registerContentRoutes(mux *http.ServeMux, base, locale string) {
	mux.HandleFunc("GET "+base+"/products", api.localeHandler(locale, api.handleProductList))
	mux.HandleFunc("GET "+base+"/products/{slug}", api.localeHandler(locale, api.handleProductGet))
	mux.HandleFunc("GET "+base+"/categories", api.localeHandler(locale, api.handleCategoryList))
	mux.HandleFunc("GET "+base+"/categories/{slug}", api.localeHandler(locale, api.handleCategoryGet))
	mux.HandleFunc("GET "+base+"/posts", api.localeHandler(locale, api.handlePostList))
	mux.HandleFunc("GET "+base+"/posts/{slug}", api.localeHandler(locale, api.handlePostGet))
	mux.HandleFunc("GET "+base+"/pages/{slug}", api.localeHandler(locale, api.handlePageContent))
	mux.HandleFunc("GET "+base+"/static/{slug}", api.localeHandler(locale, api.handleStaticContent))
	mux.HandleFunc("GET "+base+"/navigation/{group}", api.localeHandler(locale, api.handleNavigation))
}

type localeHandlerFunc func(w http.ResponseWriter, r *http.Request, locale string)

func (api *PublicAPI) localeHandler(locale string, fn localeHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, locale)
	}
}
