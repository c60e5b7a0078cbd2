package http

import (
	"fmt"
	"net/http"
	"strings"

	blogsvc "github.com/amara-beauty/storefront-cms/internal/blog"
	catalogsvc "github.com/amara-beauty/storefront-cms/internal/catalog"
	mediasvc "github.com/amara-beauty/storefront-cms/internal/media"
	navigationsvc "github.com/amara-beauty/storefront-cms/internal/navigation"
	pagessvc "github.com/amara-beauty/storefront-cms/internal/pages"
	settingssvc "github.com/amara-beauty/storefront-cms/internal/settings"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// AdminAPI registers the bearer-authenticated mutation endpoints plus the
// media library routes. Every handler authenticates before touching a
// service, so an invalid token never reaches a side effect.
type AdminAPI struct {
	basePath   string
	auth       interfaces.AuthService
	catalog    catalogsvc.Service
	blog       blogsvc.Service
	pages      pagessvc.Service
	static     pagessvc.StaticService
	navigation navigationsvc.Service
	settings   settingssvc.Service
	media      mediasvc.Service
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithAdminBasePath overrides the base API path (defaults to "/admin/api").
func WithAdminBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithAdminAuth wires the bearer token verifier. Without one every admin
// route fails closed with 401.
func WithAdminAuth(auth interfaces.AuthService) AdminOption {
	return func(api *AdminAPI) {
		api.auth = auth
	}
}

// WithAdminCatalog wires the catalog mutation service.
func WithAdminCatalog(service catalogsvc.Service) AdminOption {
	return func(api *AdminAPI) {
		api.catalog = service
	}
}

// WithAdminBlog wires the blog mutation service.
func WithAdminBlog(service blogsvc.Service) AdminOption {
	return func(api *AdminAPI) {
		api.blog = service
	}
}

// WithAdminPages wires the page-builder mutation service.
func WithAdminPages(service pagessvc.Service) AdminOption {
	return func(api *AdminAPI) {
		api.pages = service
	}
}

// WithAdminStaticPages wires the static page slot service.
func WithAdminStaticPages(service pagessvc.StaticService) AdminOption {
	return func(api *AdminAPI) {
		api.static = service
	}
}

// WithAdminNavigation wires the navigation mutation service.
func WithAdminNavigation(service navigationsvc.Service) AdminOption {
	return func(api *AdminAPI) {
		api.navigation = service
	}
}

// WithAdminSettings wires the site settings service.
func WithAdminSettings(service settingssvc.Service) AdminOption {
	return func(api *AdminAPI) {
		api.settings = service
	}
}

// WithAdminMedia wires the media library service.
func WithAdminMedia(service mediasvc.Service) AdminOption {
	return func(api *AdminAPI) {
		api.media = service
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerCatalogRoutes(mux, base)
	api.registerBlogRoutes(mux, base)
	api.registerPageRoutes(mux, base)
	api.registerNavigationRoutes(mux, base)
	api.registerSettingsRoutes(mux, base)
	api.registerMediaRoutes(mux, base)

	return nil
}

// authenticate validates the bearer token and resolves the caller identity.
// It writes the error response itself; callers bail out on ok == false.
func (api *AdminAPI) authenticate(w http.ResponseWriter, r *http.Request) (*interfaces.Identity, bool) {
	if api.auth == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: "no credential verifier configured",
		})
		return nil, false
	}
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: "missing bearer token",
		})
		return nil, false
	}
	identity, err := api.auth.Authenticate(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return nil, false
	}
	return identity, true
}
