package http

import (
	"net/http"

	blogsvc "github.com/amara-beauty/storefront-cms/internal/blog"
	catalogsvc "github.com/amara-beauty/storefront-cms/internal/catalog"
	"github.com/amara-beauty/storefront-cms/settings"
)

func (api *PublicAPI) handleProductList(w http.ResponseWriter, r *http.Request, locale string) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := r.URL.Query()
	filters := catalogsvc.PublicFilters{
		CategorySlug: query.Get("category"),
		Featured:     parseBoolQuery(query.Get("featured")),
		BestSeller:   parseBoolQuery(query.Get("best_seller")),
		Limit:        parseIntQuery(query.Get("limit"), 0),
	}
	list, err := api.catalog.ListProducts(r.Context(), locale, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *PublicAPI) handleProductGet(w http.ResponseWriter, r *http.Request, locale string) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	view, err := api.catalog.GetProductBySlug(r.Context(), locale, r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	if view == nil {
		writeNotFound(w, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *PublicAPI) handleCategoryList(w http.ResponseWriter, r *http.Request, locale string) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := r.URL.Query()
	if parent := query.Get("parent"); parent != "" {
		parentID, err := parseUUID(parent)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid parent id"})
			return
		}
		list, err := api.catalog.ChildCategories(r.Context(), locale, parentID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}
	if roots := parseBoolQuery(query.Get("roots")); roots != nil && *roots {
		list, err := api.catalog.RootCategories(r.Context(), locale)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}
	list, err := api.catalog.ListCategories(r.Context(), locale)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *PublicAPI) handleCategoryGet(w http.ResponseWriter, r *http.Request, locale string) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	view, err := api.catalog.GetCategoryBySlug(r.Context(), locale, r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	if view == nil {
		writeNotFound(w, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *PublicAPI) handlePostList(w http.ResponseWriter, r *http.Request, locale string) {
	if api.blog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	query := r.URL.Query()
	opts := blogsvc.ListOptions{
		Limit:  parseIntQuery(query.Get("limit"), 0),
		Offset: parseIntQuery(query.Get("offset"), 0),
	}
	list, err := api.blog.ListPosts(r.Context(), locale, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *PublicAPI) handlePostGet(w http.ResponseWriter, r *http.Request, locale string) {
	if api.blog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	view, err := api.blog.GetPostBySlug(r.Context(), locale, r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	if view == nil {
		writeNotFound(w, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (api *PublicAPI) handlePageContent(w http.ResponseWriter, r *http.Request, locale string) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	content, err := api.pages.GetPageContent(r.Context(), locale, r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	if content == nil {
		writeNotFound(w, "page not found")
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (api *PublicAPI) handleStaticContent(w http.ResponseWriter, r *http.Request, locale string) {
	if api.static == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	content, err := api.static.GetContent(r.Context(), locale, r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (api *PublicAPI) handleNavigation(w http.ResponseWriter, r *http.Request, locale string) {
	if api.navigation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	nodes, err := api.navigation.GetNavigation(r.Context(), locale, r.PathValue("group"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

func (api *PublicAPI) handleSocials(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	links, err := api.settings.Socials(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (api *PublicAPI) handleFloatingActions(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	actions, err := api.settings.FloatingActions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actions)
}

func (api *PublicAPI) handleSectionVisibility(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	key := r.PathValue("key")
	if key == "tiktok" {
		key = settings.KeyTikTokSectionVisible
	}
	visibility, err := api.settings.SectionVisibility(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, visibility)
}
