package http

import (
	"encoding/json"
	"net/http"

	pagessvc "github.com/amara-beauty/storefront-cms/internal/pages"
	"github.com/amara-beauty/storefront-cms/locales"
)

type sectionPayload struct {
	Type      string          `json:"section_type"`
	Position  int             `json:"position"`
	IsEnabled bool            `json:"is_enabled"`
	Config    json.RawMessage `json:"config"`
}

type pageCreatePayload struct {
	Slug           string           `json:"slug"`
	Locale         string           `json:"locale"`
	Title          string           `json:"title"`
	PageType       string           `json:"page_type,omitempty"`
	RoutePattern   *string          `json:"route_pattern,omitempty"`
	SEOTitle       *string          `json:"seo_title,omitempty"`
	SEODescription *string          `json:"seo_description,omitempty"`
	OGImage        *string          `json:"og_image,omitempty"`
	SEOKeywords    *string          `json:"seo_keywords,omitempty"`
	IsPublished    bool             `json:"is_published"`
	Sections       []sectionPayload `json:"sections,omitempty"`
}

type pageUpdatePayload struct {
	Title           string           `json:"title"`
	PageType        string           `json:"page_type,omitempty"`
	RoutePattern    *string          `json:"route_pattern,omitempty"`
	SEOTitle        *string          `json:"seo_title,omitempty"`
	SEODescription  *string          `json:"seo_description,omitempty"`
	OGImage         *string          `json:"og_image,omitempty"`
	SEOKeywords     *string          `json:"seo_keywords,omitempty"`
	Sections        []sectionPayload `json:"sections,omitempty"`
	ReplaceSections bool             `json:"replace_sections,omitempty"`
}

type staticSlotPayload struct {
	Locale string `json:"locale"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func (api *AdminAPI) registerPageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "pages")
	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("POST "+root, api.handlePageCreate)
	mux.HandleFunc("PUT "+root+"/{id}", api.handlePageUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handlePageDelete)
	mux.HandleFunc("POST "+root+"/{id}/publish", api.handlePagePublish)
	mux.HandleFunc("POST "+root+"/{id}/unpublish", api.handlePageUnpublish)

	static := joinPath(base, "static")
	mux.HandleFunc("PUT "+static+"/{slug}/slots", api.handleStaticSlotUpsert)
}

func sectionInputs(payloads []sectionPayload) []pagessvc.SectionInput {
	out := make([]pagessvc.SectionInput, 0, len(payloads))
	for _, s := range payloads {
		out = append(out, pagessvc.SectionInput{
			Type:      s.Type,
			Position:  s.Position,
			IsEnabled: s.IsEnabled,
			Config:    s.Config,
		})
	}
	return out
}

func (api *AdminAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = locales.Default
	}
	list, err := api.pages.ListPages(r.Context(), locale)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	identity, ok := api.authenticate(w, r)
	if !ok {
		return
	}
	var payload pageCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.pages.CreatePage(r.Context(), pagessvc.CreatePageInput{
		Slug:           payload.Slug,
		Locale:         payload.Locale,
		Title:          payload.Title,
		PageType:       payload.PageType,
		RoutePattern:   payload.RoutePattern,
		SEOTitle:       payload.SEOTitle,
		SEODescription: payload.SEODescription,
		OGImage:        payload.OGImage,
		SEOKeywords:    payload.SEOKeywords,
		IsPublished:    payload.IsPublished,
		CreatedBy:      identity.UserID,
		UpdatedBy:      identity.UserID,
		Sections:       sectionInputs(payload.Sections),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	identity, ok := api.authenticate(w, r)
	if !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.pages.UpdatePage(r.Context(), pagessvc.UpdatePageInput{
		ID:              id,
		Title:           payload.Title,
		PageType:        payload.PageType,
		RoutePattern:    payload.RoutePattern,
		SEOTitle:        payload.SEOTitle,
		SEODescription:  payload.SEODescription,
		OGImage:         payload.OGImage,
		SEOKeywords:     payload.SEOKeywords,
		UpdatedBy:       identity.UserID,
		Sections:        sectionInputs(payload.Sections),
		ReplaceSections: payload.ReplaceSections,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.pages.DeletePage(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handlePagePublish(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	published, err := api.pages.PublishPage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, published)
}

func (api *AdminAPI) handlePageUnpublish(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	unpublished, err := api.pages.UnpublishPage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unpublished)
}

func (api *AdminAPI) handleStaticSlotUpsert(w http.ResponseWriter, r *http.Request) {
	if api.static == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	var payload staticSlotPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	input := pagessvc.UpsertSlotInput{
		Slug:   r.PathValue("slug"),
		Locale: payload.Locale,
		Key:    payload.Key,
		Value:  payload.Value,
	}
	if err := api.static.UpsertSlot(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
