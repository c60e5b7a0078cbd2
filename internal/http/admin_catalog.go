package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	catalogsvc "github.com/amara-beauty/storefront-cms/internal/catalog"
)

type productTranslationPayload struct {
	Locale           string   `json:"locale"`
	Name             string   `json:"name"`
	Slug             *string  `json:"slug,omitempty"`
	ShortDescription *string  `json:"short_description,omitempty"`
	LongDescription  *string  `json:"long_description,omitempty"`
	PriceOverride    *int64   `json:"price_override,omitempty"`
	Benefits         []string `json:"benefits,omitempty"`
	Ingredients      []string `json:"ingredients,omitempty"`
	HowToUse         *string  `json:"how_to_use,omitempty"`
}

type productMediaPayload struct {
	URL       string  `json:"url"`
	Path      string  `json:"path,omitempty"`
	Alt       *string `json:"alt,omitempty"`
	SortOrder int     `json:"sort_order"`
}

type productLinkPayload struct {
	Platform  string  `json:"platform"`
	URL       string  `json:"url"`
	Locale    *string `json:"locale,omitempty"`
	Label     *string `json:"label,omitempty"`
	SortOrder int     `json:"sort_order"`
}

type productPayload struct {
	Status       string                      `json:"status,omitempty"`
	BasePrice    int64                       `json:"base_price"`
	Currency     string                      `json:"currency,omitempty"`
	CategoryID   *uuid.UUID                  `json:"category_id,omitempty"`
	SortOrder    int                         `json:"sort_order"`
	IsFeatured   bool                        `json:"is_featured"`
	IsBestSeller bool                        `json:"is_best_seller"`
	Translations []productTranslationPayload `json:"translations"`
	Media        []productMediaPayload       `json:"media,omitempty"`
	Links        []productLinkPayload        `json:"links,omitempty"`
}

type categoryTranslationPayload struct {
	Locale      string  `json:"locale"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type categoryPayload struct {
	Slug         string                       `json:"slug"`
	ParentID     *uuid.UUID                   `json:"parent_id,omitempty"`
	SortOrder    int                          `json:"sort_order"`
	IsEnabled    bool                         `json:"is_enabled"`
	Translations []categoryTranslationPayload `json:"translations"`
}

func (api *AdminAPI) registerCatalogRoutes(mux *http.ServeMux, base string) {
	products := joinPath(base, "products")
	mux.HandleFunc("POST "+products, api.handleProductCreate)
	mux.HandleFunc("PUT "+products+"/{id}", api.handleProductUpdate)
	mux.HandleFunc("DELETE "+products+"/{id}", api.handleProductDelete)

	categories := joinPath(base, "categories")
	mux.HandleFunc("POST "+categories, api.handleCategoryCreate)
	mux.HandleFunc("PUT "+categories+"/{id}", api.handleCategoryUpdate)
	mux.HandleFunc("DELETE "+categories+"/{id}", api.handleCategoryDelete)
}

func productTranslationInputs(payloads []productTranslationPayload) []catalogsvc.TranslationInput {
	out := make([]catalogsvc.TranslationInput, 0, len(payloads))
	for _, tr := range payloads {
		out = append(out, catalogsvc.TranslationInput{
			Locale:           tr.Locale,
			Name:             tr.Name,
			Slug:             tr.Slug,
			ShortDescription: tr.ShortDescription,
			LongDescription:  tr.LongDescription,
			PriceOverride:    tr.PriceOverride,
			Benefits:         tr.Benefits,
			Ingredients:      tr.Ingredients,
			HowToUse:         tr.HowToUse,
		})
	}
	return out
}

func productMediaInputs(payloads []productMediaPayload) []catalogsvc.MediaInput {
	out := make([]catalogsvc.MediaInput, 0, len(payloads))
	for _, m := range payloads {
		out = append(out, catalogsvc.MediaInput{
			URL:       m.URL,
			Path:      m.Path,
			Alt:       m.Alt,
			SortOrder: m.SortOrder,
		})
	}
	return out
}

func productLinkInputs(payloads []productLinkPayload) []catalogsvc.LinkInput {
	out := make([]catalogsvc.LinkInput, 0, len(payloads))
	for _, l := range payloads {
		out = append(out, catalogsvc.LinkInput{
			Platform:  l.Platform,
			URL:       l.URL,
			Locale:    l.Locale,
			Label:     l.Label,
			SortOrder: l.SortOrder,
		})
	}
	return out
}

func categoryTranslationInputs(payloads []categoryTranslationPayload) []catalogsvc.CategoryTranslationInput {
	out := make([]catalogsvc.CategoryTranslationInput, 0, len(payloads))
	for _, tr := range payloads {
		out = append(out, catalogsvc.CategoryTranslationInput{
			Locale:      tr.Locale,
			Name:        tr.Name,
			Description: tr.Description,
		})
	}
	return out
}

func (api *AdminAPI) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	identity, ok := api.authenticate(w, r)
	if !ok {
		return
	}
	var payload productPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.catalog.CreateProduct(r.Context(), catalogsvc.CreateProductInput{
		Status:       payload.Status,
		BasePrice:    payload.BasePrice,
		Currency:     payload.Currency,
		CategoryID:   payload.CategoryID,
		SortOrder:    payload.SortOrder,
		IsFeatured:   payload.IsFeatured,
		IsBestSeller: payload.IsBestSeller,
		CreatedBy:    identity.UserID,
		UpdatedBy:    identity.UserID,
		Translations: productTranslationInputs(payload.Translations),
		Media:        productMediaInputs(payload.Media),
		Links:        productLinkInputs(payload.Links),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
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
	var payload productPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.catalog.UpdateProduct(r.Context(), catalogsvc.UpdateProductInput{
		ID:           id,
		Status:       payload.Status,
		BasePrice:    payload.BasePrice,
		Currency:     payload.Currency,
		CategoryID:   payload.CategoryID,
		SortOrder:    payload.SortOrder,
		IsFeatured:   payload.IsFeatured,
		IsBestSeller: payload.IsBestSeller,
		UpdatedBy:    identity.UserID,
		Translations: productTranslationInputs(payload.Translations),
		Media:        productMediaInputs(payload.Media),
		Links:        productLinkInputs(payload.Links),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
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
	if err := api.catalog.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	var payload categoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.catalog.CreateCategory(r.Context(), catalogsvc.CreateCategoryInput{
		Slug:         payload.Slug,
		ParentID:     payload.ParentID,
		SortOrder:    payload.SortOrder,
		IsEnabled:    payload.IsEnabled,
		Translations: categoryTranslationInputs(payload.Translations),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
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
	var payload categoryPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.catalog.UpdateCategory(r.Context(), catalogsvc.UpdateCategoryInput{
		ID:           id,
		Slug:         payload.Slug,
		ParentID:     payload.ParentID,
		SortOrder:    payload.SortOrder,
		IsEnabled:    payload.IsEnabled,
		Translations: categoryTranslationInputs(payload.Translations),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	if api.catalog == nil {
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
	if err := api.catalog.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
