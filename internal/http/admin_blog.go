package http

import (
	"net/http"
	"time"

	blogsvc "github.com/amara-beauty/storefront-cms/internal/blog"
)

type postTranslationPayload struct {
	Locale         string  `json:"locale"`
	Title          string  `json:"title"`
	Slug           *string `json:"slug,omitempty"`
	Excerpt        *string `json:"excerpt,omitempty"`
	Body           string  `json:"body"`
	BodyFormat     string  `json:"body_format,omitempty"`
	SEOTitle       *string `json:"seo_title,omitempty"`
	SEODescription *string `json:"seo_description,omitempty"`
	OGImage        *string `json:"og_image,omitempty"`
}

type postMediaPayload struct {
	URL        string  `json:"url"`
	Path       string  `json:"path,omitempty"`
	Alt        *string `json:"alt,omitempty"`
	SortOrder  int     `json:"sort_order"`
	IsFeatured bool    `json:"is_featured"`
}

type postPayload struct {
	Status       string                   `json:"status,omitempty"`
	PublishedAt  *time.Time               `json:"published_at,omitempty"`
	Translations []postTranslationPayload `json:"translations"`
	Media        []postMediaPayload       `json:"media,omitempty"`
}

func (api *AdminAPI) registerBlogRoutes(mux *http.ServeMux, base string) {
	posts := joinPath(base, "posts")
	mux.HandleFunc("POST "+posts, api.handlePostCreate)
	mux.HandleFunc("PUT "+posts+"/{id}", api.handlePostUpdate)
	mux.HandleFunc("DELETE "+posts+"/{id}", api.handlePostDelete)
	mux.HandleFunc("POST "+posts+"/{id}/publish", api.handlePostPublish)
	mux.HandleFunc("POST "+posts+"/{id}/unpublish", api.handlePostUnpublish)
}

func postTranslationInputs(payloads []postTranslationPayload) []blogsvc.TranslationInput {
	out := make([]blogsvc.TranslationInput, 0, len(payloads))
	for _, tr := range payloads {
		out = append(out, blogsvc.TranslationInput{
			Locale:         tr.Locale,
			Title:          tr.Title,
			Slug:           tr.Slug,
			Excerpt:        tr.Excerpt,
			Body:           tr.Body,
			BodyFormat:     tr.BodyFormat,
			SEOTitle:       tr.SEOTitle,
			SEODescription: tr.SEODescription,
			OGImage:        tr.OGImage,
		})
	}
	return out
}

func postMediaInputs(payloads []postMediaPayload) []blogsvc.MediaInput {
	out := make([]blogsvc.MediaInput, 0, len(payloads))
	for _, m := range payloads {
		out = append(out, blogsvc.MediaInput{
			URL:        m.URL,
			Path:       m.Path,
			Alt:        m.Alt,
			SortOrder:  m.SortOrder,
			IsFeatured: m.IsFeatured,
		})
	}
	return out
}

func (api *AdminAPI) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	if api.blog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	identity, ok := api.authenticate(w, r)
	if !ok {
		return
	}
	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.blog.CreatePost(r.Context(), blogsvc.CreatePostInput{
		Status:       payload.Status,
		PublishedAt:  payload.PublishedAt,
		CreatedBy:    identity.UserID,
		UpdatedBy:    identity.UserID,
		Translations: postTranslationInputs(payload.Translations),
		Media:        postMediaInputs(payload.Media),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handlePostUpdate(w http.ResponseWriter, r *http.Request) {
	if api.blog == nil {
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
	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.blog.UpdatePost(r.Context(), blogsvc.UpdatePostInput{
		ID:           id,
		Status:       payload.Status,
		PublishedAt:  payload.PublishedAt,
		UpdatedBy:    identity.UserID,
		Translations: postTranslationInputs(payload.Translations),
		Media:        postMediaInputs(payload.Media),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	if api.blog == nil {
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
	if err := api.blog.DeletePost(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handlePostPublish(w http.ResponseWriter, r *http.Request) {
	if api.blog == nil {
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
	published, err := api.blog.PublishPost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, published)
}

func (api *AdminAPI) handlePostUnpublish(w http.ResponseWriter, r *http.Request) {
	if api.blog == nil {
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
	unpublished, err := api.blog.UnpublishPost(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unpublished)
}
