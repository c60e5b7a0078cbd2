package http

import (
	"net/http"

	"github.com/google/uuid"

	mediasvc "github.com/amara-beauty/storefront-cms/internal/media"
)

// uploadMemoryLimit caps how much of a multipart body is held in memory
// before spilling to disk.
const uploadMemoryLimit = 32 << 20

type folderCreatePayload struct {
	Name     string     `json:"name"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

func (api *AdminAPI) registerMediaRoutes(mux *http.ServeMux, base string) {
	assets := joinPath(base, "media/assets")
	mux.HandleFunc("POST "+assets, api.handleAssetUpload)
	mux.HandleFunc("GET "+assets, api.handleAssetList)
	mux.HandleFunc("GET "+assets+"/{id}", api.handleAssetGet)
	mux.HandleFunc("DELETE "+assets+"/{id}", api.handleAssetDelete)

	folders := joinPath(base, "media/folders")
	mux.HandleFunc("GET "+folders, api.handleFolderTree)
	mux.HandleFunc("POST "+folders, api.handleFolderCreate)
	mux.HandleFunc("DELETE "+folders+"/{id}", api.handleFolderDelete)
}

func (api *AdminAPI) handleAssetUpload(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	identity, ok := api.authenticate(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "file part is required"})
		return
	}
	defer file.Close()

	var folderID *uuid.UUID
	if raw := r.FormValue("folder_id"); raw != "" {
		parsed, err := parseUUID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid folder id"})
			return
		}
		folderID = &parsed
	}

	asset, err := api.media.Upload(r.Context(), mediasvc.UploadInput{
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Body:     file,
		FolderID: folderID,
		ActorID:  identity.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (api *AdminAPI) handleAssetList(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	query := r.URL.Query()
	filters := mediasvc.AssetFilters{
		MimeType: query.Get("mime"),
		Limit:    parseIntQuery(query.Get("limit"), 0),
		Offset:   parseIntQuery(query.Get("offset"), 0),
	}
	if raw := query.Get("folder"); raw != "" {
		folderID, err := parseUUID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid folder id"})
			return
		}
		filters.FolderID = &folderID
	}
	list, err := api.media.ListAssets(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (api *AdminAPI) handleAssetGet(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
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
	asset, err := api.media.GetAsset(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (api *AdminAPI) handleAssetDelete(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
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
	if err := api.media.DeleteAsset(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleFolderTree(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	tree, err := api.media.FolderTree(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (api *AdminAPI) handleFolderCreate(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	identity, ok := api.authenticate(w, r)
	if !ok {
		return
	}
	var payload folderCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	folder, err := api.media.CreateFolder(r.Context(), mediasvc.FolderInput{
		Name:     payload.Name,
		ParentID: payload.ParentID,
		ActorID:  identity.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (api *AdminAPI) handleFolderDelete(w http.ResponseWriter, r *http.Request) {
	if api.media == nil {
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
	if err := api.media.DeleteFolder(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
