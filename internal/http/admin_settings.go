package http

import (
	"encoding/json"
	"net/http"
)

type settingUpsertPayload struct {
	Value json.RawMessage `json:"value"`
}

func (api *AdminAPI) registerSettingsRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "settings")
	mux.HandleFunc("PUT "+root+"/{key}", api.handleSettingUpsert)
	mux.HandleFunc("DELETE "+root+"/{key}", api.handleSettingDelete)
}

func (api *AdminAPI) handleSettingUpsert(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	identity, ok := api.authenticate(w, r)
	if !ok {
		return
	}
	var payload settingUpsertPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	setting, err := api.settings.Upsert(r.Context(), r.PathValue("key"), payload.Value, identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

func (api *AdminAPI) handleSettingDelete(w http.ResponseWriter, r *http.Request) {
	if api.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	if err := api.settings.Delete(r.Context(), r.PathValue("key")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
