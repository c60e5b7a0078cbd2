package http

import (
	"net/http"

	"github.com/google/uuid"

	navigationsvc "github.com/amara-beauty/storefront-cms/internal/navigation"
)

type navigationItemPayload struct {
	Locale    string     `json:"locale"`
	Group     string     `json:"group"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Position  int        `json:"position"`
	IsEnabled bool       `json:"is_enabled"`
	Label     string     `json:"label"`
	Href      string     `json:"href"`
	Icon      *string    `json:"icon,omitempty"`
	Target    *string    `json:"target,omitempty"`
	Highlight bool       `json:"highlight,omitempty"`
	Badge     *string    `json:"badge,omitempty"`
}

type navigationReorderPayload struct {
	Locale     string      `json:"locale"`
	Group      string      `json:"group"`
	ParentID   *uuid.UUID  `json:"parent_id,omitempty"`
	OrderedIDs []uuid.UUID `json:"ordered_ids"`
}

type navigationPositionPayload struct {
	ID       uuid.UUID  `json:"id"`
	Position int        `json:"position"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type navigationBulkPayload struct {
	Updates []navigationPositionPayload `json:"updates"`
}

func (api *AdminAPI) registerNavigationRoutes(mux *http.ServeMux, base string) {
	items := joinPath(base, "navigation/items")
	mux.HandleFunc("POST "+items, api.handleNavigationItemCreate)
	mux.HandleFunc("PUT "+items+"/{id}", api.handleNavigationItemUpdate)
	mux.HandleFunc("DELETE "+items+"/{id}", api.handleNavigationItemDelete)

	root := joinPath(base, "navigation")
	mux.HandleFunc("POST "+root+"/reorder", api.handleNavigationReorder)
	mux.HandleFunc("POST "+root+"/positions", api.handleNavigationBulkUpdate)
}

func navigationItemInput(payload navigationItemPayload, id *uuid.UUID, actor uuid.UUID) navigationsvc.ItemInput {
	return navigationsvc.ItemInput{
		ID:        id,
		Locale:    payload.Locale,
		Group:     payload.Group,
		ParentID:  payload.ParentID,
		Position:  payload.Position,
		IsEnabled: payload.IsEnabled,
		Label:     payload.Label,
		Href:      payload.Href,
		Icon:      payload.Icon,
		Target:    payload.Target,
		Highlight: payload.Highlight,
		Badge:     payload.Badge,
		ActorID:   actor,
	}
}

func (api *AdminAPI) handleNavigationItemCreate(w http.ResponseWriter, r *http.Request) {
	if api.navigation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	identity, ok := api.authenticate(w, r)
	if !ok {
		return
	}
	var payload navigationItemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	created, err := api.navigation.CreateItem(r.Context(), navigationItemInput(payload, nil, identity.UserID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *AdminAPI) handleNavigationItemUpdate(w http.ResponseWriter, r *http.Request) {
	if api.navigation == nil {
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
	var payload navigationItemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updated, err := api.navigation.UpdateItem(r.Context(), navigationItemInput(payload, &id, identity.UserID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (api *AdminAPI) handleNavigationItemDelete(w http.ResponseWriter, r *http.Request) {
	if api.navigation == nil {
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
	if err := api.navigation.DeleteItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleNavigationReorder(w http.ResponseWriter, r *http.Request) {
	if api.navigation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	var payload navigationReorderPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	err := api.navigation.Reorder(r.Context(), payload.Locale, payload.Group, payload.ParentID, payload.OrderedIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleNavigationBulkUpdate(w http.ResponseWriter, r *http.Request) {
	if api.navigation == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if _, ok := api.authenticate(w, r); !ok {
		return
	}
	var payload navigationBulkPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	updates := make([]navigationsvc.PositionUpdate, 0, len(payload.Updates))
	for _, u := range payload.Updates {
		updates = append(updates, navigationsvc.PositionUpdate{
			ID:       u.ID,
			Position: u.Position,
			ParentID: u.ParentID,
		})
	}
	if err := api.navigation.BulkUpdate(r.Context(), updates); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
