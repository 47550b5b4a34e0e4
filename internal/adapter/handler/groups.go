package handler

import (
	"net/http"

	"little-lemon/internal/core/domain"
)

const (
	groupManager      = domain.GroupManager
	groupDeliveryCrew = domain.GroupDeliveryCrew
)

func (h *HTTPHandler) listGroup(group string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := h.accounts.ListGroupMembers(r.Context(), group)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		out := make([]userResponse, 0, len(members))
		for _, m := range members {
			out = append(out, userResponse{ID: m.ID, Username: m.Username, Email: m.Email})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h *HTTPHandler) addToGroup(group string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
		}
		if err := decodeJSON(r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
		if err := h.accounts.AddToGroup(r.Context(), req.Username, group); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, messageResponse{Message: "user added to " + group})
	}
}

func (h *HTTPHandler) removeFromGroup(group string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if err := h.accounts.RemoveFromGroup(r.Context(), id, group); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "user removed from " + group})
	}
}
