package handler

import "net/http"

func (h *HTTPHandler) ListCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.cart.ListItems(r.Context(), userFrom(r).ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MenuItemID int64 `json:"menuitem_id"`
		Quantity   int   `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	line, err := h.cart.AddItem(r.Context(), userFrom(r).ID, req.MenuItemID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context(), userFrom(r).ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "cart cleared"})
}
