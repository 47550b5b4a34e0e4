package handler

import (
	"net/http"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/core/service"
)

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), userFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Checkout converts the caller's cart into an order. No request body:
// the cart is the input.
func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Checkout(r.Context(), userFrom(r).ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.orders.Get(r.Context(), userFrom(r), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *HTTPHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req struct {
		Status         *int   `json:"status"`
		DeliveryCrewID *int64 `json:"delivery_crew_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	upd := service.OrderUpdate{DeliveryCrewID: req.DeliveryCrewID}
	if req.Status != nil {
		s := domain.OrderStatus(*req.Status)
		upd.Status = &s
	}
	order, err := h.orders.Update(r.Context(), userFrom(r), id, upd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *HTTPHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.orders.Delete(r.Context(), userFrom(r), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "deleted"})
}
