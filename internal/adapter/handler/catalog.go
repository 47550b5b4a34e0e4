package handler

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"little-lemon/internal/core/domain"
)

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *HTTPHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	category, err := h.catalog.CreateCategory(r.Context(), req.Title)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *HTTPHandler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.MenuItemFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}
	if raw := q.Get("max_price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: bad max_price", domain.ErrInvalidInput))
			return
		}
		filter.MaxPrice = p
	}

	items, err := h.catalog.ListMenuItems(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type menuItemRequest struct {
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	Featured   bool            `json:"featured"`
	CategoryID int64           `json:"category_id"`
}

func (h *HTTPHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.catalog.CreateMenuItem(r.Context(), domain.MenuItem{
		Title:      req.Title,
		Price:      req.Price,
		Featured:   req.Featured,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *HTTPHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.catalog.GetMenuItem(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *HTTPHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	// PATCH semantics: absent fields keep their current value.
	current, err := h.catalog.GetMenuItem(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	req := menuItemRequest{
		Title:      current.Title,
		Price:      current.Price,
		Featured:   current.Featured,
		CategoryID: current.CategoryID,
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.catalog.UpdateMenuItem(r.Context(), domain.MenuItem{
		ID:         id,
		Title:      req.Title,
		Price:      req.Price,
		Featured:   req.Featured,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *HTTPHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.catalog.DeleteMenuItem(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "deleted"})
}
