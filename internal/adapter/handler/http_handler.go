package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/core/service"
	"little-lemon/internal/port"
)

type ThrottleConfig struct {
	AnonLimit int // requests per window for unauthenticated callers
	UserLimit int // requests per window per authenticated user
	Window    time.Duration
}

type HTTPHandler struct {
	log      *slog.Logger
	accounts *service.AccountService
	catalog  *service.CatalogService
	cart     *service.CartService
	orders   *service.OrderService
	cache    port.CacheRepository
	throttle ThrottleConfig
}

func NewHTTPHandler(
	log *slog.Logger,
	accounts *service.AccountService,
	catalog *service.CatalogService,
	cart *service.CartService,
	orders *service.OrderService,
	cache port.CacheRepository,
	throttle ThrottleConfig,
) *HTTPHandler {
	return &HTTPHandler{
		log:      log,
		accounts: accounts,
		catalog:  catalog,
		cart:     cart,
		orders:   orders,
		cache:    cache,
		throttle: throttle,
	}
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps the service error taxonomy onto status codes. A
// denied role check is always the same opaque forbidden message no
// matter which check failed.
func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrCartEmpty):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "invalid or missing credentials"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, messageResponse{Message: "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "not found"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, messageResponse{Message: "conflict"})
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
