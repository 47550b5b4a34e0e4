package handler

import (
	"net/http"

	"little-lemon/internal/core/policy"
)

// Router wires every endpoint with its throttle and role middleware.
func (h *HTTPHandler) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.HealthCheck)

	mux.HandleFunc("POST /auth/users", h.withAnonThrottle(h.Register))
	mux.HandleFunc("POST /auth/token/login", h.withAnonThrottle(h.Login))
	mux.HandleFunc("POST /auth/token/logout", h.withAuth(h.Logout))

	mux.HandleFunc("GET /category", h.withAnonThrottle(h.ListCategories))
	mux.HandleFunc("POST /category", h.withManager(policy.OpCatalogWrite, h.CreateCategory))

	mux.HandleFunc("GET /menu-items", h.withAuth(h.ListMenuItems))
	mux.HandleFunc("POST /menu-items", h.withManager(policy.OpCatalogWrite, h.CreateMenuItem))
	mux.HandleFunc("GET /menu-items/{id}", h.withAuth(h.GetMenuItem))
	mux.HandleFunc("PUT /menu-items/{id}", h.withManager(policy.OpCatalogWrite, h.UpdateMenuItem))
	mux.HandleFunc("PATCH /menu-items/{id}", h.withManager(policy.OpCatalogWrite, h.UpdateMenuItem))
	mux.HandleFunc("DELETE /menu-items/{id}", h.withManager(policy.OpCatalogWrite, h.DeleteMenuItem))

	mux.HandleFunc("GET /groups/manager/users", h.withManager(policy.OpGroupRead, h.listGroup(groupManager)))
	mux.HandleFunc("POST /groups/manager/users", h.withManager(policy.OpGroupWrite, h.addToGroup(groupManager)))
	mux.HandleFunc("DELETE /groups/manager/users/{id}", h.withManager(policy.OpGroupWrite, h.removeFromGroup(groupManager)))
	mux.HandleFunc("GET /groups/delivery-crew/users", h.withManager(policy.OpGroupRead, h.listGroup(groupDeliveryCrew)))
	mux.HandleFunc("POST /groups/delivery-crew/users", h.withManager(policy.OpGroupWrite, h.addToGroup(groupDeliveryCrew)))
	mux.HandleFunc("DELETE /groups/delivery-crew/users/{id}", h.withManager(policy.OpGroupWrite, h.removeFromGroup(groupDeliveryCrew)))

	mux.HandleFunc("GET /cart/menu-items", h.withAuth(h.ListCart))
	mux.HandleFunc("POST /cart/menu-items", h.withAuth(h.AddToCart))
	mux.HandleFunc("DELETE /cart/menu-items", h.withAuth(h.ClearCart))

	mux.HandleFunc("GET /orders", h.withAuth(h.ListOrders))
	mux.HandleFunc("POST /orders", h.withAuth(h.Checkout))
	mux.HandleFunc("GET /orders/{id}", h.withAuth(h.GetOrder))
	mux.HandleFunc("PUT /orders/{id}", h.withAuth(h.UpdateOrder))
	mux.HandleFunc("PATCH /orders/{id}", h.withAuth(h.UpdateOrder))
	mux.HandleFunc("DELETE /orders/{id}", h.withAuth(h.DeleteOrder))

	return mux
}
