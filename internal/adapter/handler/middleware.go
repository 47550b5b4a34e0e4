package handler

import (
	"context"
	"net"
	"net/http"
	"strings"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/core/policy"
)

type ctxKey int

const userKey ctxKey = 0

func userFrom(r *http.Request) *domain.User {
	u, _ := r.Context().Value(userKey).(*domain.User)
	return u
}

// withAuth resolves the bearer token to a user with its current group
// membership and stores it on the request context. Roles are derived
// here, once per request, and nowhere else.
func (h *HTTPHandler) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			h.writeError(w, r, domain.ErrUnauthorized)
			return
		}
		user, err := h.accounts.Authenticate(r.Context(), token)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if ok := h.allow(w, r, "user:"+user.Username, h.throttle.UserLimit); !ok {
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

// withManager additionally requires the Manager role (superusers
// qualify).
func (h *HTTPHandler) withManager(op policy.Operation, next http.HandlerFunc) http.HandlerFunc {
	return h.withAuth(func(w http.ResponseWriter, r *http.Request) {
		if !policy.Permit(userFrom(r).Roles, op) {
			h.writeError(w, r, domain.ErrForbidden)
			return
		}
		next(w, r)
	})
}

// withAnonThrottle rate-limits unauthenticated endpoints by client IP.
func (h *HTTPHandler) withAnonThrottle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok := h.allow(w, r, "anon:"+clientIP(r), h.throttle.AnonLimit); !ok {
			return
		}
		next(w, r)
	}
}

func (h *HTTPHandler) allow(w http.ResponseWriter, r *http.Request, key string, limit int) bool {
	if limit <= 0 {
		return true
	}
	ok, err := h.cache.Allow(r.Context(), key, limit, h.throttle.Window)
	if err != nil {
		h.writeError(w, r, err)
		return false
	}
	if !ok {
		writeJSON(w, http.StatusTooManyRequests, messageResponse{Message: "request was throttled"})
		return false
	}
	return true
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	for _, scheme := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(auth, scheme) {
			return strings.TrimSpace(strings.TrimPrefix(auth, scheme))
		}
	}
	return ""
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
