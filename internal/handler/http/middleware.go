package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/admin"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/httputil"
	"github.com/Emmanation-Designs/Gibsons-Collections3/pkg/middleware"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// clientIDKey is the context key for the anonymous client identifier.
const clientIDKey contextKey = "client_id"

// ClientIDHeader names the header carrying the anonymous client identifier
// the storefront generates once and sends on every request. Carts and
// wishlists are keyed by it, so it works without an account.
const ClientIDHeader = "X-Client-ID"

// ClientID is middleware that reads the X-Client-ID header and stores it in
// the request context. Requests without one are rejected: there is no state
// record to operate on.
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(ClientIDHeader))
		if id == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: ClientIDHeader + " header is required"},
			})
			return
		}
		ctx := context.WithValue(r.Context(), clientIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientIDFromContext extracts the client identifier from the request context.
func clientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey).(string)
	return id
}

// RequireAdmin gates a route group on the allow-list. It must run after the
// Auth middleware so the authenticated email is already in the context.
func RequireAdmin(allowlist *admin.Allowlist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := middleware.EmailFromContext(r.Context())
			if !allowlist.IsAdmin(email) {
				httputil.WriteJSON(w, http.StatusForbidden, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "FORBIDDEN", Message: "admin access required"},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
