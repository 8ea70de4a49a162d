package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "meetingreg/internal/delivery/http/helpers"
	"meetingreg/internal/domain"
)

type contextKey string

const adminLoginKey contextKey = "adminLogin"

// SetAdminLogin returns a context carrying the authenticated admin's login ID.
func SetAdminLogin(ctx context.Context, loginID string) context.Context {
	return context.WithValue(ctx, adminLoginKey, loginID)
}

// AdminLoginFromContext returns the authenticated admin login ID, if present.
func AdminLoginFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminLoginKey).(string)
	return id, ok
}

// RequireAdmin returns a wrapper that validates the Bearer token and sets the
// admin login ID in the request context. If the token is missing or invalid,
// it responds with 401 and does not call next.
func RequireAdmin(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			loginID, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("token rejected", "error", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetAdminLogin(r.Context(), loginID))
			next(w, r)
		}
	}
}
