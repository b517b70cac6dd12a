package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "orgcalendar/internal/delivery/http/helpers"
	"orgcalendar/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// SetPrincipal returns a context carrying p. Used by auth middleware.
func SetPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated principal, if present.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// RequireAuth returns a wrapper that resolves the Bearer token to a principal
// and stores it in the request context. Each failure kind gets its own 401
// code so clients can tell an expired session from a disabled account.
func RequireAuth(identity domain.IdentityVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeNoToken, "not authorized, no token")
				return
			}
			p, err := identity.Identify(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrInvalidToken):
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeInvalidToken, "not authorized, token failed")
				return
			case errors.Is(err, domain.ErrUserNotFound):
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUserNotFound, "user not found")
				return
			case errors.Is(err, domain.ErrAccountInactive):
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeAccountInactive, "user account is inactive")
				return
			default:
				logger.ErrorContext(r.Context(), "identify failed", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "server error")
				return
			}
			next(w, r.WithContext(SetPrincipal(r.Context(), p)))
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}
	token := strings.TrimSpace(auth[len(prefix):])
	return token, token != ""
}
