package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"orgcalendar/internal/domain"
)

// WriteServiceError maps a service error to its HTTP response. notFound is
// the message used for domain.ErrNotFound. Unrecognized errors are logged and
// reported as a generic server error.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteValidationError(w, ve)
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, notFound)
	case errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeUserNotFound, "user not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "user already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeInvalidLogin, "invalid credentials")
	case errors.Is(err, domain.ErrAccountInactive):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeAccountInactive, "user account is inactive")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "server error")
	}
}
