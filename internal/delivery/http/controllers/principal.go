package controllers

import (
	"log/slog"
	"net/http"

	"orgcalendar/internal/delivery/http/helpers"
	"orgcalendar/internal/delivery/http/middleware"
	"orgcalendar/internal/domain"
	"orgcalendar/internal/policy"
)

// principal returns the authenticated caller or writes a 401 and reports false.
func principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeNoToken, "not authorized, no token")
	}
	return p, ok
}

// writer is principal for create and update handlers: callers who may not
// write events or meetings get a 403 before their body is read.
func writer(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (domain.Principal, bool) {
	p, ok := principal(w, r)
	if !ok {
		return p, false
	}
	if err := policy.RequireWrite(p); err != nil {
		helpers.WriteServiceError(w, r, logger, err, "")
		return p, false
	}
	return p, true
}
