package controllers

import (
	"log/slog"
	"net/http"

	"orgcalendar/internal/delivery/http/helpers"
	"orgcalendar/internal/domain"
)

// CalendarController serves the iCalendar feed.
type CalendarController struct {
	Logger  *slog.Logger
	Service domain.CalendarService
}

// NewCalendarController creates a CalendarController with the given logger and service.
func NewCalendarController(logger *slog.Logger, svc domain.CalendarService) *CalendarController {
	return &CalendarController{
		Logger:  logger,
		Service: svc,
	}
}

// ExportCalendar godoc
// @Summary Export calendar
// @Description iCalendar feed of the events visible to the caller and, for members and officers, meetings that are not cancelled.
// @Tags calendar
// @Produce text/calendar
// @Security BearerAuth
// @Param startDate query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success 200 {string} string "text/calendar document"
// @Failure 400 {object} helpers.APIResponse "code: validation_failed"
// @Failure 401 {object} helpers.APIResponse
// @Router /calendar.ics [get]
func (c *CalendarController) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	body, err := c.Service.Export(r.Context(), p, domain.CalendarParams{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "not found")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
