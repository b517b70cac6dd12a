package controllers

import (
	"log/slog"
	"net/http"

	"orgcalendar/internal/delivery/http/helpers"
	"orgcalendar/internal/domain"
)

const eventNotFound = "Event not found"

// EventController serves the /events routes.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Events visible to the caller, ascending by date. The user role only sees public events.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param type query string false "Event type" Enums(event,workshop,seminar,conference,other)
// @Success 200 {object} controllers.EventListResponse
// @Failure 400 {object} helpers.APIResponse "code: validation_failed"
// @Failure 401 {object} helpers.APIResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	events, err := c.Service.List(r.Context(), p, domain.EventListParams{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Type:      q.Get("type"),
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, eventNotFound)
		return
	}
	helpers.WriteJSONList(w, events, len(events))
}

// GetEvent godoc
// @Summary Get an event
// @Description Private events are forbidden to the user role.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.EventResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Get(r.Context(), p, r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, eventNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event, "")
}

// CreateEvent godoc
// @Summary Create an event
// @Description Secretary or convenor only. isPublic defaults to true and type to "event".
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event"
// @Success 201 {object} controllers.EventResponse
// @Failure 400 {object} helpers.APIResponse "code: validation_failed or bad_request"
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	p, ok := writer(w, r, c.Logger)
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	event, err := c.Service.Create(r.Context(), p, req.input())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, eventNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event, "Event created successfully")
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Secretary or convenor only. Only supplied fields change.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param body body EventRequest true "Fields to change"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.APIResponse "code: validation_failed or bad_request"
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	p, ok := writer(w, r, c.Logger)
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	event, err := c.Service.Update(r.Context(), p, r.PathValue("id"), req.input())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, eventNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event, "Event updated successfully")
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Secretary or convenor only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, eventNotFound)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "Event deleted successfully")
}
