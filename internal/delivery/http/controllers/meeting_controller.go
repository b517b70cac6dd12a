package controllers

import (
	"log/slog"
	"net/http"

	"orgcalendar/internal/delivery/http/helpers"
	"orgcalendar/internal/domain"
)

const meetingNotFound = "Meeting not found"

// MeetingController serves the /meetings routes.
type MeetingController struct {
	Logger  *slog.Logger
	Service domain.MeetingService
}

// NewMeetingController creates a MeetingController with the given logger and service.
func NewMeetingController(logger *slog.Logger, svc domain.MeetingService) *MeetingController {
	return &MeetingController{
		Logger:  logger,
		Service: svc,
	}
}

// ListMeetings godoc
// @Summary List meetings
// @Description Member, secretary or convenor only. Ascending by date with attendees resolved.
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param status query string false "Meeting status" Enums(scheduled,ongoing,completed,cancelled)
// @Success 200 {object} controllers.MeetingListResponse
// @Failure 400 {object} helpers.APIResponse "code: validation_failed"
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Router /meetings [get]
func (c *MeetingController) ListMeetings(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	meetings, err := c.Service.List(r.Context(), p, domain.MeetingListParams{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Status:    q.Get("status"),
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, meetingNotFound)
		return
	}
	helpers.WriteJSONList(w, meetings, len(meetings))
}

// GetMeeting godoc
// @Summary Get a meeting
// @Description Member, secretary or convenor only.
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Success 200 {object} controllers.MeetingResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Router /meetings/{id} [get]
func (c *MeetingController) GetMeeting(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	meeting, err := c.Service.Get(r.Context(), p, r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, meetingNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meeting, "")
}

// CreateMeeting godoc
// @Summary Create a meeting
// @Description Secretary or convenor only. Status defaults to "scheduled". Attendees are sent an invitation.
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MeetingRequest true "Meeting"
// @Success 201 {object} controllers.MeetingResponse
// @Failure 400 {object} helpers.APIResponse "code: validation_failed or bad_request"
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Router /meetings [post]
func (c *MeetingController) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	p, ok := writer(w, r, c.Logger)
	if !ok {
		return
	}
	var req MeetingRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	meeting, err := c.Service.Create(r.Context(), p, req.input())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, meetingNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, meeting, "Meeting created successfully")
}

// UpdateMeeting godoc
// @Summary Update a meeting
// @Description Secretary or convenor only. Only supplied fields change.
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Param body body MeetingRequest true "Fields to change"
// @Success 200 {object} controllers.MeetingResponse
// @Failure 400 {object} helpers.APIResponse "code: validation_failed or bad_request"
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Router /meetings/{id} [put]
func (c *MeetingController) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	p, ok := writer(w, r, c.Logger)
	if !ok {
		return
	}
	var req MeetingRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	meeting, err := c.Service.Update(r.Context(), p, r.PathValue("id"), req.input())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, meetingNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, meeting, "Meeting updated successfully")
}

// DeleteMeeting godoc
// @Summary Delete a meeting
// @Description Secretary or convenor only.
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Router /meetings/{id} [delete]
func (c *MeetingController) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), p, r.PathValue("id")); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, meetingNotFound)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "Meeting deleted successfully")
}
