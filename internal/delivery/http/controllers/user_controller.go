package controllers

import (
	"log/slog"
	"net/http"

	"orgcalendar/internal/delivery/http/helpers"
	"orgcalendar/internal/domain"
)

const userNotFound = "User not found"

// UserController serves the /users routes.
type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// ListUsers godoc
// @Summary List users
// @Description Secretary or convenor only. Newest first.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UserListResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Router /users [get]
func (c *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	users, err := c.Service.List(r.Context(), p)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, userNotFound)
		return
	}
	helpers.WriteJSONList(w, users, len(users))
}

// ListMembers godoc
// @Summary List members
// @Description Active members, secretaries and convenors, for picking meeting attendees.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MemberListResponse
// @Failure 401 {object} helpers.APIResponse
// @Router /users/members [get]
func (c *UserController) ListMembers(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	members, err := c.Service.ListMembers(r.Context(), p)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, userNotFound)
		return
	}
	if members == nil {
		members = []*domain.UserRef{}
	}
	helpers.WriteJSONList(w, members, len(members))
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} controllers.UserResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	user, err := c.Service.GetByID(r.Context(), p, r.PathValue("id"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, userNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user, "")
}

// UpdateUser godoc
// @Summary Update a user
// @Description Owners may change their name and phone. Secretaries and convenors may also change role and isActive on any record.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body UpdateUserRequest true "Fields to change"
// @Success 200 {object} controllers.UserResponse
// @Failure 400 {object} helpers.APIResponse "code: validation_failed or bad_request"
// @Failure 401 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "code: forbidden"
// @Failure 404 {object} helpers.APIResponse "code: not_found"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	user, err := c.Service.Update(r.Context(), p, r.PathValue("id"), req.update())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, userNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user, "User updated successfully")
}
