package controllers

import "orgcalendar/internal/domain"

// Swagger-only envelopes. Handlers write helpers.APIResponse.

// EventResponse is the envelope for a single event.
type EventResponse struct {
	Success bool                 `json:"success"`
	Data    *domain.EventDetails `json:"data"`
	Message string               `json:"message,omitempty"`
}

// EventListResponse is the envelope for GET /events.
type EventListResponse struct {
	Success bool                   `json:"success"`
	Count   int                    `json:"count"`
	Data    []*domain.EventDetails `json:"data"`
}

// MeetingResponse is the envelope for a single meeting.
type MeetingResponse struct {
	Success bool                   `json:"success"`
	Data    *domain.MeetingDetails `json:"data"`
	Message string                 `json:"message,omitempty"`
}

// MeetingListResponse is the envelope for GET /meetings.
type MeetingListResponse struct {
	Success bool                     `json:"success"`
	Count   int                      `json:"count"`
	Data    []*domain.MeetingDetails `json:"data"`
}

// UserResponse is the envelope for a single user record.
type UserResponse struct {
	Success bool         `json:"success"`
	Data    *domain.User `json:"data"`
	Message string       `json:"message,omitempty"`
}

// UserListResponse is the envelope for GET /users.
type UserListResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Data    []*domain.User `json:"data"`
}

// MemberListResponse is the envelope for GET /users/members.
type MemberListResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []*domain.UserRef `json:"data"`
}

// LoginSuccessResponse is the envelope for POST /auth/login.
type LoginSuccessResponse struct {
	Success bool          `json:"success"`
	Data    LoginResponse `json:"data"`
}
