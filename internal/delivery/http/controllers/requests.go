package controllers

import "orgcalendar/internal/domain"

// EventRequest is the request body for POST /events and PUT /events/{id}.
// On update every field is optional; omitted fields are unchanged.
type EventRequest struct {
	Title       *string `json:"title" example:"Budget Review"`
	Description *string `json:"description"`
	Date        *string `json:"date" example:"2025-01-15"`
	Time        *string `json:"time" example:"10:00"`
	Location    *string `json:"location"`
	Type        *string `json:"type" enums:"event,workshop,seminar,conference,other"`
	IsPublic    *bool   `json:"isPublic"`
}

func (r EventRequest) input() domain.EventInput {
	return domain.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Type:        r.Type,
		IsPublic:    r.IsPublic,
	}
}

// MeetingRequest is the request body for POST /meetings and PUT /meetings/{id}.
// On update every field is optional; omitted fields are unchanged.
type MeetingRequest struct {
	Title            *string   `json:"title" example:"Committee"`
	Description      *string   `json:"description"`
	Date             *string   `json:"date" example:"2025-02-03"`
	StartTime        *string   `json:"startTime" example:"18:00"`
	EndTime          *string   `json:"endTime" example:"19:00"`
	Location         *string   `json:"location"`
	Agenda           *string   `json:"agenda"`
	Attendees        *[]string `json:"attendees"`
	Status           *string   `json:"status" enums:"scheduled,ongoing,completed,cancelled"`
	IsRecurring      *bool     `json:"isRecurring"`
	RecurringPattern *string   `json:"recurringPattern" enums:"daily,weekly,monthly,none"`
}

func (r MeetingRequest) input() domain.MeetingInput {
	return domain.MeetingInput{
		Title:            r.Title,
		Description:      r.Description,
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Location:         r.Location,
		Agenda:           r.Agenda,
		Attendees:        r.Attendees,
		Status:           r.Status,
		IsRecurring:      r.IsRecurring,
		RecurringPattern: r.RecurringPattern,
	}
}

// UpdateUserRequest is the request body for PUT /users/{id}. role and
// isActive are honoured only for secretaries and convenors.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role" enums:"user,member,secretary,convenor"`
	IsActive *bool   `json:"isActive"`
}

func (r UpdateUserRequest) update() domain.UserUpdate {
	u := domain.UserUpdate{Name: r.Name, Phone: r.Phone, IsActive: r.IsActive}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		u.Role = &role
	}
	return u
}

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the data of a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
