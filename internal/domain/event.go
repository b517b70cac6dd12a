package domain

import (
	"context"
	"time"
)

// EventType classifies an event.
type EventType string

const (
	EventTypeEvent      EventType = "event"
	EventTypeWorkshop   EventType = "workshop"
	EventTypeSeminar    EventType = "seminar"
	EventTypeConference EventType = "conference"
	EventTypeOther      EventType = "other"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeEvent, EventTypeWorkshop, EventTypeSeminar, EventTypeConference, EventTypeOther:
		return true
	}
	return false
}

// Event is a public announcement on the calendar.
// Private events (IsPublic false) are hidden from the user role.
// swagger:model Event
type Event struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`
	Location       string    `json:"location,omitempty"`
	Type           EventType `json:"type"`
	IsPublic       bool      `json:"isPublic"`
	CreatedBy      string    `json:"-"`
	LastModifiedBy string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EventDetails is an event with its user references resolved.
// swagger:model EventDetails
type EventDetails struct {
	*Event
	CreatedBy      *UserRef `json:"createdBy"`
	LastModifiedBy *UserRef `json:"lastModifiedBy"`
}

// EventInput carries event fields from a create or update request. Nil
// fields were not supplied.
type EventInput struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Location    *string
	Type        *string
	IsPublic    *bool
}

// EventListParams are the raw list filters supplied by the caller.
type EventListParams struct {
	StartDate string
	EndDate   string
	Type      string
}

// EventQuery is the store-level filter for listing events.
type EventQuery struct {
	PublicOnly bool
	Dates      DateRange
	Type       EventType
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, q EventQuery) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService is the access layer for events.
type EventService interface {
	List(ctx context.Context, actor Principal, params EventListParams) ([]*EventDetails, error)
	Get(ctx context.Context, actor Principal, id string) (*EventDetails, error)
	Create(ctx context.Context, actor Principal, in EventInput) (*EventDetails, error)
	Update(ctx context.Context, actor Principal, id string, in EventInput) (*EventDetails, error)
	Delete(ctx context.Context, actor Principal, id string) error
}
