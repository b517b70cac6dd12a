package domain

import (
	"context"
	"time"
)

// MeetingStatus is the lifecycle state of a meeting.
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingOngoing   MeetingStatus = "ongoing"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingScheduled, MeetingOngoing, MeetingCompleted, MeetingCancelled:
		return true
	}
	return false
}

// RecurringPattern is stored with a meeting but never expanded.
type RecurringPattern string

const (
	RecurDaily   RecurringPattern = "daily"
	RecurWeekly  RecurringPattern = "weekly"
	RecurMonthly RecurringPattern = "monthly"
	RecurNone    RecurringPattern = "none"
)

// Valid reports whether p is a known pattern.
func (p RecurringPattern) Valid() bool {
	switch p {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurNone:
		return true
	}
	return false
}

// Meeting is an internal, attendee-scoped calendar entry. Meetings are never
// visible to the user role.
// swagger:model Meeting
type Meeting struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Date             time.Time        `json:"date"`
	StartTime        string           `json:"startTime"`
	EndTime          string           `json:"endTime"`
	Location         string           `json:"location,omitempty"`
	Agenda           string           `json:"agenda,omitempty"`
	Attendees        []string         `json:"-"`
	Status           MeetingStatus    `json:"status"`
	IsRecurring      bool             `json:"isRecurring"`
	RecurringPattern RecurringPattern `json:"recurringPattern"`
	CreatedBy        string           `json:"-"`
	LastModifiedBy   string           `json:"-"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// MeetingDetails is a meeting with attendees and user references resolved.
// swagger:model MeetingDetails
type MeetingDetails struct {
	*Meeting
	Attendees      []*UserRef `json:"attendees"`
	CreatedBy      *UserRef   `json:"createdBy"`
	LastModifiedBy *UserRef   `json:"lastModifiedBy"`
}

// MeetingInput carries meeting fields from a create or update request. Nil
// fields were not supplied.
type MeetingInput struct {
	Title            *string
	Description      *string
	Date             *string
	StartTime        *string
	EndTime          *string
	Location         *string
	Agenda           *string
	Attendees        *[]string
	Status           *string
	IsRecurring      *bool
	RecurringPattern *string
}

// MeetingListParams are the raw list filters supplied by the caller.
type MeetingListParams struct {
	StartDate string
	EndDate   string
	Status    string
}

// MeetingQuery is the store-level filter for listing meetings.
type MeetingQuery struct {
	Dates         DateRange
	Status        MeetingStatus
	ExcludeStatus MeetingStatus
}

// MeetingRepository defines the interface for meeting storage.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *Meeting) error
	GetByID(ctx context.Context, id string) (*Meeting, error)
	List(ctx context.Context, q MeetingQuery) ([]*Meeting, error)
	Update(ctx context.Context, meeting *Meeting) error
	Delete(ctx context.Context, id string) error
}

// MeetingService is the access layer for meetings.
type MeetingService interface {
	List(ctx context.Context, actor Principal, params MeetingListParams) ([]*MeetingDetails, error)
	Get(ctx context.Context, actor Principal, id string) (*MeetingDetails, error)
	Create(ctx context.Context, actor Principal, in MeetingInput) (*MeetingDetails, error)
	Update(ctx context.Context, actor Principal, id string, in MeetingInput) (*MeetingDetails, error)
	Delete(ctx context.Context, actor Principal, id string) error
}
