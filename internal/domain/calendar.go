package domain

import "context"

// CalendarEncoder renders events and meetings as an iCalendar document.
type CalendarEncoder interface {
	Encode(events []*Event, meetings []*Meeting) ([]byte, error)
}

// CalendarParams bound a calendar export by date.
type CalendarParams struct {
	StartDate string
	EndDate   string
}

// CalendarService exports the calendar entries visible to a principal.
type CalendarService interface {
	Export(ctx context.Context, actor Principal, params CalendarParams) ([]byte, error)
}
