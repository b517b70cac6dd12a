package services

import (
	"context"
	"fmt"
	"time"

	"orgcalendar/internal/domain"
	"orgcalendar/internal/policy"
)

type calendarService struct {
	eventRepo      domain.EventRepository
	meetingRepo    domain.MeetingRepository
	encoder        domain.CalendarEncoder
	contextTimeout time.Duration
}

// NewCalendarService creates a CalendarService exporting through encoder.
func NewCalendarService(eventRepo domain.EventRepository, meetingRepo domain.MeetingRepository, encoder domain.CalendarEncoder, timeout time.Duration) domain.CalendarService {
	return &calendarService{
		eventRepo:      eventRepo,
		meetingRepo:    meetingRepo,
		encoder:        encoder,
		contextTimeout: timeout,
	}
}

// Export renders the events actor may see and, for meeting readers, every
// meeting that is not cancelled.
func (s *calendarService) Export(ctx context.Context, actor domain.Principal, params domain.CalendarParams) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var ve domain.ValidationError
	dates := parseRange(&ve, params.StartDate, params.EndDate)
	if err := ve.Err(); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.List(ctx, domain.EventQuery{
		PublicOnly: policy.EventListFilter(actor).PublicOnly,
		Dates:      dates,
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	var meetings []*domain.Meeting
	if policy.CanViewMeetings(actor) {
		meetings, err = s.meetingRepo.List(ctx, domain.MeetingQuery{
			Dates:         dates,
			ExcludeStatus: domain.MeetingCancelled,
		})
		if err != nil {
			return nil, fmt.Errorf("list meetings: %w", err)
		}
	}

	out, err := s.encoder.Encode(events, meetings)
	if err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return out, nil
}
