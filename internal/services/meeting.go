package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"orgcalendar/internal/domain"
	"orgcalendar/internal/policy"
)

type meetingService struct {
	meetingRepo    domain.MeetingRepository
	refs           refResolver
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewMeetingService creates a MeetingService. emailService may be nil, in
// which case no invitations are sent.
func NewMeetingService(meetingRepo domain.MeetingRepository, userRepo domain.UserRepository, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.MeetingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &meetingService{
		meetingRepo:    meetingRepo,
		refs:           refResolver{userRepo: userRepo},
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *meetingService) List(ctx context.Context, actor domain.Principal, params domain.MeetingListParams) ([]*domain.MeetingDetails, error) {
	if err := policy.RequireMeetings(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var ve domain.ValidationError
	q := domain.MeetingQuery{Dates: parseRange(&ve, params.StartDate, params.EndDate)}
	if params.Status != "" {
		q.Status = domain.MeetingStatus(params.Status)
		if !q.Status.Valid() {
			ve.Add("status", "Invalid meeting status")
		}
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	meetings, err := s.meetingRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return s.details(ctx, meetings...)
}

func (s *meetingService) Get(ctx context.Context, actor domain.Principal, id string) (*domain.MeetingDetails, error) {
	if err := policy.RequireMeetings(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meeting, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, meeting)
}

func (s *meetingService) Create(ctx context.Context, actor domain.Principal, in domain.MeetingInput) (*domain.MeetingDetails, error) {
	if err := policy.RequireWrite(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meeting := &domain.Meeting{
		Attendees:        []string{},
		Status:           domain.MeetingScheduled,
		RecurringPattern: domain.RecurNone,
		CreatedBy:        actor.ID,
	}
	if err := applyMeetingInput(meeting, in, true); err != nil {
		return nil, err
	}
	now := s.now()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}
	out, err := s.detail(ctx, meeting)
	if err != nil {
		return nil, err
	}
	s.invite(ctx, out)
	return out, nil
}

func (s *meetingService) Update(ctx context.Context, actor domain.Principal, id string, in domain.MeetingInput) (*domain.MeetingDetails, error) {
	if err := policy.RequireWrite(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	meeting, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyMeetingInput(meeting, in, false); err != nil {
		return nil, err
	}
	meeting.LastModifiedBy = actor.ID
	meeting.UpdatedAt = s.now()

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update meeting: %w", err)
	}
	return s.detail(ctx, meeting)
}

func (s *meetingService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := policy.RequireWrite(actor); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete meeting: %w", err)
	}
	return nil
}

func (s *meetingService) get(ctx context.Context, id string) (*domain.Meeting, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return meeting, nil
}

func (s *meetingService) detail(ctx context.Context, meeting *domain.Meeting) (*domain.MeetingDetails, error) {
	out, err := s.details(ctx, meeting)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (s *meetingService) details(ctx context.Context, meetings ...*domain.Meeting) ([]*domain.MeetingDetails, error) {
	var ids []string
	for _, m := range meetings {
		ids = append(ids, m.CreatedBy, m.LastModifiedBy)
		ids = append(ids, m.Attendees...)
	}
	refs, err := s.refs.resolve(ctx, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.MeetingDetails, len(meetings))
	for i, m := range meetings {
		attendees := make([]*domain.UserRef, 0, len(m.Attendees))
		for _, id := range m.Attendees {
			if ref, ok := refs[id]; ok {
				attendees = append(attendees, ref)
			}
		}
		out[i] = &domain.MeetingDetails{
			Meeting:        m,
			Attendees:      attendees,
			CreatedBy:      refs[m.CreatedBy],
			LastModifiedBy: refs[m.LastModifiedBy],
		}
	}
	return out, nil
}

// invite mails each resolved attendee. Failures are logged and dropped.
func (s *meetingService) invite(ctx context.Context, m *domain.MeetingDetails) {
	if s.emailService == nil {
		return
	}
	organizer := ""
	if m.CreatedBy != nil {
		organizer = m.CreatedBy.Name
	}
	for _, a := range m.Attendees {
		data := &domain.MeetingInvitationEmailData{
			Email:     a.Email,
			Name:      a.Name,
			Title:     m.Title,
			Date:      m.Date.Format(domain.DateLayout),
			StartTime: m.StartTime,
			EndTime:   m.EndTime,
			Location:  m.Location,
			Agenda:    m.Agenda,
			Organizer: organizer,
		}
		if err := s.emailService.SendMeetingInvitation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "meeting invitation not sent",
				slog.String("meeting_id", m.ID),
				slog.String("attendee_id", a.ID),
				slog.Any("error", err),
			)
		}
	}
}

// applyMeetingInput validates in and merges the supplied fields into m. When
// create is set the required fields must be present. m is untouched on error.
func applyMeetingInput(m *domain.Meeting, in domain.MeetingInput, create bool) error {
	var ve domain.ValidationError
	next := *m

	if title, ok := trimmed(in.Title); ok || create {
		if title == "" {
			if create {
				ve.Add("title", "Meeting title is required")
			} else {
				ve.Add("title", "Meeting title cannot be empty")
			}
		}
		next.Title = title
	}
	if raw, ok := trimmed(in.Date); ok || create {
		d, err := domain.ParseDate(raw)
		if err != nil {
			ve.Add("date", "Valid date is required")
		}
		next.Date = d
	}
	if t, ok := trimmed(in.StartTime); ok || create {
		if t == "" {
			ve.Add("startTime", "Start time is required")
		}
		next.StartTime = t
	}
	if t, ok := trimmed(in.EndTime); ok || create {
		if t == "" {
			ve.Add("endTime", "End time is required")
		}
		next.EndTime = t
	}
	if in.Status != nil {
		next.Status = domain.MeetingStatus(*in.Status)
		if !next.Status.Valid() {
			ve.Add("status", "Invalid meeting status")
		}
	}
	if in.RecurringPattern != nil {
		next.RecurringPattern = domain.RecurringPattern(*in.RecurringPattern)
		if !next.RecurringPattern.Valid() {
			ve.Add("recurringPattern", "Invalid recurring pattern")
		}
	}
	if in.Attendees != nil {
		attendees, ok := normalizeAttendees(*in.Attendees)
		if !ok {
			ve.Add("attendees", "Attendees must be valid user ids")
		}
		next.Attendees = attendees
	}
	if d, ok := trimmed(in.Description); ok {
		next.Description = d
	}
	if l, ok := trimmed(in.Location); ok {
		next.Location = l
	}
	if a, ok := trimmed(in.Agenda); ok {
		next.Agenda = a
	}
	if in.IsRecurring != nil {
		next.IsRecurring = *in.IsRecurring
	}

	if err := ve.Err(); err != nil {
		return err
	}
	*m = next
	return nil
}

// normalizeAttendees lowercases and dedupes ids, keeping first-seen order.
// ok is false when any id is not a UUID.
func normalizeAttendees(ids []string) ([]string, bool) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, false
		}
		s := id.String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, true
}
