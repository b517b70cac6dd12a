package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orgcalendar/internal/domain"
	"orgcalendar/internal/policy"
)

type eventService struct {
	eventRepo      domain.EventRepository
	refs           refResolver
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService creates an EventService backed by the given repositories.
func NewEventService(eventRepo domain.EventRepository, userRepo domain.UserRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		refs:           refResolver{userRepo: userRepo},
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) List(ctx context.Context, actor domain.Principal, params domain.EventListParams) ([]*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var ve domain.ValidationError
	q := domain.EventQuery{
		PublicOnly: policy.EventListFilter(actor).PublicOnly,
		Dates:      parseRange(&ve, params.StartDate, params.EndDate),
	}
	if params.Type != "" {
		q.Type = domain.EventType(params.Type)
		if !q.Type.Valid() {
			ve.Add("type", "Invalid event type")
		}
	}
	if err := ve.Err(); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return s.details(ctx, events...)
}

func (s *eventService) Get(ctx context.Context, actor domain.Principal, id string) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireEvent(actor, event); err != nil {
		return nil, err
	}
	return s.detail(ctx, event)
}

func (s *eventService) Create(ctx context.Context, actor domain.Principal, in domain.EventInput) (*domain.EventDetails, error) {
	if err := policy.RequireWrite(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event := &domain.Event{
		Type:      domain.EventTypeEvent,
		IsPublic:  true,
		CreatedBy: actor.ID,
	}
	if err := applyEventInput(event, in, true); err != nil {
		return nil, err
	}
	now := s.now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return s.detail(ctx, event)
}

func (s *eventService) Update(ctx context.Context, actor domain.Principal, id string, in domain.EventInput) (*domain.EventDetails, error) {
	if err := policy.RequireWrite(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEventInput(event, in, false); err != nil {
		return nil, err
	}
	event.LastModifiedBy = actor.ID
	event.UpdatedAt = s.now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return s.detail(ctx, event)
}

func (s *eventService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := policy.RequireWrite(actor); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) get(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) detail(ctx context.Context, event *domain.Event) (*domain.EventDetails, error) {
	out, err := s.details(ctx, event)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (s *eventService) details(ctx context.Context, events ...*domain.Event) ([]*domain.EventDetails, error) {
	ids := make([]string, 0, 2*len(events))
	for _, e := range events {
		ids = append(ids, e.CreatedBy, e.LastModifiedBy)
	}
	refs, err := s.refs.resolve(ctx, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.EventDetails, len(events))
	for i, e := range events {
		out[i] = &domain.EventDetails{
			Event:          e,
			CreatedBy:      refs[e.CreatedBy],
			LastModifiedBy: refs[e.LastModifiedBy],
		}
	}
	return out, nil
}

// applyEventInput validates in and merges the supplied fields into e. When
// create is set the required fields must be present. e is untouched on error.
func applyEventInput(e *domain.Event, in domain.EventInput, create bool) error {
	var ve domain.ValidationError
	next := *e

	if title, ok := trimmed(in.Title); ok || create {
		if title == "" {
			if create {
				ve.Add("title", "Event title is required")
			} else {
				ve.Add("title", "Event title cannot be empty")
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
	if t, ok := trimmed(in.Time); ok || create {
		if t == "" {
			ve.Add("time", "Time is required")
		}
		next.Time = t
	}
	if in.Type != nil {
		next.Type = domain.EventType(*in.Type)
		if !next.Type.Valid() {
			ve.Add("type", "Invalid event type")
		}
	}
	if d, ok := trimmed(in.Description); ok {
		next.Description = d
	}
	if l, ok := trimmed(in.Location); ok {
		next.Location = l
	}
	if in.IsPublic != nil {
		next.IsPublic = *in.IsPublic
	}

	if err := ve.Err(); err != nil {
		return err
	}
	*e = next
	return nil
}
