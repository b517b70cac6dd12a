package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"orgcalendar/internal/domain"
)

const meetingColumns = `id, title, description, date, start_time, end_time, location, agenda, attendees, status, is_recurring, recurring_pattern, created_by, last_modified_by, created_at, updated_at`

type meetingRepository struct {
	DB *sql.DB
}

func NewMeetingRepository(db *sql.DB) domain.MeetingRepository {
	return &meetingRepository{DB: db}
}

func scanMeeting(s scanner) (*domain.Meeting, error) {
	m := &domain.Meeting{}
	var attendees []string
	var modifiedBy sql.NullString
	err := s.Scan(
		&m.ID, &m.Title, &m.Description, &m.Date, &m.StartTime, &m.EndTime, &m.Location, &m.Agenda,
		pq.Array(&attendees), &m.Status, &m.IsRecurring, &m.RecurringPattern,
		&m.CreatedBy, &modifiedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if attendees == nil {
		attendees = []string{}
	}
	m.Attendees = attendees
	m.LastModifiedBy = modifiedBy.String
	return m, nil
}

func attendeeArray(ids []string) any {
	if ids == nil {
		ids = []string{}
	}
	return pq.Array(ids)
}

func (r *meetingRepository) Create(ctx context.Context, m *domain.Meeting) error {
	query := `
		INSERT INTO meetings (title, description, date, start_time, end_time, location, agenda, attendees,
			status, is_recurring, recurring_pattern, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		m.Title, m.Description, m.Date, m.StartTime, m.EndTime, m.Location, m.Agenda, attendeeArray(m.Attendees),
		m.Status, m.IsRecurring, m.RecurringPattern, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
}

func (r *meetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`
	m, err := scanMeeting(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *meetingRepository) List(ctx context.Context, q domain.MeetingQuery) ([]*domain.Meeting, error) {
	var conds []string
	var args []any
	if q.Dates.From != nil {
		args = append(args, *q.Dates.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if q.Dates.To != nil {
		args = append(args, *q.Dates.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.ExcludeStatus != "" {
		args = append(args, q.ExcludeStatus)
		conds = append(conds, fmt.Sprintf("status <> $%d", len(args)))
	}

	query := `SELECT ` + meetingColumns + ` FROM meetings`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY date ASC, start_time ASC, created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	meetings := make([]*domain.Meeting, 0)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (r *meetingRepository) Update(ctx context.Context, m *domain.Meeting) error {
	if !validID(m.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE meetings
		SET title = $2, description = $3, date = $4, start_time = $5, end_time = $6, location = $7,
			agenda = $8, attendees = $9, status = $10, is_recurring = $11, recurring_pattern = $12,
			last_modified_by = $13, updated_at = $14
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query,
		m.ID, m.Title, m.Description, m.Date, m.StartTime, m.EndTime, m.Location,
		m.Agenda, attendeeArray(m.Attendees), m.Status, m.IsRecurring, m.RecurringPattern,
		nullString(m.LastModifiedBy), m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *meetingRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}
