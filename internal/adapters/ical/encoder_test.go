package ical

import (
	"bytes"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"orgcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func TestEncoder_Encode(t *testing.T) {
	events := []*domain.Event{
		{ID: "e1", Title: "Budget Review", Date: day, Time: "10:00", Location: "Hall A", Type: domain.EventTypeSeminar, IsPublic: true, CreatedAt: day, UpdatedAt: day},
		{ID: "e2", Title: "Open Day", Date: day, Time: "all day", Type: domain.EventTypeEvent, IsPublic: false, CreatedAt: day, UpdatedAt: day},
	}
	meetings := []*domain.Meeting{
		{ID: "m1", Title: "Board", Date: day, StartTime: "14:00", EndTime: "15:30", Agenda: "1. minutes", Status: domain.MeetingScheduled, CreatedAt: day, UpdatedAt: day},
	}

	out, err := NewEncoder("Org Calendar", nil).Encode(events, meetings)
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(bytes.NewReader(out))
	require.NoError(t, err)
	vevents := cal.Events()
	require.Len(t, vevents, 3)

	byUID := make(map[string]*ics.VEvent)
	for _, v := range vevents {
		byUID[v.Id()] = v
	}

	budget := byUID["event-e1@orgcalendar"]
	require.NotNil(t, budget)
	assert.Equal(t, "Budget Review", budget.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "Hall A", budget.GetProperty(ics.ComponentPropertyLocation).Value)
	assert.Equal(t, "20250115T100000Z", budget.GetProperty(ics.ComponentPropertyDtStart).Value)

	openDay := byUID["event-e2@orgcalendar"]
	require.NotNil(t, openDay)
	assert.Equal(t, "PRIVATE", openDay.GetProperty(ics.ComponentPropertyClass).Value)
	assert.Equal(t, "20250115", openDay.GetProperty(ics.ComponentPropertyDtStart).Value)

	board := byUID["meeting-m1@orgcalendar"]
	require.NotNil(t, board)
	assert.Equal(t, "20250115T153000Z", board.GetProperty(ics.ComponentPropertyDtEnd).Value)
	assert.Contains(t, board.GetProperty(ics.ComponentPropertyDescription).Value, "Agenda:")
	assert.Nil(t, board.GetProperty(ics.ComponentPropertyRrule), "recurrence is never emitted")
}

func TestEncoder_Empty(t *testing.T) {
	out, err := NewEncoder("", nil).Encode(nil, nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "BEGIN:VCALENDAR")
	assert.Contains(t, string(out), productID)
	assert.NotContains(t, string(out), "BEGIN:VEVENT")
}

func TestEncoder_At(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	e := &encoder{loc: loc}
	tests := []struct {
		clock string
		ok    bool
		hour  int
	}{
		{"10:00", true, 10},
		{"09:30:15", true, 9},
		{"3:04 PM", true, 15},
		{"", false, 0},
		{"noonish", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			got, ok := e.at(day, tt.clock)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.hour, got.Hour())
				assert.Equal(t, loc, got.Location())
			}
		})
	}
}

func TestMeetingStatus(t *testing.T) {
	assert.Equal(t, ics.ObjectStatusCancelled, meetingStatus(domain.MeetingCancelled))
	assert.Equal(t, ics.ObjectStatusConfirmed, meetingStatus(domain.MeetingScheduled))
	assert.Equal(t, ics.ObjectStatusConfirmed, meetingStatus(domain.MeetingOngoing))
	assert.Equal(t, ics.ObjectStatusConfirmed, meetingStatus(domain.MeetingCompleted))
}
