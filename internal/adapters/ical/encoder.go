// Package ical renders calendar entries as an RFC 5545 iCalendar feed.
package ical

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"orgcalendar/internal/domain"
)

const productID = "-//orgcalendar//calendar feed//EN"

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3:04 pm", "3:04pm"}

type encoder struct {
	loc  *time.Location
	name string
}

// NewEncoder returns a CalendarEncoder that interprets wall-clock times in loc.
// A nil loc means UTC.
func NewEncoder(name string, loc *time.Location) domain.CalendarEncoder {
	if loc == nil {
		loc = time.UTC
	}
	return &encoder{loc: loc, name: name}
}

func (e *encoder) Encode(events []*domain.Event, meetings []*domain.Meeting) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if e.name != "" {
		cal.SetXWRCalName(e.name)
	}

	for _, ev := range events {
		vev := cal.AddEvent("event-" + ev.ID + "@orgcalendar")
		stamp(vev, ev.CreatedAt, ev.UpdatedAt)
		vev.SetSummary(ev.Title)
		if ev.Description != "" {
			vev.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			vev.SetLocation(ev.Location)
		}
		if ev.IsPublic {
			vev.SetClass(ics.ClassificationPublic)
		} else {
			vev.SetClass(ics.ClassificationPrivate)
		}
		vev.SetProperty(ics.ComponentPropertyCategories, strings.ToUpper(string(ev.Type)))
		if start, ok := e.at(ev.Date, ev.Time); ok {
			vev.SetStartAt(start)
		} else {
			vev.SetAllDayStartAt(ev.Date)
			vev.SetAllDayEndAt(ev.Date.AddDate(0, 0, 1))
		}
	}

	for _, m := range meetings {
		vev := cal.AddEvent("meeting-" + m.ID + "@orgcalendar")
		stamp(vev, m.CreatedAt, m.UpdatedAt)
		vev.SetSummary(m.Title)
		desc := m.Description
		if m.Agenda != "" {
			if desc != "" {
				desc += "\n\n"
			}
			desc += "Agenda:\n" + m.Agenda
		}
		if desc != "" {
			vev.SetDescription(desc)
		}
		if m.Location != "" {
			vev.SetLocation(m.Location)
		}
		vev.SetClass(ics.ClassificationPrivate)
		vev.SetStatus(meetingStatus(m.Status))

		start, okStart := e.at(m.Date, m.StartTime)
		end, okEnd := e.at(m.Date, m.EndTime)
		switch {
		case okStart && okEnd && end.After(start):
			vev.SetStartAt(start)
			vev.SetEndAt(end)
		case okStart:
			vev.SetStartAt(start)
		default:
			vev.SetAllDayStartAt(m.Date)
			vev.SetAllDayEndAt(m.Date.AddDate(0, 0, 1))
		}
	}

	return []byte(cal.Serialize()), nil
}

func stamp(vev *ics.VEvent, created, updated time.Time) {
	vev.SetCreatedTime(created)
	vev.SetDtStampTime(updated)
	vev.SetModifiedAt(updated)
}

// at combines a calendar date with a wall-clock string. ok is false when the
// clock cannot be parsed.
func (e *encoder) at(date time.Time, clock string) (time.Time, bool) {
	clock = strings.TrimSpace(clock)
	for _, layout := range clockLayouts {
		if c, err := time.Parse(layout, clock); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), c.Second(), 0, e.loc), true
		}
	}
	return time.Time{}, false
}

func meetingStatus(s domain.MeetingStatus) ics.ObjectStatus {
	switch s {
	case domain.MeetingCancelled:
		return ics.ObjectStatusCancelled
	default:
		return ics.ObjectStatusConfirmed
	}
}
