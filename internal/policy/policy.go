// Package policy is the single authorization table for events, meetings and
// user records. Every function is pure: no I/O, no clock.
//
// Secretary and convenor are equivalent everywhere; nothing here tells them apart.
package policy

import "orgcalendar/internal/domain"

// Denial reasons returned to callers.
const (
	ReasonWriteRole       = "access denied: secretary or convenor role required"
	ReasonMemberRole      = "access denied: member, secretary or convenor role required"
	ReasonPrivateEvent    = "access denied to this event"
	ReasonUpdateUser      = "not authorized to update this user"
	ReasonPrivilegedField = "not authorized to change role or active status"
)

func isOfficer(r domain.Role) bool {
	return r == domain.RoleSecretary || r == domain.RoleConvenor
}

// EventVisibility is the role-derived part of an event list query.
type EventVisibility struct {
	PublicOnly bool
}

// EventListFilter returns the filter a principal's event listing is restricted by.
// Only the user role is limited to public events.
func EventListFilter(p domain.Principal) EventVisibility {
	return EventVisibility{PublicOnly: p.Role == domain.RoleUser}
}

// CanViewEvent reports whether p may read e.
func CanViewEvent(p domain.Principal, e *domain.Event) bool {
	return !(p.Role == domain.RoleUser && !e.IsPublic)
}

// CanViewMeetings reports whether p may read the meeting collection at all.
func CanViewMeetings(p domain.Principal) bool {
	return p.Role == domain.RoleMember || isOfficer(p.Role)
}

// CanWrite reports whether p may create, update or delete events and meetings.
func CanWrite(p domain.Principal) bool {
	return isOfficer(p.Role)
}

// CanListUsers reports whether p may list every user record.
func CanListUsers(p domain.Principal) bool {
	return isOfficer(p.Role)
}

// CanUpdateUser reports whether actor may apply fields to the record targetID.
// Owners may change their own non-privileged fields; officers may change anything.
func CanUpdateUser(actor domain.Principal, targetID string, fields domain.UserUpdate) bool {
	if isOfficer(actor.Role) {
		return true
	}
	return actor.ID == targetID && !fields.Privileged()
}

// RequireWrite returns an access error unless p may write events and meetings.
func RequireWrite(p domain.Principal) error {
	if !CanWrite(p) {
		return &domain.AccessError{Reason: ReasonWriteRole}
	}
	return nil
}

// RequireMeetings returns an access error unless p may read meetings.
func RequireMeetings(p domain.Principal) error {
	if !CanViewMeetings(p) {
		return &domain.AccessError{Reason: ReasonMemberRole}
	}
	return nil
}

// RequireEvent returns an access error unless p may read e.
func RequireEvent(p domain.Principal, e *domain.Event) error {
	if !CanViewEvent(p, e) {
		return &domain.AccessError{Reason: ReasonPrivateEvent}
	}
	return nil
}

// RequireListUsers returns an access error unless p may list all users.
func RequireListUsers(p domain.Principal) error {
	if !CanListUsers(p) {
		return &domain.AccessError{Reason: ReasonWriteRole}
	}
	return nil
}

// RequireUserUpdate returns an access error unless CanUpdateUser allows the
// update. The reason tells a non-officer owner apart from a stranger.
func RequireUserUpdate(actor domain.Principal, targetID string, fields domain.UserUpdate) error {
	if CanUpdateUser(actor, targetID, fields) {
		return nil
	}
	if actor.ID != targetID {
		return &domain.AccessError{Reason: ReasonUpdateUser}
	}
	return &domain.AccessError{Reason: ReasonPrivilegedField}
}
