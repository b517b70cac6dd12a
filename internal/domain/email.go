package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// MeetingInvitationEmailData holds data for the meeting invitation email.
type MeetingInvitationEmailData struct {
	Email     string
	Name      string
	Title     string
	Date      string
	StartTime string
	EndTime   string
	Location  string
	Agenda    string
	Organizer string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendMeetingInvitation(ctx context.Context, data *MeetingInvitationEmailData) error
}
