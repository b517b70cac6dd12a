package services

import (
	"context"
	"fmt"
	"log/slog"

	"orgcalendar/internal/adapters/email"
	"orgcalendar/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendWelcome sends the welcome email to a newly registered user.
func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	return s.send(ctx, email.TemplateWelcome, data.Email, data)
}

// SendMeetingInvitation tells an attendee about a meeting they were added to.
func (s *emailService) SendMeetingInvitation(ctx context.Context, data *domain.MeetingInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("meeting invitation data is nil")
	}
	return s.send(ctx, email.TemplateMeetingInvitation, data.Email, data)
}

func (s *emailService) send(ctx context.Context, template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.InfoContext(ctx, "email sent", slog.String("template", template), slog.String("to", to))
	return nil
}
