package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"gram-seva/internal/config"
)

// Service sends operational email to panchayat admins. Citizens are
// phone-only; the OTP code itself is never emailed.
type Service interface {
	SendNewIssueAlert(ctx context.Context, toEmail, adminName, citizenName, issueTitle, category string) error
	SendAdminWelcome(ctx context.Context, toEmail, adminName, username string) error
}

type service struct {
	client *resend.Client
	cfg    *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
	}
}

func (s *service) send(toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Gram Seva <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}
	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendNewIssueAlert(ctx context.Context, toEmail, adminName, citizenName, issueTitle, category string) error {
	html := fmt.Sprintf(
		"<p>Namaste %s,</p><p>%s reported a new %s issue: <strong>%s</strong>.</p><p>Please review it in the admin portal.</p>",
		adminName, citizenName, category, issueTitle,
	)
	return s.send(toEmail, "New issue reported: "+issueTitle, html)
}

func (s *service) SendAdminWelcome(ctx context.Context, toEmail, adminName, username string) error {
	html := fmt.Sprintf(
		"<p>Namaste %s,</p><p>An administrator account has been created for you on Gram Seva.</p><p>Your username is <strong>%s</strong>.</p>",
		adminName, username,
	)
	return s.send(toEmail, "Your Gram Seva administrator account", html)
}
