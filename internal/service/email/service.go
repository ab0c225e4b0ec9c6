package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"nextalk-server/internal/config"
)

// Service delivers a notification by email to users with no registered
// delivery token, so tokenless recipients still hear about a broadcast.
type Service interface {
	SendNotificationEmail(ctx context.Context, toEmail, username, title, body, actionURL string) error
}

type service struct {
	client *resend.Client
	cfg    *config.Config
	tmpl   *template.Template
}

var notificationTemplate = template.Must(template.New("notification").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>{{.Title}}</h2>
  <p>Hi {{.Username}},</p>
  <p>{{.Body}}</p>
  {{if .ActionURL}}<p><a href="{{.ActionURL}}">View details</a></p>{{end}}
  <p style="color: #888; font-size: 12px;">You received this email because no browser is registered for push delivery. <a href="{{.AppURL}}">Open NexTalk</a> to enable notifications.</p>
</div>`))

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		cfg:    cfg,
		tmpl:   notificationTemplate,
	}
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, username, title, body, actionURL string) error {
	data := struct {
		Title     string
		Username  string
		Body      string
		ActionURL string
		AppURL    string
	}{
		Title:     title,
		Username:  username,
		Body:      body,
		ActionURL: actionURL,
		AppURL:    s.cfg.AppURL,
	}

	var html bytes.Buffer
	if err := s.tmpl.Execute(&html, data); err != nil {
		return fmt.Errorf("failed to render notification email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("NexTalk <%s>", s.cfg.FromEmail),
		To:      []string{toEmail},
		Html:    html.String(),
		Subject: title,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
