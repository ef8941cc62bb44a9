package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/sendgrid"
)

// Mailer is the outbound email channel used by signup and password reset.
type Mailer interface {
	Send(ctx context.Context, subject, recipient, body string) error
}

type sendgridMailer struct {
	client sendgrid.Client
}

func NewSendGridMailer(client sendgrid.Client) Mailer {
	return &sendgridMailer{client: client}
}

func (m *sendgridMailer) Send(ctx context.Context, subject, recipient, body string) error {
	return m.client.Send(ctx, sendgrid.Message{To: recipient, Subject: subject, Text: body})
}

// plainSender matches the SES client.
type plainSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type sesMailer struct {
	client plainSender
}

func NewSESMailer(client plainSender) Mailer {
	return &sesMailer{client: client}
}

func (m *sesMailer) Send(ctx context.Context, subject, recipient, body string) error {
	return m.client.Send(ctx, recipient, subject, body)
}

// logMailer only logs; it is the development default.
type logMailer struct {
	log *logger.Logger
}

func NewLogMailer(baseLog *logger.Logger) Mailer {
	return &logMailer{log: baseLog.With("service", "LogMailer")}
}

func (m *logMailer) Send(_ context.Context, subject, recipient, body string) error {
	if strings.TrimSpace(recipient) == "" {
		return fmt.Errorf("mailer: recipient required")
	}
	m.log.Info("email suppressed (log provider)", "subject", subject, "recipient_email", recipient, "body_len", len(body))
	return nil
}
