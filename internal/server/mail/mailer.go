// Package mail delivers account emails (activation codes, password
// recovery links) over SMTP.
package mail

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/akulikov/boardd/internal/logging"
	"github.com/akulikov/boardd/internal/server/config"
)

type Mailer interface {
	SendActivationCode(ctx context.Context, to string, code string) error
	SendRecoverLink(ctx context.Context, to string, link string) error
}

// SMTPMailer sends through a plain SMTP relay. When the server runs
// without SMTP credentials the mailer logs the message instead of
// failing, so local setups work without a relay.
type SMTPMailer struct {
	config *config.Config
	logger logging.Logger
	send   func(m *gomail.Message) error
}

func NewSMTPMailer(cfg *config.Config, logger logging.Logger) *SMTPMailer {
	m := &SMTPMailer{config: cfg, logger: logger}
	m.send = func(msg *gomail.Message) error {
		d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		return d.DialAndSend(msg)
	}
	return m
}

func (m *SMTPMailer) SendActivationCode(ctx context.Context, to string, code string) error {
	body := fmt.Sprintf(`<p>Your activation code is:</p>
<div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">%s</div>
<p>Enter it on the activation page to finish signing up.</p>`, code)
	return m.deliver(ctx, to, "Account activation", body)
}

func (m *SMTPMailer) SendRecoverLink(ctx context.Context, to string, link string) error {
	body := fmt.Sprintf(`<p>A password reset was requested for your account.</p>
<p><a href="%s">Reset your password</a></p>
<p>If you did not request this, ignore this message.</p>`, link)
	return m.deliver(ctx, to, "Password recovery", body)
}

func (m *SMTPMailer) deliver(ctx context.Context, to string, subject string, body string) error {
	if m.config.SMTPHost == "" || m.config.MailFrom == "" {
		m.logger.Warn(ctx, "smtp not configured, skipping email", "to", to, "subject", subject)
		return nil
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info(ctx, "email sent", "to", to, "subject", subject)
	return nil
}
