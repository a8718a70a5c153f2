package notifications

import (
	"fmt"
	"net/smtp"

	"github.com/printcraft/printshop-backend/pkg/config"
)

// EmailSender defines the contract for sending transactional email.
type EmailSender interface {
	Send(to, subject, html string) error
}

// NopSender implements EmailSender without performing any action. Used when
// SMTP delivery is disabled.
type NopSender struct{}

// Send implements EmailSender.
func (NopSender) Send(string, string, string) error { return nil }

// SMTPSender delivers email through a plain SMTP relay.
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender builds a sender from the SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address required")
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
	}, nil
}

// Send delivers a single HTML email.
func (s *SMTPSender) Send(to, subject, html string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", s.from, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			html,
	)
	return smtp.SendMail(s.addr, s.auth, s.from, []string{to}, msg)
}

// InMemorySender records messages for tests.
type InMemorySender struct {
	Outbox []Email
}

// Email represents a single message captured by InMemorySender.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Send records the email in memory.
func (m *InMemorySender) Send(to, subject, html string) error {
	m.Outbox = append(m.Outbox, Email{To: to, Subject: subject, HTML: html})
	return nil
}
