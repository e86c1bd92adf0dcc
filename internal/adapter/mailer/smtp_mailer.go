package mailer

import (
	"context"
	"crypto/tls"

	"aptilab/internal/config"
	"aptilab/internal/domain"

	"gopkg.in/mail.v2"
)

// Sender delivers a composed message.
type Sender interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPMailer sends HTML mail through an authenticated SMTP relay.
type SMTPMailer struct {
	from   string
	sender Sender
}

var _ domain.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer uses implicit TLS on port 465 and STARTTLS otherwise.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	d := mail.NewDialer(cfg.Host, port, cfg.User, cfg.Password)
	d.SSL = port == 465
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	return NewSMTPMailerWithSender(cfg.From, d)
}

func NewSMTPMailerWithSender(from string, sender Sender) *SMTPMailer {
	return &SMTPMailer{from: from, sender: sender}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() { done <- m.sender.DialAndSend(msg) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
