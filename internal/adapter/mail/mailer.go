// Package mail delivers the digest over an authenticated SMTP relay.
package mail

import (
	"fmt"
	"log/slog"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/civicupdates/civic-digest-service/internal/config"
)

// Mailer sends HTML mail through a configured SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// NewMailer builds a Mailer from the configured SMTP settings. With SMTPSSL
// unset the dialer negotiates STARTTLS when the relay offers it.
func NewMailer(cfg *config.Config, logger *slog.Logger) *Mailer {
	d := gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.SSL = cfg.SMTPSSL
	return &Mailer{
		dialer: d,
		from:   cfg.FromAddress,
		logger: logger,
	}
}

// Send delivers one HTML message to a single recipient.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send to %s: %w", to, err)
	}
	m.logger.Info("digest sent", "to", to)
	return nil
}

// SplitRecipients parses a comma-separated recipient list, trimming
// whitespace and dropping empty entries.
func SplitRecipients(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
