package util

import (
	"fmt"
	"html"
	"log/slog"

	"github.com/sunthewhat/certificate-automation/type/shared"
	"gopkg.in/gomail.v2"
)

// Mailer delivers certificate view links over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg shared.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

func (m *Mailer) SendLink(to string, name string, course string, link string) error {
	msg := m.buildLinkMessage(to, name, course, link)

	if err := m.dialer.DialAndSend(msg); err != nil {
		slog.Error("SendLink DialAndSend failed", "error", err, "to", to)
		return fmt.Errorf("failed to send certificate mail: %w", err)
	}

	slog.Info("Certificate link mailed", "to", to, "course", course)
	return nil
}

func (m *Mailer) buildLinkMessage(to string, name string, course string, link string) *gomail.Message {
	msg := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your certificate for %s", course))
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Hello %s,</p><p>Your certificate for <b>%s</b> is ready.</p><p><a href="%s">View certificate</a></p>`,
		html.EscapeString(name),
		html.EscapeString(course),
		html.EscapeString(link),
	))
	return msg
}
