// Package mailer sends transactional account emails through SendGrid. Without
// an API key it degrades to a logged no-op; delivery failures are logged and
// never surfaced to the request that triggered them.
package mailer

import (
	"fmt"
	"log/slog"

	"github.com/burakserin/taskvault/internal/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Mailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

func New(cfg *config.Config) *Mailer {
	if cfg.SendGridAPIKey == "" {
		slog.Info("mailer disabled, no SENDGRID_API_KEY configured")
		return &Mailer{}
	}
	return &Mailer{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:   mail.NewEmail("TaskVault", cfg.MailFrom),
	}
}

// Enabled reports whether a provider credential was configured.
func (m *Mailer) Enabled() bool {
	return m.client != nil
}

// SendWelcomeEmail fires on account creation. Fire-and-forget.
func (m *Mailer) SendWelcomeEmail(email, name string) {
	m.send(email, name,
		"Welcome to TaskVault",
		fmt.Sprintf("Welcome to the app, %s.", name))
}

// SendAccountCancellationEmail fires on account deletion. Fire-and-forget.
func (m *Mailer) SendAccountCancellationEmail(email, name string) {
	m.send(email, name,
		"Sorry to see you go",
		fmt.Sprintf("Goodbye %s, is there anything we could have done to keep you?", name))
}

func (m *Mailer) send(email, name, subject, body string) {
	if !m.Enabled() {
		return
	}

	msg := mail.NewSingleEmail(m.from, subject, mail.NewEmail(name, email), body, "")
	go func() {
		resp, err := m.client.Send(msg)
		if err != nil {
			slog.Error("mail send failed", "subject", subject, "error", err)
			return
		}
		if resp.StatusCode >= 400 {
			slog.Error("mail send rejected", "subject", subject, "status", resp.StatusCode)
		}
	}()
}
