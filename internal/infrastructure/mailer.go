package infrastructure

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"project_karcis/internal/config"
	"project_karcis/internal/entities"
)

// SMTPMailer delivers transactional mail through the configured SMTP relay.
type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to entities.User, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.FromEmail); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	recipient := fmt.Sprintf("%s %s %s", to.Title, to.FirstName, to.LastName)
	if err := msg.AddToFormat(recipient, to.Email); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	client, err := gomail.NewClient(m.cfg.SMTPHost,
		gomail.WithPort(m.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.SMTPUsername),
		gomail.WithPassword(m.cfg.SMTPPassword),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// ForgotPasswordTemplate renders the OTP mail body.
func ForgotPasswordTemplate(code string) string {
	return fmt.Sprintf(`<html><body>
<p>We received a request to reset your password.</p>
<p>Your one-time code is: <strong>%s</strong></p>
<p>The code expires in 5 minutes. If you did not request a reset, ignore this email.</p>
</body></html>`, code)
}
