package mail

import (
	"gopkg.in/gomail.v2"

	"cvtoaster-backend/internal/shared/telemetry"
)

// Sender delivers transactional email.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends HTML mail over SMTP.
type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// NewSMTPSender constructs an SMTPSender.
func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, User: user, Password: password, From: from}
}

// Send delivers a single HTML message.
func (s *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	return d.DialAndSend(m)
}

// LogSender logs mail instead of sending it. Used in dev when SMTP is not
// configured so auth flows stay usable locally.
type LogSender struct{}

// Send logs the message metadata.
func (LogSender) Send(to, subject, body string) error {
	telemetry.Info("mail.skipped", map[string]any{
		"to":      to,
		"subject": subject,
	})
	return nil
}

var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = LogSender{}
)
