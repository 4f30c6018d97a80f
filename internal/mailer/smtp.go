package mailer

import (
	"gopkg.in/gomail.v2"

	"github.com/certavo/certavo-backend/internal/config"
	"github.com/certavo/certavo-backend/internal/service"
)

// Ensure SMTP implements service.Sender
var _ service.Sender = (*SMTP)(nil)

// SMTP sends HTML mail through the configured outbound server. One attempt
// per message; the dispatcher owns failure handling.
type SMTP struct {
	cfg config.Config
}

func NewSMTP(cfg config.Config) *SMTP { return &SMTP{cfg: cfg} }

func (s *SMTP) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.MailFrom, s.cfg.MailFromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.MailServer, s.cfg.MailPort, s.cfg.MailUsername, s.cfg.MailPassword)
	d.SSL = s.cfg.MailSSL
	// STARTTLS is negotiated automatically on plain connections when the
	// server advertises it, which covers MAIL_STARTTLS=true.
	return d.DialAndSend(m)
}
