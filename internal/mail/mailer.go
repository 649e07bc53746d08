package mail

import (
	"fmt"

	"github.com/ecotrade/marketplace/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer relays contact-form submissions to the site operator's inbox.
type Mailer interface {
	SendContact(name, email, subject, message string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass),
		from:   cfg.EmailUser,
		to:     cfg.ContactEmail,
	}
}

func (m *smtpMailer) SendContact(name, email, subject, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Reply-To", email)
	msg.SetHeader("Subject", "Contact Form: "+subject)
	msg.SetBody("text/plain", fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", name, email, message))
	return m.dialer.DialAndSend(msg)
}
