package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPDispatcher delivers email through an SMTP relay.
type SMTPDispatcher struct {
	dialer *gomail.Dialer
	from   string
}

var _ Dispatcher = (*SMTPDispatcher)(nil)

func NewSMTPDispatcher(cfg SMTPConfig) *SMTPDispatcher {
	return &SMTPDispatcher{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (d *SMTPDispatcher) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := d.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mail: send to %s failed: %w", to, err)
	}
	return nil
}
