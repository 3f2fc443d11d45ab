package mailer

import (
	gomail "gopkg.in/gomail.v2"
)

// SMTPTransport sends mail over SMTP with STARTTLS via gomail.
type SMTPTransport struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPTransport(host string, port int, username, password, from string) *SMTPTransport {
	if from == "" {
		from = username
	}
	return &SMTPTransport{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (t *SMTPTransport) Send(m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", t.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)
	return t.dialer.DialAndSend(msg)
}
