package mail

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/notification"
)

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg notification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(m.build(msg))
}

func (m *SMTPMailer) build(msg notification.Message) *gomail.Message {
	g := gomail.NewMessage()
	g.SetHeader("From", m.from)
	g.SetHeader("To", msg.To...)
	g.SetHeader("Subject", msg.Subject)
	g.SetBody("text/plain", msg.Body)
	return g
}

var _ notification.Mailer = (*SMTPMailer)(nil)
