package email

import (
	"context"

	"github.com/samber/oops"
	mail "github.com/wneessen/go-mail"
)

// SMTPSender delivers mail over authenticated SMTP.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) Result {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return Result{Err: oops.Code("EMAIL_FROM_INVALID").Wrap(err)}
	}
	if err := m.To(msg.To); err != nil {
		return Result{Err: oops.Code("EMAIL_TO_INVALID").Wrap(err)}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
	)
	if err != nil {
		return Result{Err: oops.Code("EMAIL_CLIENT_FAILED").Wrap(err)}
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return Result{Err: oops.Code("EMAIL_SEND_FAILED").Wrap(err)}
	}

	return Result{Success: true}
}
