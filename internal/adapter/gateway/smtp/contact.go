// Package smtp delivers contact-form messages as plain-text email.
package smtp

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	from   string
	to     string
	sender sender
}

func NewMailer(host string, port int, username, password, from, to string) *Mailer {
	return &Mailer{
		from:   from,
		to:     to,
		sender: gomail.NewDialer(host, port, username, password),
	}
}

// SendContact mails msg to the site inbox with the submitter as Reply-To.
func (m *Mailer) SendContact(ctx context.Context, msg entity.ContactMessage) error {
	const op = "adapter.gateway.smtp.Mailer.SendContact"

	email := newMessage(m.from, m.to, msg)

	done := make(chan error, 1)
	go func() {
		done <- m.sender.DialAndSend(email)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%s: %w: %v", op, entity.ErrUpstream, err)
		}
		return nil
	}
}

func newMessage(from, to string, msg entity.ContactMessage) *gomail.Message {
	email := gomail.NewMessage()
	email.SetHeader("From", from)
	email.SetHeader("To", to)
	email.SetAddressHeader("Reply-To", msg.Email, msg.Name)
	email.SetHeader("Subject", msg.Subject)

	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\n", msg.Name)
	fmt.Fprintf(&body, "Email: %s\n\n", msg.Email)
	body.WriteString(msg.Message)
	body.WriteString("\n")

	email.SetBody("text/plain", body.String())

	return email
}
