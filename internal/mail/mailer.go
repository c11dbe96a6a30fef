package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Message is a transactional email.
type Message struct {
	To      string
	From    string
	Subject string
	HTML    string
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ResendMailer sends email through the Resend API.
type ResendMailer struct {
	client *resend.Client
}

// Ensure ResendMailer implements Mailer
var _ Mailer = (*ResendMailer)(nil)

// NewResendMailer creates a mailer for the given API key.
func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

// Send delivers the message.
func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
