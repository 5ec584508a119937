package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridProvider implements email sending via the SendGrid API
type SendGridProvider struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendGridProvider creates a new SendGrid email provider
func NewSendGridProvider(apiKey, from, fromName string) *SendGridProvider {
	return &SendGridProvider{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

// Send sends an email via SendGrid
func (p *SendGridProvider) Send(_ context.Context, message *Message) error {
	fromEmail := mail.NewEmail(p.fromName, p.from)
	toEmail := mail.NewEmail("", message.To)

	sgMessage := mail.NewSingleEmail(fromEmail, message.Subject, toEmail, message.Body, message.BodyHTML)
	if message.ReplyTo != "" {
		sgMessage.SetReplyTo(mail.NewEmail("", message.ReplyTo))
	}

	response, err := p.client.Send(sgMessage)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// Name returns the provider name
func (p *SendGridProvider) Name() string {
	return "SendGrid"
}
