package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Message represents an email to be sent
type Message struct {
	To       string
	Subject  string
	Body     string
	BodyHTML string
	ReplyTo  string
}

// Provider sends a single email message
type Provider interface {
	Send(ctx context.Context, message *Message) error
	Name() string
}

// logProvider stands in when no email provider is configured: it logs what
// would have been sent and reports success.
type logProvider struct {
	logger *logrus.Logger
}

func (p *logProvider) Send(_ context.Context, message *Message) error {
	p.logger.WithFields(logrus.Fields{
		"to":      message.To,
		"subject": message.Subject,
	}).Info("Email provider not configured, message not sent")
	return nil
}

func (p *logProvider) Name() string {
	return "log"
}
