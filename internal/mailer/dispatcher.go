package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"contact-analytics-service/internal/models"
)

const (
	queueSize   = 64
	sendTimeout = 30 * time.Second
)

// Options configures the dispatcher
type Options struct {
	SiteName      string
	OperatorEmail string
	From          string
}

// Dispatcher is the best-effort outbound email boundary. Callers hand a
// message to the queue and return immediately; a single worker makes one
// delivery attempt per message and only logs failures. No retry policy.
type Dispatcher struct {
	provider Provider
	opts     Options
	queue    chan *Message
	done     chan struct{}
	logger   *logrus.Entry
}

// NewDispatcher creates a dispatcher and starts its worker
func NewDispatcher(provider Provider, opts Options, logger *logrus.Logger) *Dispatcher {
	d := &Dispatcher{
		provider: provider,
		opts:     opts,
		queue:    make(chan *Message, queueSize),
		done:     make(chan struct{}),
		logger:   logger.WithField("component", "mailer"),
	}
	go d.worker()
	return d
}

// NotifyOperator queues the new-submission notification to the operator
// inbox. No-op when no operator email is configured.
func (d *Dispatcher) NotifyOperator(contact *models.Contact) {
	if d.opts.OperatorEmail == "" {
		d.logger.Warn("CONTACT_EMAIL not configured, skipping operator notification")
		return
	}
	d.enqueue(&Message{
		To:       d.opts.OperatorEmail,
		Subject:  fmt.Sprintf("New Contact Form Submission: %s", contact.Subject),
		BodyHTML: operatorNotificationHTML(d.opts.SiteName, contact),
		ReplyTo:  contact.Email,
	})
}

// ConfirmToSubmitter queues the acknowledgment email to the submitter. An
// empty overrideMessage sends the generic thank-you; a non-empty one carries
// the operator's response text under a "Re:" subject.
func (d *Dispatcher) ConfirmToSubmitter(contact *models.Contact, overrideMessage string) {
	subject := fmt.Sprintf("Thank you for contacting %s", d.opts.SiteName)
	if overrideMessage != "" {
		subject = fmt.Sprintf("Re: %s", contact.Subject)
	}
	d.enqueue(&Message{
		To:       contact.Email,
		Subject:  subject,
		BodyHTML: confirmationHTML(d.opts.SiteName, contact, overrideMessage),
	})
}

// Close stops the worker after draining queued messages
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

// enqueue never blocks: when the queue is full the message is dropped and
// logged, keeping dispatch latency invisible to request handlers.
func (d *Dispatcher) enqueue(message *Message) {
	select {
	case d.queue <- message:
	default:
		d.logger.WithFields(logrus.Fields{
			"to":      message.To,
			"subject": message.Subject,
		}).Warn("Email queue full, dropping message")
	}
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for message := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.provider.Send(ctx, message)
		cancel()

		entry := d.logger.WithFields(logrus.Fields{
			"provider": d.provider.Name(),
			"to":       message.To,
			"subject":  message.Subject,
		})
		if err != nil {
			entry.WithError(err).Error("Failed to send email")
			continue
		}
		entry.Info("Email sent")
	}
}

// ProviderFromConfig picks the configured provider: SendGrid when an API key
// is present, SMTP when a host and username are set, otherwise log-only.
func ProviderFromConfig(sendGridAPIKey, smtpHost string, smtpPort int, smtpUsername, smtpPassword, from, fromName string, logger *logrus.Logger) Provider {
	if sendGridAPIKey != "" {
		return NewSendGridProvider(sendGridAPIKey, from, fromName)
	}
	if smtpHost != "" && smtpUsername != "" {
		return NewSMTPProvider(smtpHost, smtpPort, smtpUsername, smtpPassword, from, fromName)
	}
	return &logProvider{logger: logger}
}
