// Package events publishes contact lifecycle events to NATS for downstream
// integrations. Publishing is strictly best-effort: the HTTP request path
// never blocks on or fails because of it.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"contact-analytics-service/internal/models"
)

// SubjectContactSubmitted is the subject for new contact submissions
const SubjectContactSubmitted = "contacts.submitted"

// Publisher publishes domain events to NATS
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS. The connection retries in the background so
// a broker outage at startup does not block the service.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("contact-analytics-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// contactSubmittedEvent is the published payload for a new submission
type contactSubmittedEvent struct {
	ContactID string    `json:"contactId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Budget    string    `json:"budget"`
	Tags      []string  `json:"tags"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublishContactSubmitted publishes a contacts.submitted event. Failures are
// logged and swallowed.
func (p *Publisher) PublishContactSubmitted(_ context.Context, contact *models.Contact) {
	payload := contactSubmittedEvent{
		ContactID: contact.ID.String(),
		Name:      contact.Name,
		Email:     contact.Email,
		Subject:   contact.Subject,
		Budget:    string(contact.Budget),
		Tags:      contact.Tags,
		Source:    string(contact.Source),
		CreatedAt: contact.CreatedAt,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.WithError(err).Warn("Failed to marshal contact event")
		return
	}

	if err := p.conn.Publish(SubjectContactSubmitted, data); err != nil {
		p.logger.WithError(err).Warn("Failed to publish contact event")
		return
	}

	p.logger.WithField("contact_id", payload.ContactID).Debug("Published contact event")
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
