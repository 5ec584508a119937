package mailer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-analytics-service/internal/models"
)

// stubProvider captures sent messages and optionally fails every send
type stubProvider struct {
	mu      sync.Mutex
	sent    []*Message
	sendErr error
}

func (p *stubProvider) Send(_ context.Context, message *Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sendErr != nil {
		return p.sendErr
	}
	p.sent = append(p.sent, message)
	return nil
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) messages() []*Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Message(nil), p.sent...)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testContact() *models.Contact {
	return &models.Contact{
		Name:    "Ana Gomez",
		Email:   "ana@example.com",
		Subject: "Mobile app inquiry",
		Message: "We need an app",
		Budget:  models.BudgetDiscuss,
	}
}

func TestNotifyOperator(t *testing.T) {
	provider := &stubProvider{}
	d := NewDispatcher(provider, Options{
		SiteName:      "TekLegion",
		OperatorEmail: "ops@example.com",
		From:          "contact@example.com",
	}, quietLogger())

	d.NotifyOperator(testContact())
	d.Close()

	sent := provider.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ops@example.com", sent[0].To)
	assert.Equal(t, "New Contact Form Submission: Mobile app inquiry", sent[0].Subject)
	assert.Equal(t, "ana@example.com", sent[0].ReplyTo, "replies go straight to the submitter")
	assert.Contains(t, sent[0].BodyHTML, "Ana Gomez")
}

func TestNotifyOperatorSkippedWithoutRecipient(t *testing.T) {
	provider := &stubProvider{}
	d := NewDispatcher(provider, Options{SiteName: "TekLegion"}, quietLogger())

	d.NotifyOperator(testContact())
	d.Close()

	assert.Empty(t, provider.messages())
}

func TestConfirmToSubmitterGeneric(t *testing.T) {
	provider := &stubProvider{}
	d := NewDispatcher(provider, Options{SiteName: "TekLegion"}, quietLogger())

	d.ConfirmToSubmitter(testContact(), "")
	d.Close()

	sent := provider.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@example.com", sent[0].To)
	assert.Equal(t, "Thank you for contacting TekLegion", sent[0].Subject)
}

func TestConfirmToSubmitterWithResponse(t *testing.T) {
	provider := &stubProvider{}
	d := NewDispatcher(provider, Options{SiteName: "TekLegion"}, quietLogger())

	d.ConfirmToSubmitter(testContact(), "Here is our quote.")
	d.Close()

	sent := provider.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Re: Mobile app inquiry", sent[0].Subject)
	assert.Contains(t, sent[0].BodyHTML, "Here is our quote.")
}

func TestSendFailureIsSwallowed(t *testing.T) {
	provider := &stubProvider{sendErr: errors.New("smtp down")}
	d := NewDispatcher(provider, Options{SiteName: "TekLegion", OperatorEmail: "ops@example.com"}, quietLogger())

	// must not panic or block the caller
	d.NotifyOperator(testContact())
	d.ConfirmToSubmitter(testContact(), "")
	d.Close()

	assert.Empty(t, provider.messages())
}

func TestProviderFromConfig(t *testing.T) {
	logger := quietLogger()

	assert.Equal(t, "SendGrid", ProviderFromConfig("sg-key", "", 0, "", "", "from@example.com", "Site", logger).Name())
	assert.Equal(t, "SMTP", ProviderFromConfig("", "smtp.example.com", 587, "user", "pass", "from@example.com", "Site", logger).Name())
	assert.Equal(t, "log", ProviderFromConfig("", "", 0, "", "", "from@example.com", "Site", logger).Name())
}
