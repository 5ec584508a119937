package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTPProvider implements email sending via SMTP
type SMTPProvider struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
}

// NewSMTPProvider creates a new SMTP email provider
func NewSMTPProvider(host string, port int, username, password, from, fromName string) *SMTPProvider {
	return &SMTPProvider{
		host:     host,
		port:     fmt.Sprintf("%d", port),
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

// Send sends an email via SMTP
func (p *SMTPProvider) Send(_ context.Context, message *Message) error {
	from := p.from
	if p.fromName != "" {
		from = fmt.Sprintf("%s <%s>", p.fromName, p.from)
	}

	headers := map[string]string{
		"From":         from,
		"To":           message.To,
		"Subject":      message.Subject,
		"MIME-Version": "1.0",
	}
	if message.ReplyTo != "" {
		headers["Reply-To"] = message.ReplyTo
	}

	var body string
	if message.BodyHTML != "" {
		headers["Content-Type"] = "text/html; charset=utf-8"
		body = message.BodyHTML
	} else {
		headers["Content-Type"] = "text/plain; charset=utf-8"
		body = message.Body
	}

	var emailBuilder strings.Builder
	for k, v := range headers {
		emailBuilder.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	emailBuilder.WriteString("\r\n")
	emailBuilder.WriteString(body)

	auth := smtp.PlainAuth("", p.username, p.password, p.host)
	addr := net.JoinHostPort(p.host, p.port)

	if err := smtp.SendMail(addr, auth, p.from, []string{message.To}, []byte(emailBuilder.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// Name returns the provider name
func (p *SMTPProvider) Name() string {
	return "SMTP"
}
