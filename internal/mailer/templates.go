package mailer

import (
	"fmt"
	"html"
	"strings"

	"contact-analytics-service/internal/models"
)

// operatorNotificationHTML renders the new-submission notification sent to
// the operator inbox
func operatorNotificationHTML(siteName string, contact *models.Contact) string {
	tagList := "none"
	if len(contact.Tags) > 0 {
		tagList = strings.Join(contact.Tags, ", ")
	}

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>New Contact Form Submission</h2>
  <table cellpadding="6">
    <tr><td><strong>Name</strong></td><td>%s</td></tr>
    <tr><td><strong>Email</strong></td><td><a href="mailto:%s">%s</a></td></tr>
    <tr><td><strong>Phone</strong></td><td>%s</td></tr>
    <tr><td><strong>Company</strong></td><td>%s</td></tr>
    <tr><td><strong>Subject</strong></td><td>%s</td></tr>
    <tr><td><strong>Budget</strong></td><td>%s</td></tr>
    <tr><td><strong>Tags</strong></td><td>%s</td></tr>
  </table>
  <h3>Message</h3>
  <p style="white-space: pre-wrap; background: #f5f5f5; padding: 12px;">%s</p>
  <p>
    <a href="mailto:%s?subject=Re: %s">Reply via Email</a>
  </p>
  <p style="color: #888; font-size: 12px;">Sent by the %s contact form.</p>
</body>
</html>`,
		html.EscapeString(contact.Name),
		html.EscapeString(contact.Email), html.EscapeString(contact.Email),
		html.EscapeString(orDash(contact.Phone)),
		html.EscapeString(orDash(contact.Company)),
		html.EscapeString(contact.Subject),
		html.EscapeString(contact.BudgetDisplay()),
		html.EscapeString(tagList),
		html.EscapeString(contact.Message),
		html.EscapeString(contact.Email), html.EscapeString(contact.Subject),
		html.EscapeString(siteName),
	)
}

// confirmationHTML renders the acknowledgment sent to the submitter. When
// body is empty a generic thank-you is used; otherwise body carries the
// operator's response text.
func confirmationHTML(siteName string, contact *models.Contact, body string) string {
	if body == "" {
		body = fmt.Sprintf("Thank you for contacting %s. We have received your message and will get back to you shortly.", siteName)
	}

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hi %s,</h2>
  <p style="white-space: pre-wrap;">%s</p>
  <h3>Your message</h3>
  <p style="white-space: pre-wrap; background: #f5f5f5; padding: 12px;">%s</p>
  <p style="color: #888; font-size: 12px;">The %s team</p>
</body>
</html>`,
		html.EscapeString(contact.Name),
		html.EscapeString(body),
		html.EscapeString(contact.Message),
		html.EscapeString(siteName),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
