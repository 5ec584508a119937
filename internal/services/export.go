package services

import (
	"context"
	"fmt"
	"strings"

	"contact-analytics-service/internal/models"
)

// csvHeader is the fixed export column list
const csvHeader = "Name,Email,Subject,Message,Budget,Company,Phone,Status,Priority,Created At"

// csvTimestampLayout matches the ISO-8601 UTC format used by exports
const csvTimestampLayout = "2006-01-02T15:04:05.000Z"

// ExportContactsCSV renders every contact matching the filter as CSV, newest
// first. The message field is quoted with internal quotes doubled; budget is
// exported as its display label.
func (s *ContactService) ExportContactsCSV(ctx context.Context, filter models.ContactFilter) ([]byte, error) {
	contacts, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to export contacts")
		return nil, fmt.Errorf("failed to export contacts: %w", err)
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for i, contact := range contacts {
		if i > 0 {
			b.WriteByte('\n')
		}
		row := []string{
			contact.Name,
			contact.Email,
			contact.Subject,
			quoteCSVField(contact.Message),
			contact.BudgetDisplay(),
			contact.Company,
			contact.Phone,
			string(contact.Status),
			string(contact.Priority),
			contact.CreatedAt.UTC().Format(csvTimestampLayout),
		}
		b.WriteString(strings.Join(row, ","))
	}

	s.logger.WithField("count", len(contacts)).Info("Exported contacts CSV")
	return []byte(b.String()), nil
}

// quoteCSVField wraps a field in double quotes, doubling internal quotes
func quoteCSVField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
