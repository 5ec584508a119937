package services

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"contact-analytics-service/internal/models"
	"contact-analytics-service/internal/repository"
	"contact-analytics-service/internal/tags"
)

// adminAuthor is the author tag recorded on admin-made notes and responses
const adminAuthor = "admin"

// Notifier is the outbound-email boundary. Both operations are fire-and-forget:
// implementations must never block the caller or surface failures.
type Notifier interface {
	NotifyOperator(contact *models.Contact)
	ConfirmToSubmitter(contact *models.Contact, overrideMessage string)
}

// ContactEventPublisher publishes contact lifecycle events, best-effort
type ContactEventPublisher interface {
	PublishContactSubmitted(ctx context.Context, contact *models.Contact)
}

// ContactService handles business logic for contact submissions
type ContactService struct {
	repo      repository.ContactRepository
	notifier  Notifier
	publisher ContactEventPublisher
	validate  *validator.Validate
	logger    *logrus.Logger
}

// NewContactService creates a new contact service
func NewContactService(repo repository.ContactRepository, notifier Notifier, publisher ContactEventPublisher, logger *logrus.Logger) *ContactService {
	v := validator.New()
	// report json field names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ContactService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		validate:  v,
		logger:    logger,
	}
}

// SubmitContact validates and persists a contact form submission, computes
// its tags and triggers the operator/submitter notifications. Notification
// and event-publishing failures never affect the returned result.
func (s *ContactService) SubmitContact(ctx context.Context, req SubmitContactRequest, rc RequestContext) (*models.Contact, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Company = strings.TrimSpace(req.Company)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	budget := models.ContactBudget(req.Budget)
	if req.Budget == "" {
		budget = models.BudgetDiscuss
	}
	source := models.ContactSource(req.Source)
	if req.Source == "" {
		source = models.SourceWebsite
	}

	contact := &models.Contact{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Budget:    budget,
		Phone:     req.Phone,
		Company:   req.Company,
		Status:    models.StatusNew,
		Priority:  models.PriorityMedium,
		Source:    source,
		IPAddress: rc.IPAddress,
		UserAgent: rc.UserAgent,
		Tags:      tags.Classify(req.Message),
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		s.logger.WithError(err).Error("Failed to persist contact submission")
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.notifier.NotifyOperator(contact)
	s.notifier.ConfirmToSubmitter(contact, "")

	if s.publisher != nil {
		s.publisher.PublishContactSubmitted(ctx, contact)
	}

	s.logger.WithFields(logrus.Fields{
		"contact_id": contact.ID,
		"email":      contact.Email,
		"tags":       contact.Tags,
	}).Info("Contact submission stored")

	return contact, nil
}

// ListContacts returns one page of contacts matching the filter
func (s *ContactService) ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	contacts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list contacts")
		return nil, nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	pagination := &models.Pagination{
		Current: filter.Page,
		Pages:   int(math.Ceil(float64(total) / float64(filter.Limit))),
		Total:   total,
		Limit:   filter.Limit,
	}
	return contacts, pagination, nil
}

// GetContact fetches one contact by id
func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateContact applies only the fields present in the patch. Appending a
// note records the admin author and a server-assigned timestamp; setting a
// response also forces the responded status.
func (s *ContactService) UpdateContact(ctx context.Context, id uuid.UUID, patch UpdateContactRequest) (*models.Contact, error) {
	if patch.Status != "" && !models.ValidStatus(patch.Status) {
		return nil, &ValidationError{Errors: []FieldError{{Field: "status", Message: "Status must be one of new, in_progress, responded, closed"}}}
	}
	if patch.Priority != "" && !models.ValidPriority(patch.Priority) {
		return nil, &ValidationError{Errors: []FieldError{{Field: "priority", Message: "Priority must be one of low, medium, high, urgent"}}}
	}

	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != "" {
		contact.Status = models.ContactStatus(patch.Status)
	}
	if patch.Priority != "" {
		contact.Priority = models.ContactPriority(patch.Priority)
	}
	if patch.Notes != "" {
		contact.AddNote(patch.Notes, adminAuthor)
	}
	if patch.Response != "" {
		contact.MarkAsResponded(patch.Response, adminAuthor)
	}

	if err := s.repo.Update(ctx, contact); err != nil {
		s.logger.WithError(err).Error("Failed to update contact")
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	s.logger.WithField("contact_id", contact.ID).Info("Contact updated")
	return contact, nil
}

// DeleteContact hard-deletes a contact
func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("contact_id", id).Info("Contact deleted")
	return nil
}

// RespondToContact records an operator response and, when requested, sends a
// best-effort confirmation email carrying the response text. Email failures
// never surface to the caller.
func (s *ContactService) RespondToContact(ctx context.Context, id uuid.UUID, message string, sendEmail bool) (*models.Contact, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Errors: []FieldError{{Field: "message", Message: "Response message is required"}}}
	}

	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.MarkAsResponded(message, adminAuthor)

	if err := s.repo.Update(ctx, contact); err != nil {
		s.logger.WithError(err).Error("Failed to store contact response")
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	if sendEmail {
		s.notifier.ConfirmToSubmitter(contact, message)
	}

	s.logger.WithField("contact_id", contact.ID).Info("Contact response recorded")
	return contact, nil
}

func (s *ContactService) validateRequest(req SubmitContactRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validation: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range validationErrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe.Field(), fe.Tag()),
		})
	}
	return out
}
