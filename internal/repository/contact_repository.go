package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"contact-analytics-service/internal/models"
)

// sortColumns whitelists the sortable fields to real columns
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"email":     "email",
	"subject":   "subject",
	"status":    "status",
	"priority":  "priority",
	"budget":    "budget",
	"source":    "source",
}

// GormContactRepository is the PostgreSQL binding of ContactRepository
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create persists a new contact submission
func (r *GormContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(contact).Error
}

// GetByID fetches one contact by id
func (r *GormContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update saves a modified contact. Last write wins on concurrent edits.
func (r *GormContactRepository) Update(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete hard-deletes a contact
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// List returns one page of contacts matching the filter plus the total count
func (r *GormContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Contact{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var contacts []models.Contact
	err := query.
		Order(r.orderClause(filter)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// ListAll returns every contact matching the filter, newest first (CSV export)
func (r *GormContactRepository) ListAll(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Contact{}), filter).
		Order("created_at DESC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// Stats returns per-status submission counts
func (r *GormContactRepository) Stats(ctx context.Context) (*models.ContactStats, error) {
	var stats models.ContactStats
	err := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Select("COUNT(*) as total, " +
			"SUM(CASE WHEN status = 'new' THEN 1 ELSE 0 END) as new, " +
			"SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END) as in_progress, " +
			"SUM(CASE WHEN status = 'responded' THEN 1 ELSE 0 END) as responded, " +
			"SUM(CASE WHEN status = 'closed' THEN 1 ELSE 0 END) as closed").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Recent returns the newest submissions as slim dashboard rows
func (r *GormContactRepository) Recent(ctx context.Context, limit int) ([]models.RecentContact, error) {
	var recent []models.RecentContact
	err := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Select("id, name, email, subject, status, created_at").
		Order("created_at DESC").
		Limit(limit).
		Scan(&recent).Error
	if err != nil {
		return nil, err
	}
	return recent, nil
}

// CountSince counts submissions created at or after the given time
func (r *GormContactRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Contact{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

// applyFilter translates a ContactFilter into query conditions. Equality
// filters AND-combine; the search group OR-combines across text fields and
// ANDs with the rest.
func (r *GormContactRepository) applyFilter(query *gorm.DB, filter models.ContactFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Budget != "" {
		query = query.Where("budget = ?", filter.Budget)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			r.db.Where("name ILIKE ?", pattern).
				Or("email ILIKE ?", pattern).
				Or("subject ILIKE ?", pattern).
				Or("message ILIKE ?", pattern).
				Or("company ILIKE ?", pattern),
		)
	}
	return query
}

func (r *GormContactRepository) orderClause(filter models.ContactFilter) string {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}
