package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"contact-analytics-service/internal/models"
)

// ContactRepository is the persistence contract for contact submissions.
// Services depend on this interface so storage bindings can be swapped and
// tests can use in-memory fakes.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, int64, error)
	ListAll(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	Stats(ctx context.Context) (*models.ContactStats, error)
	Recent(ctx context.Context, limit int) ([]models.RecentContact, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// AnalyticsRepository is the persistence contract for analytics events.
// Events are write-once; there is intentionally no update or delete method.
type AnalyticsRepository interface {
	Create(ctx context.Context, event *models.AnalyticsEvent) error
	PageViews(ctx context.Context, from, to time.Time) ([]models.PageViewStat, error)
	DeviceStats(ctx context.Context, from, to time.Time) ([]models.DeviceStat, error)
	TrafficSources(ctx context.Context, from, to time.Time) ([]models.TrafficSourceStat, error)
	DailyStats(ctx context.Context, days int) ([]models.DailyStat, error)
	EventStats(ctx context.Context, from, to time.Time) ([]models.EventStat, error)
	CountPageViews(ctx context.Context, page string, since time.Time) (int64, error)
}
