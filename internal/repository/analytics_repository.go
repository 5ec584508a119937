package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"contact-analytics-service/internal/models"
)

// GormAnalyticsRepository is the PostgreSQL binding of AnalyticsRepository
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// Create persists one analytics event
func (r *GormAnalyticsRepository) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// PageViews groups page_view events by page, sorted by views descending
func (r *GormAnalyticsRepository) PageViews(ctx context.Context, from, to time.Time) ([]models.PageViewStat, error) {
	var stats []models.PageViewStat
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("page, COUNT(*) as views, COUNT(DISTINCT session_id) as unique_views").
		Where("event = ? AND timestamp BETWEEN ? AND ?", "page_view", from, to).
		Group("page").
		Order("views DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DeviceStats groups page_view events by device, sorted by count descending
func (r *GormAnalyticsRepository) DeviceStats(ctx context.Context, from, to time.Time) ([]models.DeviceStat, error) {
	var stats []models.DeviceStat
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("device, COUNT(*) as count").
		Where("event = ? AND timestamp BETWEEN ? AND ?", "page_view", from, to).
		Group("device").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// TrafficSources groups page_view events by referrer, sorted by count descending
func (r *GormAnalyticsRepository) TrafficSources(ctx context.Context, from, to time.Time) ([]models.TrafficSourceStat, error) {
	var stats []models.TrafficSourceStat
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("referrer, COUNT(*) as count").
		Where("event = ? AND timestamp BETWEEN ? AND ?", "page_view", from, to).
		Group("referrer").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DailyStats groups page_view events of the last N days by calendar date,
// sorted ascending by date
func (r *GormAnalyticsRepository) DailyStats(ctx context.Context, days int) ([]models.DailyStat, error) {
	start := time.Now().AddDate(0, 0, -days)

	var stats []models.DailyStat
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("TO_CHAR(DATE(timestamp), 'YYYY-MM-DD') as date, COUNT(*) as views, COUNT(DISTINCT session_id) as unique_views").
		Where("event = ? AND timestamp >= ?", "page_view", start).
		Group("DATE(timestamp)").
		Order("date ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// EventStats groups all events in range by event label, sorted by count descending
func (r *GormAnalyticsRepository) EventStats(ctx context.Context, from, to time.Time) ([]models.EventStat, error) {
	var stats []models.EventStat
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("event, COUNT(*) as count").
		Where("timestamp BETWEEN ? AND ?", from, to).
		Group("event").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// CountPageViews counts page_view events for one page since the given time
func (r *GormAnalyticsRepository) CountPageViews(ctx context.Context, page string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("event = ? AND page = ? AND timestamp >= ?", "page_view", page, since).
		Count(&count).Error
	return count, err
}

// ensure the gorm bindings satisfy the repository contracts
var (
	_ ContactRepository   = (*GormContactRepository)(nil)
	_ AnalyticsRepository = (*GormAnalyticsRepository)(nil)
)
