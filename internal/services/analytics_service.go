package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"contact-analytics-service/internal/models"
	"contact-analytics-service/internal/repository"
)

// contactPage is the page whose views form the conversion-rate denominator
const contactPage = "contact"

// AnalyticsService handles event ingestion and aggregation
type AnalyticsService struct {
	events   repository.AnalyticsRepository
	contacts repository.ContactRepository
	logger   *logrus.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(events repository.AnalyticsRepository, contacts repository.ContactRepository, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{
		events:   events,
		contacts: contacts,
		logger:   logger,
	}
}

// TrackEvent persists one analytics event. Only event and page are required;
// malformed optional fields are coerced to their defaults rather than
// rejected. Provenance comes from the request context, never the payload.
func (s *AnalyticsService) TrackEvent(ctx context.Context, req TrackEventRequest, rc RequestContext) (*models.AnalyticsEvent, error) {
	var fieldErrs []FieldError
	if strings.TrimSpace(req.Event) == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "event", Message: "Event is required"})
	}
	if strings.TrimSpace(req.Page) == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "page", Message: "Page is required"})
	}
	if strings.TrimSpace(req.SessionID) == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "sessionId", Message: "Session ID is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Errors: fieldErrs}
	}

	event := &models.AnalyticsEvent{
		Event:            strings.TrimSpace(req.Event),
		Page:             strings.TrimSpace(req.Page),
		UserAgent:        rc.UserAgent,
		IPAddress:        rc.IPAddress,
		Referrer:         defaultString(req.Referrer, "direct"),
		Country:          defaultString(req.Country, "Unknown"),
		City:             defaultString(req.City, "Unknown"),
		Device:           coerceDevice(req.Device),
		Browser:          defaultString(req.Browser, "Unknown"),
		OS:               defaultString(req.OS, "Unknown"),
		ScreenResolution: defaultString(req.ScreenResolution, "Unknown"),
		Language:         defaultString(req.Language, "en"),
		SessionID:        strings.TrimSpace(req.SessionID),
		Metadata:         datatypes.JSONMap(req.Metadata),
		Timestamp:        time.Now(),
	}
	if req.UserID != "" {
		userID := req.UserID
		event.UserID = &userID
	}
	if event.Metadata == nil {
		event.Metadata = datatypes.JSONMap{}
	}

	if err := s.events.Create(ctx, event); err != nil {
		s.logger.WithError(err).Error("Failed to store analytics event")
		return nil, fmt.Errorf("failed to track event: %w", err)
	}

	return event, nil
}

// GetDashboard assembles the admin dashboard for the last periodDays days
func (s *AnalyticsService) GetDashboard(ctx context.Context, periodDays int) (*models.Dashboard, error) {
	if periodDays < 1 {
		periodDays = 30
	}
	end := time.Now()
	start := end.AddDate(0, 0, -periodDays)

	stats, err := s.contacts.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact stats: %w", err)
	}

	recent, err := s.contacts.Recent(ctx, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent contacts: %w", err)
	}

	pageViews, err := s.events.PageViews(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get page views: %w", err)
	}

	deviceStats, err := s.events.DeviceStats(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get device stats: %w", err)
	}

	dailyStats, err := s.events.DailyStats(ctx, periodDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	conversionRate, err := s.conversionRate(ctx, start)
	if err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{
		Contacts: models.DashboardContacts{
			ContactStats:   *stats,
			Recent:         recent,
			ConversionRate: conversionRate,
		},
		Analytics: models.DashboardAnalytics{
			PageViews:   pageViews,
			DeviceStats: deviceStats,
			DailyStats:  dailyStats,
		},
		Period: models.Period{
			Days:      periodDays,
			StartDate: start,
			EndDate:   end,
		},
	}

	s.logger.WithFields(logrus.Fields{
		"days":            periodDays,
		"total_contacts":  stats.Total,
		"conversion_rate": conversionRate,
	}).Info("Generated dashboard")

	return dashboard, nil
}

// GetAnalytics assembles the detailed analytics report for the given range.
// The report is read-only; repeated calls without intervening writes return
// identical aggregates.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, days int, start, end time.Time) (*models.AnalyticsReport, error) {
	if days < 1 {
		days = 30
	}

	pageViews, err := s.events.PageViews(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get page views: %w", err)
	}

	deviceStats, err := s.events.DeviceStats(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get device stats: %w", err)
	}

	trafficSources, err := s.events.TrafficSources(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get traffic sources: %w", err)
	}

	dailyStats, err := s.events.DailyStats(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	eventStats, err := s.events.EventStats(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get event stats: %w", err)
	}

	contactStats, err := s.contacts.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact stats: %w", err)
	}

	return &models.AnalyticsReport{
		PageViews:      pageViews,
		DeviceStats:    deviceStats,
		TrafficSources: trafficSources,
		DailyStats:     dailyStats,
		EventStats:     eventStats,
		ContactStats:   *contactStats,
		Period: models.Period{
			Days:      days,
			StartDate: start,
			EndDate:   end,
		},
	}, nil
}

// conversionRate is contact submissions over contact-page views in the
// period, as a percentage rounded to 2 decimals. Zero denominator yields 0.
func (s *AnalyticsService) conversionRate(ctx context.Context, since time.Time) (float64, error) {
	views, err := s.events.CountPageViews(ctx, contactPage, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count contact page views: %w", err)
	}
	if views == 0 {
		return 0, nil
	}

	submissions, err := s.contacts.CountSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	rate := float64(submissions) / float64(views) * 100
	return math.Round(rate*100) / 100, nil
}

func defaultString(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

// coerceDevice maps unknown device strings to the desktop default
func coerceDevice(device string) models.DeviceType {
	if models.ValidDevice(device) {
		return models.DeviceType(device)
	}
	return models.DeviceDesktop
}
