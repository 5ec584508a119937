package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DeviceType classifies the client device for an analytics event
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
)

// ValidDevice reports whether d is one of the known device types
func ValidDevice(d string) bool {
	switch DeviceType(d) {
	case DeviceDesktop, DeviceMobile, DeviceTablet:
		return true
	}
	return false
}

// AnalyticsEvent is one recorded client interaction (page view, click, ...).
// Events are immutable after creation; the admin surface exposes no update
// or delete path for them.
type AnalyticsEvent struct {
	ID               uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Event            string            `json:"event" gorm:"type:varchar(100);not null;index:idx_analytics_event_time,priority:1"`
	Page             string            `json:"page" gorm:"type:varchar(500);not null;index"`
	UserAgent        string            `json:"userAgent" gorm:"type:text;not null"`
	IPAddress        string            `json:"ipAddress" gorm:"type:varchar(45);not null"`
	Referrer         string            `json:"referrer" gorm:"type:varchar(500);not null;default:'direct'"`
	Country          string            `json:"country" gorm:"type:varchar(100);not null;default:'Unknown'"`
	City             string            `json:"city" gorm:"type:varchar(100);not null;default:'Unknown'"`
	Device           DeviceType        `json:"device" gorm:"type:varchar(20);not null;default:'desktop'"`
	Browser          string            `json:"browser" gorm:"type:varchar(100);not null;default:'Unknown'"`
	OS               string            `json:"os" gorm:"type:varchar(100);not null;default:'Unknown'"`
	ScreenResolution string            `json:"screenResolution" gorm:"type:varchar(50);not null;default:'Unknown'"`
	Language         string            `json:"language" gorm:"type:varchar(20);not null;default:'en'"`
	SessionID        string            `json:"sessionId" gorm:"type:varchar(255);not null;index"`
	UserID           *string           `json:"userId" gorm:"type:varchar(255)"`
	Metadata         datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	Timestamp        time.Time         `json:"timestamp" gorm:"not null;index:idx_analytics_event_time,priority:2"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// TableName specifies the table name for AnalyticsEvent
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}

// PageViewStat aggregates page_view events per page
type PageViewStat struct {
	Page        string `json:"page"`
	Views       int64  `json:"views"`
	UniqueViews int64  `json:"uniqueViews"`
}

// DeviceStat aggregates page_view events per device type
type DeviceStat struct {
	Device string `json:"device"`
	Count  int64  `json:"count"`
}

// TrafficSourceStat aggregates page_view events per referrer
type TrafficSourceStat struct {
	Referrer string `json:"referrer"`
	Count    int64  `json:"count"`
}

// DailyStat aggregates page_view events per calendar date
type DailyStat struct {
	Date        string `json:"date"`
	Views       int64  `json:"views"`
	UniqueViews int64  `json:"uniqueViews"`
}

// EventStat aggregates all events per event label
type EventStat struct {
	Event string `json:"event"`
	Count int64  `json:"count"`
}

// Period describes the resolved date range of an aggregation
type Period struct {
	Days      int       `json:"days"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// DashboardContacts is the contact block of the dashboard payload
type DashboardContacts struct {
	ContactStats
	Recent         []RecentContact `json:"recent"`
	ConversionRate float64         `json:"conversionRate"`
}

// DashboardAnalytics is the analytics block of the dashboard payload
type DashboardAnalytics struct {
	PageViews   []PageViewStat `json:"pageViews"`
	DeviceStats []DeviceStat   `json:"deviceStats"`
	DailyStats  []DailyStat    `json:"dailyStats"`
}

// Dashboard is the admin dashboard payload
type Dashboard struct {
	Contacts  DashboardContacts  `json:"contacts"`
	Analytics DashboardAnalytics `json:"analytics"`
	Period    Period             `json:"period"`
}

// AnalyticsReport is the detailed admin analytics payload
type AnalyticsReport struct {
	PageViews      []PageViewStat      `json:"pageViews"`
	DeviceStats    []DeviceStat        `json:"deviceStats"`
	TrafficSources []TrafficSourceStat `json:"trafficSources"`
	DailyStats     []DailyStat         `json:"dailyStats"`
	EventStats     []EventStat         `json:"eventStats"`
	ContactStats   ContactStats        `json:"contactStats"`
	Period         Period              `json:"period"`
}
