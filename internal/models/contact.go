package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactStatus tracks where a submission sits in the response workflow
type ContactStatus string

const (
	StatusNew        ContactStatus = "new"
	StatusInProgress ContactStatus = "in_progress"
	StatusResponded  ContactStatus = "responded"
	StatusClosed     ContactStatus = "closed"
)

// ContactPriority is the operator-assigned urgency of a submission
type ContactPriority string

const (
	PriorityLow    ContactPriority = "low"
	PriorityMedium ContactPriority = "medium"
	PriorityHigh   ContactPriority = "high"
	PriorityUrgent ContactPriority = "urgent"
)

// ContactBudget is the project budget bracket selected on the form
type ContactBudget string

const (
	BudgetSmall        ContactBudget = "small"
	BudgetMedium       ContactBudget = "medium"
	BudgetLarge        ContactBudget = "large"
	BudgetConsultation ContactBudget = "consultation"
	BudgetDiscuss      ContactBudget = "discuss"
)

// ContactSource records which channel the submission arrived through
type ContactSource string

const (
	SourceWebsite  ContactSource = "website"
	SourceReferral ContactSource = "referral"
	SourceSocial   ContactSource = "social"
	SourceDirect   ContactSource = "direct"
)

// ContactNote is one entry in the append-only admin notes list
type ContactNote struct {
	Note    string    `json:"note"`
	AddedBy string    `json:"addedBy"`
	AddedAt time.Time `json:"addedAt"`
}

// ContactResponse is the single (overwritable) operator response record
type ContactResponse struct {
	Message     string    `json:"message"`
	RespondedBy string    `json:"respondedBy"`
	RespondedAt time.Time `json:"respondedAt"`
}

// Contact represents a contact form submission
type Contact struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string           `json:"name" gorm:"type:varchar(100);not null"`
	Email     string           `json:"email" gorm:"type:varchar(255);not null;index"`
	Subject   string           `json:"subject" gorm:"type:varchar(200);not null"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	Budget    ContactBudget    `json:"budget" gorm:"type:varchar(20);not null;default:'discuss'"`
	Phone     string           `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Company   string           `json:"company,omitempty" gorm:"type:varchar(100)"`
	Status    ContactStatus    `json:"status" gorm:"type:varchar(20);not null;default:'new';index"`
	Priority  ContactPriority  `json:"priority" gorm:"type:varchar(20);not null;default:'medium';index:idx_contacts_priority_status"`
	Source    ContactSource    `json:"source" gorm:"type:varchar(20);not null;default:'website'"`
	IPAddress string           `json:"ipAddress" gorm:"type:varchar(45);not null"`
	UserAgent string           `json:"userAgent" gorm:"type:text;not null"`
	Tags      []string         `json:"tags" gorm:"type:jsonb;serializer:json"`
	Notes     []ContactNote    `json:"notes" gorm:"type:jsonb;serializer:json"`
	Response  *ContactResponse `json:"response" gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time        `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// MarkAsResponded sets the response record and forces the responded status.
// Status moves to responded only through this path.
func (c *Contact) MarkAsResponded(message, respondedBy string) {
	c.Status = StatusResponded
	c.Response = &ContactResponse{
		Message:     message,
		RespondedBy: respondedBy,
		RespondedAt: time.Now(),
	}
}

// AddNote appends an entry to the notes list with a server-assigned timestamp
func (c *Contact) AddNote(note, addedBy string) {
	c.Notes = append(c.Notes, ContactNote{
		Note:    note,
		AddedBy: addedBy,
		AddedAt: time.Now(),
	})
}

// budgetDisplayLabels maps budget brackets to the labels shown on exports
var budgetDisplayLabels = map[ContactBudget]string{
	BudgetSmall:        "Small Project ($5K - $20K)",
	BudgetMedium:       "Medium Project ($20K - $100K)",
	BudgetLarge:        "Large Project ($100K+)",
	BudgetConsultation: "Strategy Consultation",
	BudgetDiscuss:      "Let's Discuss",
}

// BudgetDisplay returns the human-readable budget label
func (c *Contact) BudgetDisplay() string {
	if label, ok := budgetDisplayLabels[c.Budget]; ok {
		return label
	}
	return "Not specified"
}

// ValidStatus reports whether s is one of the known contact statuses
func ValidStatus(s string) bool {
	switch ContactStatus(s) {
	case StatusNew, StatusInProgress, StatusResponded, StatusClosed:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known priorities
func ValidPriority(p string) bool {
	switch ContactPriority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidBudget reports whether b is one of the known budget brackets
func ValidBudget(b string) bool {
	switch ContactBudget(b) {
	case BudgetSmall, BudgetMedium, BudgetLarge, BudgetConsultation, BudgetDiscuss:
		return true
	}
	return false
}

// ValidSource reports whether s is one of the known submission sources
func ValidSource(s string) bool {
	switch ContactSource(s) {
	case SourceWebsite, SourceReferral, SourceSocial, SourceDirect:
		return true
	}
	return false
}

// ContactStats holds per-status submission counts for the dashboard
type ContactStats struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	InProgress int64 `json:"inProgress"`
	Responded  int64 `json:"responded"`
	Closed     int64 `json:"closed"`
}

// RecentContact is the slim projection used on the dashboard
type RecentContact struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ContactFilter describes the admin listing filters. Equality filters are
// AND-combined; Search is a case-insensitive substring match OR-combined
// across name, email, subject, message and company.
type ContactFilter struct {
	Status    string
	Priority  string
	Budget    string
	Search    string
	DateFrom  *time.Time
	DateTo    *time.Time
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Pagination describes a page of results. Pages is ceil(Total/Limit).
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}
