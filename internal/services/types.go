package services

import (
	"fmt"
	"strings"
)

// RequestContext carries request-derived provenance. These values are always
// captured server-side and never trusted from the payload.
type RequestContext struct {
	IPAddress string
	UserAgent string
}

// FieldError names one invalid payload field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is an itemized per-field validation failure. Handlers map
// it to a 400 response; nothing is persisted when it is returned.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// SubmitContactRequest is the public contact form payload
type SubmitContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
	Budget  string `json:"budget" validate:"omitempty,oneof=small medium large consultation discuss"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Company string `json:"company" validate:"omitempty,max=100"`
	Source  string `json:"source" validate:"omitempty,oneof=website referral social direct"`
}

// UpdateContactRequest is the admin patch payload. Empty fields are left
// untouched; Notes appends a single entry; Response sets the response record
// and forces the responded status.
type UpdateContactRequest struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
	Response string `json:"response"`
}

// TrackEventRequest is the public analytics payload. Only Event and Page are
// required; malformed optional fields are coerced to defaults.
type TrackEventRequest struct {
	Event            string                 `json:"event"`
	Page             string                 `json:"page"`
	Referrer         string                 `json:"referrer"`
	Country          string                 `json:"country"`
	City             string                 `json:"city"`
	Device           string                 `json:"device"`
	Browser          string                 `json:"browser"`
	OS               string                 `json:"os"`
	ScreenResolution string                 `json:"screenResolution"`
	Language         string                 `json:"language"`
	SessionID        string                 `json:"sessionId"`
	UserID           string                 `json:"userId"`
	Metadata         map[string]interface{} `json:"metadata"`
}

// validationMessages carries the user-facing message per field and tag
var validationMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
		"max":      "Name cannot exceed 100 characters",
	},
	"email": {
		"required": "Email is required",
		"email":    "Please enter a valid email",
	},
	"subject": {
		"required": "Subject is required",
		"max":      "Subject cannot exceed 200 characters",
	},
	"message": {
		"required": "Message is required",
		"max":      "Message cannot exceed 2000 characters",
	},
	"budget": {
		"oneof": "Budget must be one of small, medium, large, consultation, discuss",
	},
	"phone": {
		"max": "Phone number cannot exceed 20 characters",
	},
	"company": {
		"max": "Company name cannot exceed 100 characters",
	},
	"source": {
		"oneof": "Source must be one of website, referral, social, direct",
	},
}

func validationMessage(field, tag string) string {
	if byTag, ok := validationMessages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s is invalid", field)
}
