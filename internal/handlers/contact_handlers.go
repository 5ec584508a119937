package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"contact-analytics-service/internal/services"
)

// ContactHandler serves the public ingestion endpoints
type ContactHandler struct {
	contacts  *services.ContactService
	analytics *services.AnalyticsService
	logger    *logrus.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts *services.ContactService, analytics *services.AnalyticsService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{
		contacts:  contacts,
		analytics: analytics,
		logger:    logger,
	}
}

// SubmitContact handles POST /api/contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req services.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	contact, err := h.contacts.SubmitContact(c.Request.Context(), req, requestContext(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you for your message. We will get back to you soon!",
		"data": gin.H{
			"id":        contact.ID,
			"status":    contact.Status,
			"tags":      contact.Tags,
			"createdAt": contact.CreatedAt,
		},
	})
}

// TrackEvent handles POST /api/analytics/track
func (h *ContactHandler) TrackEvent(c *gin.Context) {
	var req services.TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	event, err := h.analytics.TrackEvent(c.Request.Context(), req, requestContext(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":        event.ID,
			"timestamp": event.Timestamp,
		},
	})
}

// requestContext captures provenance from the connection, not the payload
func requestContext(c *gin.Context) services.RequestContext {
	return services.RequestContext{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
