package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"contact-analytics-service/internal/config"
	"contact-analytics-service/internal/models"
	"contact-analytics-service/internal/repository"
	"contact-analytics-service/internal/services"
)

// AdminHandler serves the authenticated admin surface
type AdminHandler struct {
	contacts  *services.ContactService
	analytics *services.AnalyticsService
	cfg       *config.Config
	logger    *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(contacts *services.ContactService, analytics *services.AnalyticsService, cfg *config.Config, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		contacts:  contacts,
		analytics: analytics,
		cfg:       cfg,
		logger:    logger,
	}
}

// GetDashboard handles GET /api/admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	days := intQuery(c, "days", 30)

	dashboard, err := h.analytics.GetDashboard(c.Request.Context(), days)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dashboard,
	})
}

// ListContacts handles GET /api/admin/contacts
func (h *AdminHandler) ListContacts(c *gin.Context) {
	filter := contactFilterFromQuery(c)

	contacts, pagination, err := h.contacts.ListContacts(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"contacts":   contacts,
			"pagination": pagination,
		},
	})
}

// GetContact handles GET /api/admin/contacts/:id
func (h *AdminHandler) GetContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	contact, err := h.contacts.GetContact(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contact,
	})
}

// UpdateContact handles PUT /api/admin/contacts/:id
func (h *AdminHandler) UpdateContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	var patch services.UpdateContactRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	contact, err := h.contacts.UpdateContact(c.Request.Context(), id, patch)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contact updated successfully",
		"data":    contact,
	})
}

// DeleteContact handles DELETE /api/admin/contacts/:id
func (h *AdminHandler) DeleteContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	if err := h.contacts.DeleteContact(c.Request.Context(), id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contact deleted successfully",
	})
}

// respondRequest is the response workflow payload. SendEmail defaults to true
// when omitted.
type respondRequest struct {
	Message   string `json:"message"`
	SendEmail *bool  `json:"sendEmail"`
}

// RespondToContact handles POST /api/admin/contacts/:id/respond
func (h *AdminHandler) RespondToContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	sendEmail := true
	if req.SendEmail != nil {
		sendEmail = *req.SendEmail
	}

	contact, err := h.contacts.RespondToContact(c.Request.Context(), id, req.Message, sendEmail)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Response sent successfully",
		"data":    contact,
	})
}

// GetAnalytics handles GET /api/admin/analytics
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	days := intQuery(c, "days", 30)

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	// explicit range overrides the rolling window
	if fromStr := c.Query("startDate"); fromStr != "" {
		if from, ok := parseDate(fromStr); ok {
			start = from
		}
	}
	if toStr := c.Query("endDate"); toStr != "" {
		if to, ok := parseDate(toStr); ok {
			end = to
		}
	}

	report, err := h.analytics.GetAnalytics(c.Request.Context(), days, start, end)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// ExportContacts handles GET /api/admin/export/contacts
func (h *AdminHandler) ExportContacts(c *gin.Context) {
	filter := contactFilterFromQuery(c)

	csv, err := h.contacts.ExportContactsCSV(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=contacts.csv")
	c.Data(http.StatusOK, "text/csv", csv)
}

// GetSettings handles GET /api/admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"siteName":        h.cfg.SiteName,
			"contactEmail":    h.cfg.ContactEmail,
			"emailFrom":       h.cfg.EmailFrom,
			"emailConfigured": h.cfg.EmailConfigured(),
			"environment":     h.cfg.Environment,
			"allowedOrigins":  h.cfg.AllowedOrigins,
		},
	})
}

// contactFilterFromQuery builds a contact filter from list/export query params
func contactFilterFromQuery(c *gin.Context) models.ContactFilter {
	filter := models.ContactFilter{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Budget:    c.Query("budget"),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      intQuery(c, "page", 1),
		Limit:     intQuery(c, "limit", 20),
	}

	if fromStr := c.Query("dateFrom"); fromStr != "" {
		if from, ok := parseDate(fromStr); ok {
			filter.DateFrom = &from
		}
	}
	if toStr := c.Query("dateTo"); toStr != "" {
		if to, ok := parseDate(toStr); ok {
			filter.DateTo = &to
		}
	}

	return filter
}

// contactID parses the :id path param, replying 404 on malformed ids so
// invalid and unknown ids are indistinguishable to the caller
func contactID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Contact not found",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseDate accepts RFC3339 timestamps or bare dates
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// handleServiceError maps service errors to the response envelope. Internal
// failure details are logged, never returned.
func handleServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  validationErr.Errors,
		})
		return
	}

	if errors.Is(err, repository.ErrContactNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Contact not found",
		})
		return
	}

	logger.WithError(err).Error("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}
