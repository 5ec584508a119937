package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-analytics-service/internal/config"
	"contact-analytics-service/internal/middleware"
	"contact-analytics-service/internal/models"
	"contact-analytics-service/internal/repository"
	"contact-analytics-service/internal/services"
)

const testAdminToken = "test-admin-token"

type stubContactRepo struct {
	contacts map[uuid.UUID]*models.Contact
	order    []uuid.UUID
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{contacts: make(map[uuid.UUID]*models.Contact)}
}

func (r *stubContactRepo) Create(_ context.Context, contact *models.Contact) error {
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	copied := *contact
	r.contacts[contact.ID] = &copied
	r.order = append(r.order, contact.ID)
	return nil
}

func (r *stubContactRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, ok := r.contacts[id]
	if !ok {
		return nil, repository.ErrContactNotFound
	}
	copied := *contact
	return &copied, nil
}

func (r *stubContactRepo) Update(_ context.Context, contact *models.Contact) error {
	if _, ok := r.contacts[contact.ID]; !ok {
		return repository.ErrContactNotFound
	}
	copied := *contact
	r.contacts[contact.ID] = &copied
	return nil
}

func (r *stubContactRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.contacts[id]; !ok {
		return repository.ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}

func (r *stubContactRepo) List(_ context.Context, _ models.ContactFilter) ([]models.Contact, int64, error) {
	all := r.all()
	return all, int64(len(all)), nil
}

func (r *stubContactRepo) ListAll(_ context.Context, _ models.ContactFilter) ([]models.Contact, error) {
	return r.all(), nil
}

func (r *stubContactRepo) Stats(_ context.Context) (*models.ContactStats, error) {
	return &models.ContactStats{Total: int64(len(r.contacts))}, nil
}

func (r *stubContactRepo) Recent(_ context.Context, _ int) ([]models.RecentContact, error) {
	return nil, nil
}

func (r *stubContactRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(r.contacts)), nil
}

func (r *stubContactRepo) all() []models.Contact {
	out := make([]models.Contact, 0, len(r.order))
	for _, id := range r.order {
		if contact, ok := r.contacts[id]; ok {
			out = append(out, *contact)
		}
	}
	return out
}

type stubAnalyticsRepo struct {
	events []*models.AnalyticsEvent
}

func (r *stubAnalyticsRepo) Create(_ context.Context, event *models.AnalyticsEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	r.events = append(r.events, event)
	return nil
}

func (r *stubAnalyticsRepo) PageViews(_ context.Context, _, _ time.Time) ([]models.PageViewStat, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) DeviceStats(_ context.Context, _, _ time.Time) ([]models.DeviceStat, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) TrafficSources(_ context.Context, _, _ time.Time) ([]models.TrafficSourceStat, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) DailyStats(_ context.Context, _ int) ([]models.DailyStat, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) EventStats(_ context.Context, _, _ time.Time) ([]models.EventStat, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) CountPageViews(_ context.Context, _ string, _ time.Time) (int64, error) {
	return 0, nil
}

type stubNotifier struct {
	confirmations int
}

func (n *stubNotifier) NotifyOperator(_ *models.Contact) {}

func (n *stubNotifier) ConfirmToSubmitter(_ *models.Contact, _ string) {
	n.confirmations++
}

type testEnv struct {
	router   *gin.Engine
	contacts *stubContactRepo
	notifier *stubNotifier
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	contactRepo := newStubContactRepo()
	analyticsRepo := &stubAnalyticsRepo{}
	notifier := &stubNotifier{}

	contactService := services.NewContactService(contactRepo, notifier, nil, logger)
	analyticsService := services.NewAnalyticsService(analyticsRepo, contactRepo, logger)

	cfg := &config.Config{
		SiteName:    "TekLegion",
		Environment: "test",
		AdminToken:  testAdminToken,
	}

	contactHandler := NewContactHandler(contactService, analyticsService, logger)
	adminHandler := NewAdminHandler(contactService, analyticsService, cfg, logger)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/contact", contactHandler.SubmitContact)
	api.POST("/analytics/track", contactHandler.TrackEvent)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.AdminToken))
	admin.GET("/dashboard", adminHandler.GetDashboard)
	admin.GET("/contacts", adminHandler.ListContacts)
	admin.GET("/contacts/:id", adminHandler.GetContact)
	admin.PUT("/contacts/:id", adminHandler.UpdateContact)
	admin.DELETE("/contacts/:id", adminHandler.DeleteContact)
	admin.POST("/contacts/:id/respond", adminHandler.RespondToContact)
	admin.GET("/analytics", adminHandler.GetAnalytics)
	admin.GET("/export/contacts", adminHandler.ExportContacts)
	admin.GET("/settings", adminHandler.GetSettings)

	return &testEnv{router: router, contacts: contactRepo, notifier: notifier}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSubmitContactEndpoint(t *testing.T) {
	env := setupRouter(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/contact", gin.H{
		"name":    "Ana Gomez",
		"email":   "ana@example.com",
		"subject": "Mobile app inquiry",
		"message": "We need a machine learning powered ios app",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "new", data["status"])
	assert.ElementsMatch(t, []interface{}{"AI/ML", "Mobile"}, data["tags"])
	require.Len(t, env.contacts.contacts, 1)
}

func TestSubmitContactEndpointValidation(t *testing.T) {
	env := setupRouter(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/contact", gin.H{
		"name":  "Missing Things",
		"email": "bad",
	}, "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["errors"])
	assert.Empty(t, env.contacts.contacts)
}

func TestTrackEventEndpoint(t *testing.T) {
	env := setupRouter(t)

	w := doJSON(t, env.router, http.MethodPost, "/api/analytics/track", gin.H{
		"event":     "page_view",
		"page":      "home",
		"sessionId": "sess-1",
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
}

func TestAdminRequiresToken(t *testing.T) {
	env := setupRouter(t)

	for _, token := range []string{"", "wrong-token"} {
		w := doJSON(t, env.router, http.MethodGet, "/api/admin/dashboard", nil, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Unauthorized access", body["message"])
	}
}

func TestAdminDashboard(t *testing.T) {
	env := setupRouter(t)

	w := doJSON(t, env.router, http.MethodGet, "/api/admin/dashboard?days=7", nil, testAdminToken)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	period := data["period"].(map[string]interface{})
	assert.Equal(t, float64(7), period["days"])
}

func TestAdminListContacts(t *testing.T) {
	env := setupRouter(t)

	require.NoError(t, env.contacts.Create(context.Background(), &models.Contact{ID: uuid.New(), Name: "Listed"}))

	w := doJSON(t, env.router, http.MethodGet, "/api/admin/contacts?page=1&limit=10", nil, testAdminToken)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["contacts"], 1)
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["total"])
}

func TestAdminUpdateContactNotFound(t *testing.T) {
	env := setupRouter(t)

	w := doJSON(t, env.router, http.MethodPut, "/api/admin/contacts/"+uuid.NewString(), gin.H{
		"status": "closed",
	}, testAdminToken)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Contact not found", body["message"])
}

func TestAdminUpdateContactMalformedID(t *testing.T) {
	env := setupRouter(t)

	w := doJSON(t, env.router, http.MethodPut, "/api/admin/contacts/not-a-uuid", gin.H{
		"status": "closed",
	}, testAdminToken)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRespondDefaultsToSendingEmail(t *testing.T) {
	env := setupRouter(t)

	id := uuid.New()
	require.NoError(t, env.contacts.Create(context.Background(), &models.Contact{
		ID: id, Email: "reply@example.com", Status: models.StatusNew,
	}))

	w := doJSON(t, env.router, http.MethodPost, "/api/admin/contacts/"+id.String()+"/respond", gin.H{
		"message": "We can help.",
	}, testAdminToken)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.notifier.confirmations)

	stored, err := env.contacts.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResponded, stored.Status)
}

func TestAdminRespondCanSkipEmail(t *testing.T) {
	env := setupRouter(t)

	id := uuid.New()
	require.NoError(t, env.contacts.Create(context.Background(), &models.Contact{ID: id, Status: models.StatusNew}))

	w := doJSON(t, env.router, http.MethodPost, "/api/admin/contacts/"+id.String()+"/respond", gin.H{
		"message":   "Recorded only.",
		"sendEmail": false,
	}, testAdminToken)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.notifier.confirmations)
}

func TestAdminExportContacts(t *testing.T) {
	env := setupRouter(t)

	require.NoError(t, env.contacts.Create(context.Background(), &models.Contact{
		ID: uuid.New(), Name: "Export Me", Email: "export@example.com", Budget: models.BudgetDiscuss,
	}))

	w := doJSON(t, env.router, http.MethodGet, "/api/admin/export/contacts", nil, testAdminToken)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=contacts.csv", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Name,Email,Subject,Message,Budget,Company,Phone,Status,Priority,Created At")
	assert.Contains(t, w.Body.String(), "Export Me")
}

func TestAdminDeleteContact(t *testing.T) {
	env := setupRouter(t)

	id := uuid.New()
	require.NoError(t, env.contacts.Create(context.Background(), &models.Contact{ID: id}))

	w := doJSON(t, env.router, http.MethodDelete, "/api/admin/contacts/"+id.String(), nil, testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, env.router, http.MethodDelete, "/api/admin/contacts/"+id.String(), nil, testAdminToken)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminSettings(t *testing.T) {
	env := setupRouter(t)

	w := doJSON(t, env.router, http.MethodGet, "/api/admin/settings", nil, testAdminToken)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "TekLegion", data["siteName"])
	assert.Equal(t, false, data["emailConfigured"])
}
