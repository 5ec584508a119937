package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "marketing_site", cfg.DBName)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "TekLegion", cfg.SiteName)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.AdminToken, "admin token has no default")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ADMIN_TOKEN", "super-secret")
	t.Setenv("FRONTEND_URL", "https://a.example.com, https://b.example.com ,")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "super-secret", cfg.AdminToken)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestEmailConfigured(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.EmailConfigured())

	cfg.SendGridAPIKey = "sg-key"
	assert.True(t, cfg.EmailConfigured())

	cfg = &Config{SMTPHost: "smtp.example.com", SMTPUsername: "user"}
	assert.True(t, cfg.EmailConfigured())

	cfg = &Config{SMTPHost: "smtp.example.com"}
	assert.False(t, cfg.EmailConfigured(), "smtp needs credentials")
}

func TestGetServerAddress(t *testing.T) {
	cfg := &Config{Port: "8080"}
	assert.Equal(t, ":8080", cfg.GetServerAddress())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Environment: "release"}).IsProduction())
	assert.False(t, (&Config{Environment: "debug"}).IsProduction())
}
