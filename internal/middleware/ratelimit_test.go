package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedRouter(max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewRateLimiter(max, window).Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func ping(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	router := rateLimitedRouter(3, time.Minute)

	for i := 0; i < 3; i++ {
		w := ping(router, "203.0.113.1")
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := ping(router, "203.0.113.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests from this IP, please try again later.")
}

func TestRateLimiterIsPerIP(t *testing.T) {
	router := rateLimitedRouter(1, time.Minute)

	require.Equal(t, http.StatusOK, ping(router, "203.0.113.1").Code)
	require.Equal(t, http.StatusTooManyRequests, ping(router, "203.0.113.1").Code)

	assert.Equal(t, http.StatusOK, ping(router, "203.0.113.2").Code)
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	router := rateLimitedRouter(1, 20*time.Millisecond)

	require.Equal(t, http.StatusOK, ping(router, "203.0.113.1").Code)
	require.Equal(t, http.StatusTooManyRequests, ping(router, "203.0.113.1").Code)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, http.StatusOK, ping(router, "203.0.113.1").Code)
}
