package security

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	router.POST("/api/guess", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestRateLimiter(t *testing.T) {
	router := newRouter(RateLimiter(2, time.Minute))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/guess", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// 其他 IP 不受影响
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/guess", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_NoBackgroundGoroutine(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 50; i++ {
		RateLimiter(10, time.Minute)
	}
	assert.Less(t, runtime.NumGoroutine()-before, 10)
}

func TestSweepVisitors(t *testing.T) {
	now := time.Now()
	store := map[string]*visitor{
		"10.0.0.1": {lastSeen: now.Add(-10 * time.Minute)},
		"10.0.0.2": {lastSeen: now.Add(-time.Minute)},
	}

	sweepVisitors(store, now, 3*time.Minute)
	assert.NotContains(t, store, "10.0.0.1")
	assert.Contains(t, store, "10.0.0.2")
}

func TestCORS(t *testing.T) {
	router := newRouter(CORS([]string{"https://fusion.example.com"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/guess", nil)
	req.Header.Set("Origin", "https://fusion.example.com")
	router.ServeHTTP(w, req)
	assert.Equal(t, "https://fusion.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/guess", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/guess", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecure(t *testing.T) {
	router := newRouter(Secure())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/guess", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
