package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisperrid/backend/internal/config"
	"github.com/whisperrid/backend/internal/handlers"
	"github.com/whisperrid/backend/internal/middleware"
	"github.com/whisperrid/backend/internal/services/dashboard"
	"github.com/whisperrid/backend/internal/services/risk"
	"github.com/whisperrid/backend/internal/services/settings"
	"github.com/whisperrid/backend/internal/services/simulator"
	"github.com/whisperrid/backend/internal/services/verification"
	"github.com/whisperrid/backend/internal/storage"
	"github.com/whisperrid/backend/internal/utils"
)

func setupRouter(t *testing.T) (*gin.Engine, *middleware.RateLimiter) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:  "test",
		FrontendURLs: []string{"http://localhost:3000"},
		Security:     config.DefaultSecurityConfig(),
	}

	store, err := storage.NewCaseStore(storage.SeedCases())
	require.NoError(t, err)
	audit := utils.NewAuditLogger(10)
	sim := simulator.NewLiveUpdateSimulator(store, audit, simulator.DefaultConfig())
	verificationService := verification.NewVerificationService(store)
	// no generator configured: every AI call falls back
	assessmentService := risk.NewAssessmentService(nil, audit, time.Second)

	limiter := middleware.NewRateLimiter(1, 2, time.Hour)
	t.Cleanup(limiter.Stop)

	router := NewRouter(cfg)
	RegisterRoutes(router, Handlers{
		Health:       handlers.NewHealthHandler(sim),
		Dashboard:    handlers.NewDashboardHandler(dashboard.NewDashboardService(store, sim, 4)),
		Verification: handlers.NewVerificationHandler(verificationService),
		Case:         handlers.NewCaseHandler(verificationService, assessmentService, audit, 10),
		Assistant:    handlers.NewAssistantHandler(assessmentService),
		Settings:     handlers.NewSettingsHandler(settings.NewSettingsService()),
	}, limiter)

	return router, limiter
}

func serve(router *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.0.2.10:5000"
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoutesRegistered(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{
		"/health",
		"/api/dashboard",
		"/api/verifications",
		"/api/verifications/statuses",
		"/api/cases/12345",
		"/api/cases/12345/activity",
		"/api/settings/organization",
	} {
		w := serve(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader), path)
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"), path)
	}
}

func TestAssessmentIsRateLimited(t *testing.T) {
	router, _ := setupRouter(t)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/cases/12345/assessment", nil).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/cases/67890/assessment", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodPost, "/api/cases/11223/assessment", nil).Code)

	// non-AI routes are not limited
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/cases/11223", nil).Code)
}

func TestForwardedForCannotBypassRateLimit(t *testing.T) {
	router, _ := setupRouter(t)

	codes := make([]int, 0, 3)
	for _, spoofed := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		w := serve(router, http.MethodPost, "/api/cases/12345/assessment", http.Header{
			"X-Forwarded-For": {spoofed},
		})
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORSPreflight(t *testing.T) {
	router, _ := setupRouter(t)

	w := serve(router, http.MethodOptions, "/api/settings/organization", http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {"PUT"},
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
