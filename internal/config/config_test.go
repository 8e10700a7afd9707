package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GEMINI_MODEL", "GEMINI_TIMEOUT_SECONDS", "SIMULATOR_INTERVAL_MS",
		"SIMULATOR_HIGHLIGHT_MS", "SIMULATOR_ENABLED", "DASHBOARD_RECENT_LIMIT",
		"ACTIVITY_LOG_LIMIT", "FRONTEND_URL", "ENVIRONMENT", "TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 20*time.Second, cfg.Gemini.Timeout())
	assert.True(t, cfg.Simulator.Enabled)
	assert.Equal(t, 1500*time.Millisecond, cfg.Simulator.Interval())
	assert.Equal(t, 800*time.Millisecond, cfg.Simulator.Highlight())
	assert.Equal(t, 5, cfg.Simulator.MaxDelta)
	assert.Equal(t, 4, cfg.Dashboard.RecentLimit)
	assert.Equal(t, 50, cfg.Dashboard.ActivityLogLimit)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.NotEmpty(t, cfg.FrontendURLs)
	assert.Nil(t, cfg.TrustedProxies)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "5")
	t.Setenv("SIMULATOR_INTERVAL_MS", "250")
	t.Setenv("SIMULATOR_ENABLED", "false")
	t.Setenv("DASHBOARD_RECENT_LIMIT", "not-a-number")
	t.Setenv("FRONTEND_URL", "https://app.whisperrid.com, https://admin.whisperrid.com")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")

	cfg := LoadConfig()

	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout())
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.Interval())
	assert.False(t, cfg.Simulator.Enabled)
	assert.Equal(t, 4, cfg.Dashboard.RecentLimit)
	assert.Equal(t, []string{"https://app.whisperrid.com", "https://admin.whisperrid.com"}, cfg.FrontendURLs)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("WHISPERR_LIST", " , ")
	assert.Equal(t, []string{"x"}, getEnvList("WHISPERR_LIST", []string{"x"}))
}
