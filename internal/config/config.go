package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/whisperrid/backend/internal/secrets"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Gemini       GeminiConfig
	Simulator    SimulatorConfig
	Dashboard    DashboardConfig
	Security     SecurityConfig
	FrontendURLs []string
	Environment  string

	// TrustedProxies may set X-Forwarded-For; nil trusts none
	TrustedProxies []string

	dopplerClient   *secrets.DopplerClient
	dopplerInitOnce sync.Once
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// GeminiConfig holds the AI risk assessment configuration
type GeminiConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// Timeout returns the per-call model timeout
func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// SimulatorConfig holds live update timing
type SimulatorConfig struct {
	Enabled     bool
	IntervalMS  int
	HighlightMS int
	MaxDelta    int
}

// Interval returns the tick interval
func (s SimulatorConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// Highlight returns how long the last-changed signal stays set
func (s SimulatorConfig) Highlight() time.Duration {
	return time.Duration(s.HighlightMS) * time.Millisecond
}

// DashboardConfig holds list sizes for dashboard widgets
type DashboardConfig struct {
	RecentLimit      int
	ActivityLogLimit int
}

// LoadConfig creates a new Config instance with values from environment variables
// It will try to load from .env file first, then from Doppler if available
func LoadConfig() *Config {
	// Try to load .env file for local development
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvInt("SERVER_READ_TIMEOUT", 10),
			WriteTimeout:    getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			ShutdownTimeout: getEnvInt("SERVER_SHUTDOWN_TIMEOUT", 5),
		},
		Gemini: GeminiConfig{
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			TimeoutSeconds: getEnvInt("GEMINI_TIMEOUT_SECONDS", 20),
		},
		Simulator: SimulatorConfig{
			Enabled:     getEnvBool("SIMULATOR_ENABLED", true),
			IntervalMS:  getEnvInt("SIMULATOR_INTERVAL_MS", 1500),
			HighlightMS: getEnvInt("SIMULATOR_HIGHLIGHT_MS", 800),
			MaxDelta:    getEnvInt("SIMULATOR_MAX_DELTA", 5),
		},
		Dashboard: DashboardConfig{
			RecentLimit:      getEnvInt("DASHBOARD_RECENT_LIMIT", 4),
			ActivityLogLimit: getEnvInt("ACTIVITY_LOG_LIMIT", 50),
		},
		Security:     DefaultSecurityConfig(),
		FrontendURLs: getEnvList("FRONTEND_URL", []string{"http://localhost:3000", "http://localhost:5173"}),
		Environment:  getEnv("ENVIRONMENT", "development"),

		TrustedProxies: getEnvList("TRUSTED_PROXIES", nil),

		dopplerClient: secrets.NewDopplerClient(
			getEnv("DOPPLER_PROJECT", "whisperrid"),
			getEnv("DOPPLER_CONFIG", "dev"),
		),
	}

	config.initSecrets()

	return config
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// initSecrets initializes sensitive configuration values from Doppler
func (c *Config) initSecrets() {
	c.dopplerInitOnce.Do(func() {
		if err := c.dopplerClient.Initialize(); err != nil {
			// Doppler is optional in development
			c.Gemini.APIKey = getEnv("GEMINI_API_KEY", getEnv("API_KEY", ""))
			return
		}

		c.Gemini.APIKey = c.dopplerClient.GetSecretWithFallback("GEMINI_API_KEY", getEnv("API_KEY", ""))
	})
}

// GetSecret retrieves a secret from Doppler or environment
func (c *Config) GetSecret(key, defaultValue string) string {
	c.initSecrets()

	if c.dopplerClient != nil {
		value := c.dopplerClient.GetSecretWithFallback(key, "")
		if value != "" {
			return value
		}
	}

	return getEnv(key, defaultValue)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil || intValue <= 0 {
		return defaultValue
	}

	return intValue
}

// getEnvBool retrieves an environment variable as a boolean or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getEnvList splits a comma separated environment variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
