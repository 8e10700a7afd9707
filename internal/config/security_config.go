package config

import (
	"time"
)

// SecurityConfig holds rate limiting and response header settings
type SecurityConfig struct {
	// Rate limiting for the AI endpoints, per client IP
	AIRateLimit         float64 // requests per minute
	AIRateBurst         int
	RateLimitCleanupMin int

	// Secure headers
	HSTSMaxAge            time.Duration
	HSTSIncludeSubdomains bool
	CSPDirectives         map[string]string
}

// DefaultSecurityConfig returns the default security configuration
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		// 10 model calls per minute per IP with a small burst
		AIRateLimit:         float64(getEnvInt("AI_RATE_LIMIT_PER_MIN", 10)),
		AIRateBurst:         getEnvInt("AI_RATE_BURST", 3),
		RateLimitCleanupMin: 5,

		HSTSMaxAge:            365 * 24 * time.Hour,
		HSTSIncludeSubdomains: true,
		CSPDirectives: map[string]string{
			"default-src":     "'none'",
			"frame-ancestors": "'none'",
		},
	}
}
