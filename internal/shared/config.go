package shared

import "time"

// AppConfig general application configurations
type AppConfig struct {
	// Rate Limiting
	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	// Response Cache
	CacheEnabled bool
	CacheConfigs map[string]ResponseCacheConfig

	// HTTPS Enforcement
	EnforceHTTPS bool

	// Environment
	Environment string
}

// RateLimitConfig configuration for rate limiting
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"/register": {
				Requests: 5,
				Window:   time.Minute,
			},
			"/login": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/tasks": {
				Requests: 100,
				Window:   time.Minute,
			},
		},
		CacheEnabled: true,
		CacheConfigs: map[string]ResponseCacheConfig{
			"/tasks": {
				TTL:     3 * time.Second,
				Enabled: true,
			},
		},
		EnforceHTTPS: false,
		Environment:  "development",
	}
}
