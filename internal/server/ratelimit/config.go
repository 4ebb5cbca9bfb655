package ratelimit

import (
	"time"

	"github.com/jonathan/portfolio-builder/internal/config"
)

// EndpointConfig represents rate limiting configuration for a group of endpoints.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" makes it a prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !config.GetEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    config.GetEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   config.GetEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: config.GetEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       toSet(config.GetEnvList("RATE_LIMIT_WHITELIST")),
		Blacklist:       toSet(config.GetEnvList("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: LLM and outbound fetches
		{Path: "/resumes/parse", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/portfolios/import", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		// Tier 2: credential checks
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/register", Method: "POST", Limit: 5, Window: time.Minute, Burst: 2},
		{Path: "/auth/password", Method: "PUT", Limit: 5, Window: time.Minute, Burst: 2},

		// Tier 3: writes
		{Path: "/marketplace/components", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/marketplace/components/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/portfolios/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/portfolios/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/portfolios/preview", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Reads use the default limit; /health and /metrics are unlimited
	}
}

func toSet(items []string) map[string]bool {
	result := make(map[string]bool, len(items))
	for _, item := range items {
		result[item] = true
	}
	return result
}
