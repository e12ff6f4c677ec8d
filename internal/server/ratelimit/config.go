package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path, prefix match when it ends in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("RATE_LIMIT")
	v.AutomaticEnv()
	v.SetDefault("ENABLED", true)
	v.SetDefault("DEFAULT_LIMIT", 600)
	v.SetDefault("DEFAULT_WINDOW", time.Minute)
	v.SetDefault("CLEANUP_INTERVAL", 5*time.Minute)
	v.SetDefault("IDLE_TIMEOUT", time.Hour)
	v.SetDefault("WHITELIST", "")
	v.SetDefault("BLACKLIST", "")

	if !v.GetBool("ENABLED") {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    v.GetInt("DEFAULT_LIMIT"),
		DefaultWindow:   v.GetDuration("DEFAULT_WINDOW"),
		CleanupInterval: v.GetDuration("CLEANUP_INTERVAL"),
		IdleTimeout:     v.GetDuration("IDLE_TIMEOUT"),
		Whitelist:       parseIPList(v.GetString("WHITELIST")),
		Blacklist:       parseIPList(v.GetString("BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Each evaluation calls the model
		{Path: "/evaluations", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		{Path: "/evaluations/lookup", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/evaluations/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/evaluations", Method: "GET", Limit: 300, Window: time.Minute, Burst: 30},
	}
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
