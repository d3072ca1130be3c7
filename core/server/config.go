package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReconcileTTLSeconds is how long reconcile indices are cached between requests.
	ReconcileTTLSeconds int `mapstructure:"reconcile_ttl_seconds" default:"300"`
	// BodyLimitKB caps request bodies.
	BodyLimitKB int `mapstructure:"body_limit_kb" default:"64"`
}

// Address returns the listen address for Port.
func (c Config) Address() string {
	return ":" + c.Port
}

// ReconcileTTL returns the reconcile cache lifetime. Negative values disable caching.
func (c Config) ReconcileTTL() time.Duration {
	if c.ReconcileTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.ReconcileTTLSeconds) * time.Second
}

// BodyLimit returns the body limit in bytes, falling back to fiber's default.
func (c Config) BodyLimit() int {
	if c.BodyLimitKB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitKB * 1024
}
