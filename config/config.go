package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config files
// for the available variables:
//   - auth.go: identity API, auth mode, and session vault configuration
//   - database.go: Postgres and Redis configuration
//   - http.go: HTTP server configuration
//   - navigation.go: role navigation tables (static, not env-driven)
type AppConfig struct {
	// IsDev controls development mode behavior. Set DEV=true or
	// NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Auth groups identity API, provider, and vault configuration.
	Auth AuthConfig

	// Postgres holds the audit database configuration.
	Postgres DBConfig `envPrefix:"DB_"`

	// Redis holds the session vault backing store configuration.
	Redis RedisConfig `envPrefix:"REDIS_"`

	// HTTP holds server configuration.
	HTTP HTTPConfig

	// Observability holds metrics configuration.
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// Call it after env parsing.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Auth.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks NODE_ENV as a fallback for the DEV flag; the
// frontend tooling of the platform sets NODE_ENV, not DEV.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
