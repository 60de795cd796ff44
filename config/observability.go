package config

// ObservabilityConfig contains metrics emission configuration.
type ObservabilityConfig struct {
	StatsdEnabled bool   `env:"STATSD_ENABLED" envDefault:"false"`
	StatsdAddress string `env:"STATSD_ADDRESS" envDefault:""`
	StatsdPrefix  string `env:"STATSD_PREFIX"  envDefault:"leia.auth"`
}
