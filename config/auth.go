package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode selects how the external-provider login flow is served.
type AuthMode string

const (
	// AuthModeOAuth uses a real OIDC provider for the external flow.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock short-circuits the external flow with a config-driven
	// dev identity (development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// IdentityAPIConfig describes the backend identity API this service
// consumes as an opaque boundary.
type IdentityAPIConfig struct {
	BaseURL string        `env:"URL"     envDefault:"http://localhost:8000"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// Optional JMESPath expressions locating profile fields in
	// non-standard backend payloads. Empty means the documented shape.
	RolePath             string `env:"PROFILE_ROLE_PATH"`
	ProfessionalTypePath string `env:"PROFILE_TYPE_PATH"`
	FullNamePath         string `env:"PROFILE_NAME_PATH"`
}

// OAuthConfig contains OIDC configuration for the external-provider flow.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/oidc/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls the mock provider identity used when
// AUTH_MODE=mock.
type DevAuthConfig struct {
	Email            string `env:"EMAIL"             envDefault:"dev@leia.legal"`
	FullName         string `env:"FULL_NAME"         envDefault:"Dev LEIA"`
	Role             string `env:"ROLE"              envDefault:"user"`
	ProfessionalType string `env:"PROFESSIONAL_TYPE" envDefault:""`
}

// AuthConfig groups all session and access-control configuration.
type AuthConfig struct {
	// Mode determines which external-provider implementation to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"mock"`

	// IdentityAPI is the backend that issues and validates tokens.
	IdentityAPI IdentityAPIConfig `envPrefix:"IDENTITY_API_"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// VaultPrefix namespaces the persisted session keys. The canonical
	// key set lives under this prefix: token, user, anon_usage.
	VaultPrefix string `env:"SESSION_VAULT_PREFIX" envDefault:"leia:"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if strings.TrimSpace(a.VaultPrefix) == "" {
		a.VaultPrefix = "leia:"
	}
}
