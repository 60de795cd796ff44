package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	var mode AuthMode
	require.NoError(t, mode.UnmarshalText([]byte("OAuth")))
	assert.Equal(t, AuthModeOAuth, mode)

	require.NoError(t, mode.UnmarshalText([]byte("mock")))
	assert.Equal(t, AuthModeMock, mode)

	err := mode.UnmarshalText([]byte("saml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AuthMode")
}

func TestAuthConfig_SanitizeRestoresVaultPrefix(t *testing.T) {
	cfg := AuthConfig{VaultPrefix: "   "}
	cfg.Sanitize()
	assert.Equal(t, "leia:", cfg.VaultPrefix)

	cfg = AuthConfig{VaultPrefix: "staging:"}
	cfg.Sanitize()
	assert.Equal(t, "staging:", cfg.VaultPrefix)
}

func TestHTTPConfig_SanitizeDropsPublicSuffixCookieDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   string
	}{
		{"empty", "", ""},
		{"bare tld", "com", ""},
		{"multi-part suffix", "co.uk", ""},
		{"leading dot suffix", ".com", ""},
		{"real domain", "leia.legal", "leia.legal"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := HTTPConfig{CookieDomain: tc.domain}
			cfg.Sanitize()
			assert.Equal(t, tc.want, cfg.CookieDomain)
		})
	}
}

func TestNavigation_Fallbacks(t *testing.T) {
	nav := DefaultNavigation()

	assert.Equal(t, nav.Professional["abogado"], nav.ForProfessionalType("abogado"))
	assert.Equal(t, nav.ProfessionalFallback, nav.ForProfessionalType("mediador"))

	assert.Equal(t, "Notario", nav.LabelFor("notario"))
	assert.Equal(t, "Profesional", nav.LabelFor("mediador"))
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)

	t.Setenv("NODE_ENV", "production")
	cfg = AppConfig{}
	cfg.Sanitize()
	assert.False(t, cfg.IsDev)
}
