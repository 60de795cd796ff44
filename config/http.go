package config

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application, used when generating
	// absolute URLs for the external-provider flow.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for the provider state cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values. A cookie
// domain that is itself a public suffix (e.g. "com", "co.uk") would let
// unrelated sites receive our cookies, so it is dropped.
func (h *HTTPConfig) Sanitize() {
	domain := strings.TrimPrefix(strings.TrimSpace(h.CookieDomain), ".")
	if domain == "" {
		h.CookieDomain = ""
		return
	}
	if suffix, _ := publicsuffix.PublicSuffix(domain); suffix == domain {
		h.CookieDomain = ""
	}
}
