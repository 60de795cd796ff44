package devauth

// Package devauth provides a config-driven AuthProvider for local
// development. It short-circuits the external-provider flow by
// redirecting straight back to our own exchange callback with locally
// generated state and nonce.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/justicia-ai/leia-auth/internal/ports"
)

// Config controls the dev provider identity.
type Config struct {
	Email string
}

// Provider implements ports.AuthProvider for local development.
// Exchange ignores the code and returns a fresh dev token; the backend
// identity API must run in its matching dev mode to accept it.
type Provider struct {
	email string
}

var _ ports.AuthProvider = (*Provider)(nil)

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	return &Provider{email: cfg.Email}, nil
}

// Begin returns a local callback URL and secure state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	// The exchange handler expects GET /auth/oidc/callback?code=...&state=...
	authURL := "/auth/oidc/callback?code=dev&state=" + state
	return authURL, state, nonce, nil
}

// Exchange ignores the provided code (state validation is handled by
// the callback handler) and returns the configured dev identity.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (ports.ProviderIdentity, error) {
	return ports.ProviderIdentity{
		Token:     "dev-" + uuid.NewString(),
		EmailHint: p.email,
	}, nil
}

func randomString(n int) (string, error) {
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) > n {
		s = s[:n]
	}
	return s, nil
}
