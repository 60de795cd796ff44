package identityapi

// Package identityapi is the gateway to the backend identity API. It
// translates HTTP outcomes into the domain error taxonomy and keeps no
// state of its own.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	apperrors "github.com/justicia-ai/leia-auth/internal/errors"
	"github.com/justicia-ai/leia-auth/internal/ports"
)

const (
	loginPath   = "/api/auth/login"
	profilePath = "/api/auth/me"

	// genericRejection is surfaced when the backend supplies no detail.
	genericRejection = "No se pudo iniciar sesión"
)

// ClaimPaths holds optional JMESPath expressions locating profile
// fields in non-standard backend payloads. Empty expressions mean the
// documented payload shape is used as-is.
type ClaimPaths struct {
	Role             string
	ProfessionalType string
	FullName         string
}

// Client implements ports.IdentityGateway over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	claims     ClaimPaths
}

var _ ports.IdentityGateway = (*Client)(nil)

// Config groups Client construction parameters.
type Config struct {
	BaseURL    string
	Timeout    time.Duration // default 15s when zero
	Claims     ClaimPaths
	HTTPClient *http.Client // optional, overrides Timeout
}

// New creates an identity API client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, apperrors.Validation("identity API base URL is required")
	}
	for _, expr := range []string{cfg.Claims.Role, cfg.Claims.ProfessionalType, cfg.Claims.FullName} {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		if _, err := jmespath.Compile(expr); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "invalid profile claim path %q", expr)
		}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: base, httpClient: httpClient, claims: cfg.Claims}, nil
}

// loginResponse is the documented success payload of POST /api/auth/login.
type loginResponse struct {
	AccessToken string          `json:"access_token"`
	User        json.RawMessage `json:"user"`
}

// failureResponse is the documented non-success payload.
type failureResponse struct {
	Detail string `json:"detail"`
}

// Authenticate exchanges credentials for a bearer token and profile. A
// non-success response becomes a credential-rejection error carrying
// the backend-supplied reason; transport faults are a distinct kind.
func (c *Client) Authenticate(ctx context.Context, email, password string) (ports.Credential, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return ports.Credential{}, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return ports.Credential{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Credential{}, apperrors.Transportf(err, "identity API unreachable")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.Credential{}, apperrors.Transportf(err, "read login response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.Credential{}, apperrors.CredentialRejected(rejectionDetail(payload))
	}

	var decoded loginResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return ports.Credential{}, fmt.Errorf("decode login response: %w", err)
	}
	if decoded.AccessToken == "" || len(decoded.User) == 0 {
		return ports.Credential{}, apperrors.Internal("identity API returned an incomplete login payload")
	}

	user, err := c.decodeProfile(decoded.User)
	if err != nil {
		return ports.Credential{}, err
	}
	return ports.Credential{Token: decoded.AccessToken, User: user}, nil
}

// FetchProfile resolves a bearer token to its profile. Any non-success
// response is an invalid-token failure.
func (c *Client) FetchProfile(ctx context.Context, token string) (domainauth.UserProfile, error) {
	if token == "" {
		return domainauth.UserProfile{}, apperrors.TokenInvalid("empty bearer token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+profilePath, nil)
	if err != nil {
		return domainauth.UserProfile{}, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainauth.UserProfile{}, apperrors.Transportf(err, "identity API unreachable")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domainauth.UserProfile{}, apperrors.Transportf(err, "read profile response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domainauth.UserProfile{}, apperrors.TokenInvalid("invalid token")
	}

	return c.decodeProfile(payload)
}

// decodeProfile maps a raw profile payload into the domain shape,
// applying any configured claim-path overrides.
func (c *Client) decodeProfile(raw json.RawMessage) (domainauth.UserProfile, error) {
	var user domainauth.UserProfile
	if err := json.Unmarshal(raw, &user); err != nil {
		return domainauth.UserProfile{}, fmt.Errorf("decode user profile: %w", err)
	}

	if c.claims == (ClaimPaths{}) {
		return user, nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domainauth.UserProfile{}, fmt.Errorf("decode user profile document: %w", err)
	}

	if v, ok := c.searchString(c.claims.Role, doc); ok {
		user.Role = domainauth.Role(v)
	}
	if v, ok := c.searchString(c.claims.ProfessionalType, doc); ok {
		user.ProfessionalType = domainauth.ProfessionalType(v)
	}
	if v, ok := c.searchString(c.claims.FullName, doc); ok {
		user.FullName = v
	}
	return user, nil
}

// searchString evaluates a JMESPath expression and returns a non-empty
// string result.
func (c *Client) searchString(expr string, doc any) (string, bool) {
	if strings.TrimSpace(expr) == "" {
		return "", false
	}
	result, err := jmespath.Search(expr, doc)
	if err != nil {
		return "", false
	}
	s, ok := result.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// rejectionDetail extracts the backend-supplied failure reason, falling
// back to a generic message.
func rejectionDetail(payload []byte) string {
	var failure failureResponse
	if err := json.Unmarshal(payload, &failure); err == nil {
		if detail := strings.TrimSpace(failure.Detail); detail != "" {
			return detail
		}
	}
	return genericRejection
}
