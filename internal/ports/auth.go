package ports

// Package ports defines interfaces (hexagonal ports) for session and
// access-control behavior. Implementations live in internal/adapters
// and internal/data; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	"github.com/justicia-ai/leia-auth/internal/domain/model"
)

// Credential is the result of a successful credential login: the opaque
// bearer token and the authenticated profile, always handled as a pair.
type Credential struct {
	Token string
	User  domainauth.UserProfile
}

// IdentityGateway issues the two identity-API operations. It is a pure
// request/response translator with no state of its own: expected auth
// failures come back as typed errors, transport faults as a distinct
// error kind.
type IdentityGateway interface {
	// Authenticate exchanges credentials for a bearer token and profile.
	Authenticate(ctx context.Context, email, password string) (Credential, error)

	// FetchProfile resolves a bearer token to the profile it belongs to.
	FetchProfile(ctx context.Context, token string) (domainauth.UserProfile, error)
}

// PersistedPair is the durable token/profile pair. Both halves are
// written and cleared together; a pair with exactly one half present is
// invalid and treated as logged-out.
type PersistedPair struct {
	Token string
	User  *domainauth.UserProfile
}

// Present reports whether both halves are stored.
func (p PersistedPair) Present() bool { return p.Token != "" && p.User != nil }

// Mismatched reports the invalid one-half-only state.
func (p PersistedPair) Mismatched() bool {
	return !p.Present() && (p.Token != "" || p.User != nil)
}

// SessionVault is the single narrow interface to durable session
// storage. Both session writers (credential login and the redirect
// landing) go through it, which makes key-name convergence structural
// rather than conventional.
type SessionVault interface {
	LoadPair(ctx context.Context) (PersistedPair, error)
	SavePair(ctx context.Context, pair PersistedPair) error
	ClearPair(ctx context.Context) error

	// ClearAnonymousUsage removes the anonymous-usage counter owned by
	// the unauthenticated flow. Establishing a session wipes the
	// anonymous quota rather than decrementing it.
	ClearAnonymousUsage(ctx context.Context) error
}

// BeginInput carries inputs for initiating an external-provider flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the provider code exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// ProviderIdentity is what the external provider hands back: a bearer
// token accepted by the identity API and an informational email hint.
// The authoritative profile always comes from IdentityGateway.
type ProviderIdentity struct {
	Token     string
	EmailHint string
}

// AuthProvider initiates and completes a login flow against an external
// identity provider.
type AuthProvider interface {
	// Begin starts the flow and returns the provider auth URL, an
	// opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the flow, verifying state and nonce.
	Exchange(ctx context.Context, in ExchangeInput) (ProviderIdentity, error)
}

// AuthEventRecorder persists audit events for session lifecycle
// actions. Recording is best-effort and must never block an auth flow.
type AuthEventRecorder interface {
	Record(ctx context.Context, event model.AuthEvent) error
}
