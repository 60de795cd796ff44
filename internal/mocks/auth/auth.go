package auth

// Package auth contains simple hand-written test doubles for the
// session ports. These are lightweight and suitable for unit tests
// without codegen.

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	"github.com/justicia-ai/leia-auth/internal/domain/model"
	apperrors "github.com/justicia-ai/leia-auth/internal/errors"
	"github.com/justicia-ai/leia-auth/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionVault      = (*MemoryVault)(nil)
	_ ports.IdentityGateway   = (*MockGateway)(nil)
	_ ports.AuthProvider      = (*MockProvider)(nil)
	_ ports.AuthEventRecorder = (*MemoryEventRecorder)(nil)
)

// MemoryVault is an in-memory SessionVault. It tracks clear calls so
// tests can assert the persisted-key-removal operations happened.
type MemoryVault struct {
	mu sync.Mutex

	Token     string
	User      *domainauth.UserProfile
	AnonUsage string

	SaveCalls      int
	ClearPairCalls int
	ClearAnonCalls int

	// FailSave and FailClear simulate storage outages.
	FailSave  error
	FailClear error
}

// NewMemoryVault creates an empty vault.
func NewMemoryVault() *MemoryVault { return &MemoryVault{} }

func (v *MemoryVault) LoadPair(_ context.Context) (ports.PersistedPair, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ports.PersistedPair{Token: v.Token, User: cloneUser(v.User)}, nil
}

func (v *MemoryVault) SavePair(_ context.Context, pair ports.PersistedPair) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.SaveCalls++
	if v.FailSave != nil {
		return v.FailSave
	}
	v.Token = pair.Token
	v.User = cloneUser(pair.User)
	return nil
}

func (v *MemoryVault) ClearPair(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ClearPairCalls++
	if v.FailClear != nil {
		return v.FailClear
	}
	v.Token = ""
	v.User = nil
	return nil
}

func (v *MemoryVault) ClearAnonymousUsage(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ClearAnonCalls++
	v.AnonUsage = ""
	return nil
}

// Pair returns the stored pair without going through the interface.
func (v *MemoryVault) Pair() ports.PersistedPair {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ports.PersistedPair{Token: v.Token, User: cloneUser(v.User)}
}

func cloneUser(u *domainauth.UserProfile) *domainauth.UserProfile {
	if u == nil {
		return nil
	}
	copied := *u
	return &copied
}

// MockGateway simulates the identity API with deterministic defaults.
type MockGateway struct {
	AuthenticateFunc func(ctx context.Context, email, password string) (ports.Credential, error)
	FetchProfileFunc func(ctx context.Context, token string) (domainauth.UserProfile, error)

	DefaultToken string
	DefaultUser  domainauth.UserProfile
}

// NewMockGateway creates a MockGateway with sensible defaults.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		DefaultToken: "test-token",
		DefaultUser: domainauth.UserProfile{
			ID:         "user-1",
			Email:      "test@example.com",
			FullName:   "Test User",
			IsActive:   true,
			IsVerified: true,
			Role:       domainauth.RoleUser,
			CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func (m *MockGateway) Authenticate(ctx context.Context, email, password string) (ports.Credential, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	user := m.DefaultUser
	user.Email = email
	return ports.Credential{Token: m.DefaultToken, User: user}, nil
}

func (m *MockGateway) FetchProfile(ctx context.Context, token string) (domainauth.UserProfile, error) {
	if m.FetchProfileFunc != nil {
		return m.FetchProfileFunc(ctx, token)
	}
	if token != m.DefaultToken {
		return domainauth.UserProfile{}, apperrors.TokenInvalid("invalid token")
	}
	return m.DefaultUser, nil
}

// MockProvider simulates an external identity provider with
// deterministic state/nonce values.
type MockProvider struct {
	AuthURL  string
	Identity ports.ProviderIdentity

	callCount int
	mu        sync.Mutex
}

// NewMockProvider creates a MockProvider with sensible defaults.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		AuthURL: "https://mock-idp/auth",
		Identity: ports.ProviderIdentity{
			Token:     "test-token",
			EmailHint: "test@example.com",
		},
	}
}

func (m *MockProvider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	n := m.callCount
	return m.AuthURL, fmt.Sprintf("state-%d", n), fmt.Sprintf("nonce-%d", n), nil
}

func (m *MockProvider) Exchange(_ context.Context, _ ports.ExchangeInput) (ports.ProviderIdentity, error) {
	return m.Identity, nil
}

// MemoryEventRecorder collects audit events for assertions.
type MemoryEventRecorder struct {
	mu     sync.Mutex
	Events []model.AuthEvent
	Fail   error
}

// NewMemoryEventRecorder creates an empty recorder.
func NewMemoryEventRecorder() *MemoryEventRecorder { return &MemoryEventRecorder{} }

func (r *MemoryEventRecorder) Record(_ context.Context, event model.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	r.Events = append(r.Events, event)
	return nil
}

// Kinds returns the recorded event kinds in order.
func (r *MemoryEventRecorder) Kinds() []model.AuthEventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AuthEventKind, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Kind)
	}
	return out
}
