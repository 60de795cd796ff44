package httpx

// Shared fixtures for handler and middleware tests.

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/justicia-ai/leia-auth/config"
	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	mockauth "github.com/justicia-ai/leia-auth/internal/mocks/auth"
	"github.com/justicia-ai/leia-auth/internal/service"
	"github.com/justicia-ai/leia-auth/internal/session"
)

type testFixture struct {
	Handler  http.Handler
	Store    *session.Store
	Vault    *mockauth.MemoryVault
	Gateway  *mockauth.MockGateway
	Provider *mockauth.MockProvider
	Events   *mockauth.MemoryEventRecorder
	Svc      *service.AuthService
}

// newTestFixture builds a full router over in-memory doubles. The store
// starts in the loading state; call hydrate or establish as needed.
func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	vault := mockauth.NewMemoryVault()
	gateway := mockauth.NewMockGateway()
	provider := mockauth.NewMockProvider()
	events := mockauth.NewMemoryEventRecorder()

	store := session.NewStore(session.StoreOptions{
		Vault:   vault,
		Gateway: gateway,
		Logger:  slog.Default(),
	})
	svc := service.NewAuthService(service.AuthServiceOptions{
		Store:      store,
		Gateway:    gateway,
		Navigation: config.DefaultNavigation(),
		Events:     events,
		Logger:     slog.Default(),
	})

	handler := NewRouter(RouterServices{
		Auth:     svc,
		Provider: provider,
		Logger:   slog.Default(),
	})

	return &testFixture{
		Handler:  handler,
		Store:    store,
		Vault:    vault,
		Gateway:  gateway,
		Provider: provider,
		Events:   events,
		Svc:      svc,
	}
}

// hydrate resolves the loading state.
func (f *testFixture) hydrate(t *testing.T) {
	t.Helper()
	if err := f.Store.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate store: %v", err)
	}
}

// establish hydrates and signs in the given profile.
func (f *testFixture) establish(t *testing.T, user domainauth.UserProfile) {
	t.Helper()
	f.hydrate(t)
	if err := f.Store.Establish(context.Background(), "test-token", user); err != nil {
		t.Fatalf("establish session: %v", err)
	}
}

func clientProfile() domainauth.UserProfile {
	return domainauth.UserProfile{
		ID:    "u-1",
		Email: "cliente@example.com",
		Role:  domainauth.RoleUser,
	}
}

func lawyerProfile(pt domainauth.ProfessionalType) domainauth.UserProfile {
	return domainauth.UserProfile{
		ID:               "u-2",
		Email:            "letrado@example.com",
		Role:             domainauth.RoleLawyer,
		ProfessionalType: pt,
	}
}
