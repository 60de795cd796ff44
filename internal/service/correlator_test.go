package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	"github.com/justicia-ai/leia-auth/internal/domain/model"
	apperrors "github.com/justicia-ai/leia-auth/internal/errors"
	mockauth "github.com/justicia-ai/leia-auth/internal/mocks/auth"
)

func TestCompleteRedirectLanding_ProviderError(t *testing.T) {
	gateway := mockauth.NewMockGateway()
	gateway.FetchProfileFunc = func(_ context.Context, _ string) (domainauth.UserProfile, error) {
		t.Fatal("provider errors must not reach the identity API")
		return domainauth.UserProfile{}, nil
	}
	f := newServiceFixture(t, gateway)

	outcome := f.svc.CompleteRedirectLanding(context.Background(), Landing{ErrorParam: "access_denied"})

	assert.Equal(t, LandingProviderErr, outcome.Kind)
	assert.False(t, outcome.Established())
	assert.Equal(t, FallbackRoute, outcome.RedirectTo)
	assert.Equal(t, 3*time.Second, outcome.Delay)
	assert.Contains(t, outcome.Message, "No se pudo completar el inicio de sesión")

	// Nothing persisted on a failed landing.
	assert.Zero(t, f.vault.SaveCalls)
	require.Len(t, f.events.Events, 1)
	assert.Equal(t, model.AuthEventLandingFailed, f.events.Events[0].Kind)
}

func TestCompleteRedirectLanding_EstablishesSession(t *testing.T) {
	gateway := mockauth.NewMockGateway()
	f := newServiceFixture(t, gateway)
	f.vault.AnonUsage = "5"

	outcome := f.svc.CompleteRedirectLanding(context.Background(), Landing{
		Token:     "test-token",
		EmailHint: "test@example.com",
	})

	require.True(t, outcome.Established())
	assert.Equal(t, "/dashboard/usuario", outcome.RedirectTo)
	assert.Zero(t, outcome.Delay)
	assert.Empty(t, outcome.Message)

	// The landing converges on the same persisted representation as
	// credential login: both halves written, anonymous counter wiped.
	pair := f.vault.Pair()
	assert.True(t, pair.Present())
	assert.Equal(t, "test-token", pair.Token)
	assert.Empty(t, f.vault.AnonUsage)
	assert.True(t, f.svc.Session().IsAuthenticated())
	assert.Equal(t, []model.AuthEventKind{model.AuthEventLandingEstablished}, f.events.Kinds())
}

func TestCompleteRedirectLanding_LawyerLandsOnProfessionalDashboard(t *testing.T) {
	gateway := mockauth.NewMockGateway()
	gateway.DefaultUser.Role = domainauth.RoleLawyer
	gateway.DefaultUser.ProfessionalType = domainauth.ProfessionalNotario
	f := newServiceFixture(t, gateway)

	outcome := f.svc.CompleteRedirectLanding(context.Background(), Landing{
		Token:     "test-token",
		EmailHint: "notario@example.com",
	})

	require.True(t, outcome.Established())
	assert.Equal(t, "/dashboard/profesional", outcome.RedirectTo)
}

func TestCompleteRedirectLanding_ExchangeRejected(t *testing.T) {
	gateway := mockauth.NewMockGateway()
	gateway.FetchProfileFunc = func(_ context.Context, _ string) (domainauth.UserProfile, error) {
		return domainauth.UserProfile{}, apperrors.TokenInvalid("invalid token")
	}
	f := newServiceFixture(t, gateway)

	outcome := f.svc.CompleteRedirectLanding(context.Background(), Landing{
		Token:     "expired-token",
		EmailHint: "test@example.com",
	})

	assert.Equal(t, LandingExchangeErr, outcome.Kind)
	assert.Equal(t, FallbackRoute, outcome.RedirectTo)
	assert.Equal(t, 3*time.Second, outcome.Delay)
	assert.Contains(t, outcome.Message, "Token inválido o expirado")

	assert.Zero(t, f.vault.SaveCalls)
	assert.False(t, f.svc.Session().IsAuthenticated())
	require.Len(t, f.events.Events, 1)
	assert.False(t, f.events.Events[0].TransportFault)
}

func TestCompleteRedirectLanding_TransportFaultHandledAsExchangeFailure(t *testing.T) {
	gateway := mockauth.NewMockGateway()
	gateway.FetchProfileFunc = func(_ context.Context, _ string) (domainauth.UserProfile, error) {
		return domainauth.UserProfile{}, apperrors.Transportf(errors.New("dial tcp: refused"), "identity API unreachable")
	}
	f := newServiceFixture(t, gateway)

	outcome := f.svc.CompleteRedirectLanding(context.Background(), Landing{
		Token:     "test-token",
		EmailHint: "test@example.com",
	})

	// The user-visible outcome is identical to a rejection; only the
	// audit trail records the transport fault.
	assert.Equal(t, LandingExchangeErr, outcome.Kind)
	assert.Contains(t, outcome.Message, "Token inválido o expirado")
	require.Len(t, f.events.Events, 1)
	assert.True(t, f.events.Events[0].TransportFault)
}

func TestCompleteRedirectLanding_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		landing Landing
	}{
		{"empty", Landing{}},
		{"token without hint", Landing{Token: "tok"}},
		{"hint without token", Landing{EmailHint: "test@example.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newServiceFixture(t, mockauth.NewMockGateway())
			outcome := f.svc.CompleteRedirectLanding(context.Background(), tc.landing)

			assert.Equal(t, LandingMalformed, outcome.Kind)
			assert.Equal(t, FallbackRoute, outcome.RedirectTo)
			assert.Equal(t, 2*time.Second, outcome.Delay)
			assert.Contains(t, outcome.Message, "Faltan credenciales")
			assert.Zero(t, f.vault.SaveCalls)
			require.Len(t, f.events.Events, 1)
			assert.Equal(t, model.AuthEventLandingMalformed, f.events.Events[0].Kind)
				assert.Equal(t, "redirect entry carried neither credentials nor an error signal", f.events.Events[0].Reason)
		})
	}
}

func TestCompleteRedirectLanding_ConvergesWithCredentialLogin(t *testing.T) {
	ctx := context.Background()

	viaLogin := newServiceFixture(t, mockauth.NewMockGateway())
	_, err := viaLogin.svc.Login(ctx, "test@example.com", "TestPass123")
	require.NoError(t, err)

	viaLanding := newServiceFixture(t, mockauth.NewMockGateway())
	outcome := viaLanding.svc.CompleteRedirectLanding(ctx, Landing{
		Token:     "test-token",
		EmailHint: "test@example.com",
	})
	require.True(t, outcome.Established())

	// Both entry paths produce the same persisted pair and the same
	// resolved role view.
	assert.Equal(t, viaLogin.vault.Token, viaLanding.vault.Token)
	assert.Equal(t, viaLogin.svc.RoleView(), viaLanding.svc.RoleView())
}

func TestCompleteRedirectLanding_EstablishFailure(t *testing.T) {
	gateway := mockauth.NewMockGateway()
	f := newServiceFixture(t, gateway)
	f.vault.FailSave = errors.New("redis down")

	outcome := f.svc.CompleteRedirectLanding(context.Background(), Landing{
		Token:     "test-token",
		EmailHint: "test@example.com",
	})

	assert.Equal(t, LandingExchangeErr, outcome.Kind)
	assert.False(t, f.svc.Session().IsAuthenticated())
}
