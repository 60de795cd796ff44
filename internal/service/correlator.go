package service

// The redirect-landing correlator consumes identity-provider redirect
// parameters and converges them onto the same persisted session
// representation as credential login. One shot, four terminal
// outcomes, no retries.

import (
	"context"
	"time"

	"github.com/justicia-ai/leia-auth/internal/domain/model"
	"github.com/justicia-ai/leia-auth/internal/domain/roles"
	apperrors "github.com/justicia-ai/leia-auth/internal/errors"
)

// FallbackRoute is where failed landings are sent.
const FallbackRoute = "/login"

// Fallback redirect delays. Failed exchanges give the user a moment to
// read the message; malformed entries bounce faster.
const (
	FailureRedirectDelay   = 3 * time.Second
	MalformedRedirectDelay = 2 * time.Second
)

// Localized transient messages shown before a fallback redirect.
const (
	msgProviderError      = "No se pudo completar el inicio de sesión. Serás redirigido en unos segundos."
	msgExchangeFailed     = "Token inválido o expirado. Serás redirigido en unos segundos."
	msgMissingCredentials = "Faltan credenciales de acceso. Serás redirigido en unos segundos."
)

// errMalformedEntry is the canonical failure recorded when a landing
// carries neither credentials nor an error signal.
var errMalformedEntry = apperrors.MalformedRedirect("redirect entry carried neither credentials nor an error signal")

// LandingKind names a terminal outcome of the redirect landing.
type LandingKind string

const (
	LandingEstablished LandingKind = "established"
	LandingProviderErr LandingKind = "provider_error"
	LandingExchangeErr LandingKind = "exchange_failed"
	LandingMalformed   LandingKind = "malformed"
)

// Landing carries the three redirect signals. EmailHint is
// informational only; the authoritative profile always comes from the
// identity API.
type Landing struct {
	Token      string
	EmailHint  string
	ErrorParam string
}

// LandingOutcome is what the HTTP layer renders: either an immediate
// transition into the protected area, or a transient message with a
// delayed fallback redirect. Failed outcomes never touch persisted
// session state.
type LandingOutcome struct {
	Kind       LandingKind
	Message    string
	RedirectTo string
	Delay      time.Duration
}

// Established reports whether the landing produced a session.
func (o LandingOutcome) Established() bool { return o.Kind == LandingEstablished }

// CompleteRedirectLanding runs the landing state machine. A network
// failure during the profile exchange is handled identically to an
// explicit token rejection; only the audit trail tells them apart.
func (s *AuthService) CompleteRedirectLanding(ctx context.Context, landing Landing) LandingOutcome {
	switch {
	case landing.ErrorParam != "":
		s.metrics.LandingOutcome(string(LandingProviderErr), false)
		s.record(ctx, model.AuthEvent{
			Kind:   model.AuthEventLandingFailed,
			Email:  landing.EmailHint,
			Reason: "provider error: " + landing.ErrorParam,
		})
		return LandingOutcome{
			Kind:       LandingProviderErr,
			Message:    msgProviderError,
			RedirectTo: FallbackRoute,
			Delay:      FailureRedirectDelay,
		}

	case landing.Token != "" && landing.EmailHint != "":
		return s.exchangeLanding(ctx, landing)

	default:
		s.metrics.LandingOutcome(string(LandingMalformed), false)
		s.record(ctx, model.AuthEvent{
			Kind:   model.AuthEventLandingMalformed,
			Email:  landing.EmailHint,
			Reason: errMalformedEntry.Error(),
		})
		return LandingOutcome{
			Kind:       LandingMalformed,
			Message:    msgMissingCredentials,
			RedirectTo: FallbackRoute,
			Delay:      MalformedRedirectDelay,
		}
	}
}

// exchangeLanding resolves the redirect token to its profile and
// establishes the session through the same entry point credential
// login uses.
func (s *AuthService) exchangeLanding(ctx context.Context, landing Landing) LandingOutcome {
	user, err := s.gateway.FetchProfile(ctx, landing.Token)
	if err != nil {
		s.metrics.LandingOutcome(string(LandingExchangeErr), apperrors.IsTransport(err))
		s.record(ctx, model.AuthEvent{
			Kind:           model.AuthEventLandingFailed,
			Email:          landing.EmailHint,
			Reason:         err.Error(),
			TransportFault: apperrors.IsTransport(err),
		})
		return LandingOutcome{
			Kind:       LandingExchangeErr,
			Message:    msgExchangeFailed,
			RedirectTo: FallbackRoute,
			Delay:      FailureRedirectDelay,
		}
	}

	if err := s.store.Establish(ctx, landing.Token, user); err != nil {
		s.metrics.LandingOutcome(string(LandingExchangeErr), false)
		s.record(ctx, model.AuthEvent{
			Kind:   model.AuthEventLandingFailed,
			Email:  user.Email,
			Reason: err.Error(),
		})
		return LandingOutcome{
			Kind:       LandingExchangeErr,
			Message:    msgExchangeFailed,
			RedirectTo: FallbackRoute,
			Delay:      FailureRedirectDelay,
		}
	}

	s.metrics.LandingOutcome(string(LandingEstablished), false)
	s.record(ctx, model.AuthEvent{Kind: model.AuthEventLandingEstablished, Email: user.Email})

	view := roles.Resolve(s.store.Snapshot(), s.nav)
	return LandingOutcome{
		Kind:       LandingEstablished,
		RedirectTo: view.DashboardHome,
	}
}
