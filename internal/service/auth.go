package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/justicia-ai/leia-auth/config"
	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	"github.com/justicia-ai/leia-auth/internal/domain/model"
	"github.com/justicia-ai/leia-auth/internal/domain/roles"
	apperrors "github.com/justicia-ai/leia-auth/internal/errors"
	"github.com/justicia-ai/leia-auth/internal/observability/metrics"
	"github.com/justicia-ai/leia-auth/internal/ports"
	"github.com/justicia-ai/leia-auth/internal/session"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Store      *session.Store
	Gateway    ports.IdentityGateway
	Navigation config.NavigationConfig
	Events     ports.AuthEventRecorder // optional
	Metrics    *metrics.AuthRecorder   // optional
	Logger     *slog.Logger
}

// AuthService orchestrates the session flows: credential login, logout,
// and the redirect-landing correlation. It adds auditing and metrics on
// top of the store; all session state lives in the store.
type AuthService struct {
	store   *session.Store
	gateway ports.IdentityGateway
	nav     config.NavigationConfig
	events  ports.AuthEventRecorder
	metrics *metrics.AuthRecorder
	logger  *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		store:   opts.Store,
		gateway: opts.Gateway,
		nav:     opts.Navigation,
		events:  opts.Events,
		metrics: opts.Metrics,
		logger:  logger,
	}
}

// Store exposes the underlying session store for scope installation.
func (s *AuthService) Store() *session.Store { return s.store }

// Navigation exposes the navigation tables for role resolution.
func (s *AuthService) Navigation() config.NavigationConfig { return s.nav }

// Login performs a credential login. On failure the prior session is
// untouched and the error carries the backend-supplied reason.
func (s *AuthService) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	snap, err := s.store.Login(ctx, email, password)
	if err != nil {
		s.metrics.LoginFailure(apperrors.IsTransport(err))
		s.record(ctx, model.AuthEvent{
			Kind:           model.AuthEventLoginFailed,
			Email:          email,
			Reason:         err.Error(),
			TransportFault: apperrors.IsTransport(err),
		})
		return snap, err
	}

	s.metrics.LoginSuccess()
	s.record(ctx, model.AuthEvent{Kind: model.AuthEventLoginSucceeded, Email: email})
	return snap, nil
}

// Logout clears the session unconditionally.
func (s *AuthService) Logout(ctx context.Context) error {
	snap := s.store.Snapshot()
	if err := s.store.Logout(ctx); err != nil {
		return err
	}

	s.metrics.Logout()
	email := ""
	if snap.User != nil {
		email = snap.User.Email
	}
	s.record(ctx, model.AuthEvent{Kind: model.AuthEventLogout, Email: email})
	return nil
}

// Session returns the current snapshot.
func (s *AuthService) Session() domainauth.Session {
	return s.store.Snapshot()
}

// RoleView resolves the role-specific view of the current session.
func (s *AuthService) RoleView() roles.View {
	return roles.Resolve(s.store.Snapshot(), s.nav)
}

// record persists an audit event best-effort; failures are logged and
// never propagate into an auth flow.
func (s *AuthService) record(ctx context.Context, event model.AuthEvent) {
	if s.events == nil {
		return
	}
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC()
	if err := s.events.Record(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record auth event failed", "kind", event.Kind, "error", err)
	}
}
