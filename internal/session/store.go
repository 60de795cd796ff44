package session

// Package session holds the process-wide session store: the single
// source of truth for "am I logged in, and as what". In-memory state is
// a cache over the durable vault, rehydrated once at startup; the vault
// is the source of truth across restarts.

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	apperrors "github.com/justicia-ai/leia-auth/internal/errors"
	"github.com/justicia-ai/leia-auth/internal/ports"
)

// StoreOptions groups dependencies for Store.
type StoreOptions struct {
	Vault   ports.SessionVault
	Gateway ports.IdentityGateway
	Logger  *slog.Logger
}

// Store owns the login/logout state transitions. All mutating paths
// funnel through Establish and Logout, so the persisted pair and the
// in-memory cache can never diverge after a write.
type Store struct {
	vault   ports.SessionVault
	gateway ports.IdentityGateway
	logger  *slog.Logger

	mu       sync.RWMutex
	loading  bool
	token    string
	user     *domainauth.UserProfile
	onChange []func(domainauth.Session)
}

// NewStore creates a store in the indeterminate startup state.
// Consumers reading before Hydrate completes see IsLoading=true and
// must treat the session as indeterminate, not as logged-out.
func NewStore(opts StoreOptions) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		vault:   opts.Vault,
		gateway: opts.Gateway,
		logger:  logger,
		loading: true,
	}
}

// OnChange registers a callback invoked after every completed state
// transition. The persisted write always precedes the callback, so an
// observer reacting to IsAuthenticated=true can rely on the vault
// already holding the pair. Register before Hydrate.
func (s *Store) OnChange(fn func(domainauth.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Snapshot returns the current session. Reads are synchronous and
// always reflect the latest completed write.
func (s *Store) Snapshot() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domainauth.Session {
	return domainauth.Session{
		IsLoading: s.loading,
		Token:     s.token,
		User:      s.user,
	}
}

// Hydrate performs the one-time startup check: read the persisted pair,
// trust it optimistically when complete (the backend is consulted
// lazily, not at startup), and clear both halves when only one is
// present. IsLoading transitions true→false exactly once per store
// lifetime; a second call is a no-op.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	if !s.loading {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	pair, err := s.vault.LoadPair(ctx)
	if err != nil {
		return fmt.Errorf("hydrate session: %w", err)
	}

	if pair.Mismatched() {
		// Invalid pairing: one half without the other is logged-out.
		if clearErr := s.vault.ClearPair(ctx); clearErr != nil {
			return fmt.Errorf("clear mismatched session pair: %w", clearErr)
		}
		s.logger.WarnContext(ctx, "discarded mismatched persisted session pair")
		pair = ports.PersistedPair{}
	}

	s.mu.Lock()
	if !s.loading {
		// Lost a race with a concurrent Hydrate; its result stands.
		s.mu.Unlock()
		return nil
	}
	if pair.Present() {
		s.token = pair.Token
		s.user = pair.User
	}
	s.loading = false
	snap := s.snapshotLocked()
	callbacks := s.callbacksLocked()
	s.mu.Unlock()

	notify(callbacks, snap)
	return nil
}

// Login delegates to the identity gateway and, on success, establishes
// the session. On failure the prior session state is left untouched and
// the backend-provided reason is surfaced to the caller.
func (s *Store) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	cred, err := s.gateway.Authenticate(ctx, email, password)
	if err != nil {
		return s.Snapshot(), err
	}

	if err := s.Establish(ctx, cred.Token, cred.User); err != nil {
		return s.Snapshot(), err
	}
	return s.Snapshot(), nil
}

// Establish is the single convergence point for both session writers:
// credential login and the redirect-landing correlator. It persists the
// pair, wipes the anonymous-usage counter, and only then exposes the
// new state in memory — no consumer can observe IsAuthenticated=true
// before the backing write completes.
func (s *Store) Establish(ctx context.Context, token string, user domainauth.UserProfile) error {
	if token == "" {
		return apperrors.Validation("cannot establish a session without a token")
	}

	pair := ports.PersistedPair{Token: token, User: &user}
	if err := s.vault.SavePair(ctx, pair); err != nil {
		return fmt.Errorf("persist session pair: %w", err)
	}

	// Upgrading to an authenticated session wipes the anonymous quota.
	if err := s.vault.ClearAnonymousUsage(ctx); err != nil {
		s.logger.WarnContext(ctx, "clear anonymous usage failed", "error", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	snap := s.snapshotLocked()
	callbacks := s.callbacksLocked()
	s.mu.Unlock()

	notify(callbacks, snap)
	return nil
}

// Logout clears the in-memory state unconditionally and then the
// persisted pair. A vault failure is logged, never surfaced: logout
// must not be blocked by network reachability. Calling Logout when
// already logged out is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	snap := s.snapshotLocked()
	callbacks := s.callbacksLocked()
	s.mu.Unlock()

	if err := s.vault.ClearPair(ctx); err != nil {
		s.logger.WarnContext(ctx, "clear persisted session pair failed", "error", err)
	}

	notify(callbacks, snap)
	return nil
}

func (s *Store) callbacksLocked() []func(domainauth.Session) {
	out := make([]func(domainauth.Session), len(s.onChange))
	copy(out, s.onChange)
	return out
}

func notify(callbacks []func(domainauth.Session), snap domainauth.Session) {
	for _, fn := range callbacks {
		fn(snap)
	}
}
