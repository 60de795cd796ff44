package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/justicia-ai/leia-auth/config"
	"github.com/justicia-ai/leia-auth/internal/adapters/devauth"
	"github.com/justicia-ai/leia-auth/internal/adapters/identityapi"
	"github.com/justicia-ai/leia-auth/internal/adapters/oidc"
	"github.com/justicia-ai/leia-auth/internal/adapters/redisvault"
	"github.com/justicia-ai/leia-auth/internal/data"
	"github.com/justicia-ai/leia-auth/internal/observability/metrics"
	"github.com/justicia-ai/leia-auth/internal/observability/statsd"
	"github.com/justicia-ai/leia-auth/internal/ports"
	"github.com/justicia-ai/leia-auth/internal/service"
	"github.com/justicia-ai/leia-auth/internal/session"
)

// AuthDeps groups infrastructure dependencies for BuildAuthService.
type AuthDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// AuthRuntime is the assembled session subsystem.
type AuthRuntime struct {
	Service  *service.AuthService
	Store    *session.Store
	Provider ports.AuthProvider
}

// BuildAuthService wires the session subsystem: vault, identity
// gateway, external provider, store, audit trail, and metrics.
func BuildAuthService(deps AuthDeps) (*AuthRuntime, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	vault := redisvault.NewWithPrefix(deps.RedisClient, cfg.Auth.VaultPrefix)

	gateway, err := identityapi.New(identityapi.Config{
		BaseURL: cfg.Auth.IdentityAPI.BaseURL,
		Timeout: cfg.Auth.IdentityAPI.Timeout,
		Claims: identityapi.ClaimPaths{
			Role:             cfg.Auth.IdentityAPI.RolePath,
			ProfessionalType: cfg.Auth.IdentityAPI.ProfessionalTypePath,
			FullName:         cfg.Auth.IdentityAPI.FullNamePath,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build identity gateway: %w", err)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(session.StoreOptions{
		Vault:   vault,
		Gateway: gateway,
		Logger:  logger,
	})

	sink, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.StatsdEnabled,
		Address: cfg.Observability.StatsdAddress,
		Prefix:  cfg.Observability.StatsdPrefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build statsd client: %w", err)
	}

	var events ports.AuthEventRecorder
	if deps.DB != nil {
		events = data.NewAuthEventRepo(deps.DB)
	}

	svc := service.NewAuthService(service.AuthServiceOptions{
		Store:      store,
		Gateway:    gateway,
		Navigation: config.DefaultNavigation(),
		Events:     events,
		Metrics:    metrics.NewAuthRecorder(sink),
		Logger:     logger,
	})

	return &AuthRuntime{Service: svc, Store: store, Provider: provider}, nil
}

// buildProvider selects the external-provider implementation by mode.
//
//nolint:ireturn // callers depend on the port, not a concrete provider.
func buildProvider(cfg *config.AppConfig) (ports.AuthProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeOAuth:
		provider, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     cfg.Auth.OAuth.ClientID,
			ClientSecret: cfg.Auth.OAuth.ClientSecret,
			RedirectURL:  cfg.Auth.OAuth.RedirectURL,
			Scope:        cfg.Auth.OAuth.Scope,
			DiscoveryURL: cfg.Auth.OAuth.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc provider: %w", err)
		}
		return provider, nil

	case config.AuthModeMock:
		provider, err := devauth.NewProvider(devauth.Config{Email: cfg.Auth.DevAuth.Email})
		if err != nil {
			return nil, fmt.Errorf("build dev auth provider: %w", err)
		}
		return provider, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}
