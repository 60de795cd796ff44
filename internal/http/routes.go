package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	"github.com/justicia-ai/leia-auth/internal/ports"
	"github.com/justicia-ai/leia-auth/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Provider     ports.AuthProvider
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. The session scope
// wraps everything so any handler (and anything it calls) may use the
// session accessor; the auth and role guards protect the dashboard
// area. Recover and Logging are applied by the bootstrap layer.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Provider:     services.Provider,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	registerAuthRoutes(mux, authHandlers)
	registerDashboardRoutes(mux, &DashboardHandlers{}, services.Auth)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return SessionScope(services.Auth.Store())(mux)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/session", h.Session)
	mux.HandleFunc("GET /api/navigation", h.Navigation)

	mux.HandleFunc("GET /auth/login", h.BeginProviderLogin)
	mux.HandleFunc("GET /auth/oidc/callback", h.ProviderCallback)
	mux.HandleFunc("GET /auth/callback", h.Landing)
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandlers, auth *service.AuthService) {
	requireAuth := RequireAuth(auth.Navigation())

	mux.Handle("GET /dashboard/usuario", Chain(
		http.HandlerFunc(h.Usuario),
		requireAuth,
		RequireRole(domainauth.RoleUser),
	))
	mux.Handle("GET /dashboard/profesional", Chain(
		http.HandlerFunc(h.Profesional),
		requireAuth,
		RequireRole(domainauth.RoleLawyer),
	))
}
