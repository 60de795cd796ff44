package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/justicia-ai/leia-auth/config"
	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	"github.com/justicia-ai/leia-auth/internal/domain/roles"
	"github.com/justicia-ai/leia-auth/internal/session"
)

// LoginRoute is where unauthenticated requests to protected routes are sent.
const LoginRoute = "/login"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
// A session accessor used outside its scope panics with a fixed error
// and lands here; that is a composition bug, not a runtime condition.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionScope returns a middleware that installs the session store in
// the request context. Everything below it may call session.Use; the
// guards below assume the scope is present and fail loudly otherwise.
func SessionScope(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := session.Install(r.Context(), store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth returns a middleware guarding protected routes.
// While the session is still loading it renders nothing and never
// redirects; once resolved, unauthenticated requests are sent to the
// login route and authenticated ones proceed with the role view in
// context.
func RequireAuth(nav config.NavigationConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.MustUse(r.Context())
			snap := store.Snapshot()

			if snap.IsLoading {
				// Indeterminate is not logged-out; no premature redirect.
				w.WriteHeader(http.StatusNoContent)
				return
			}
			if !snap.IsAuthenticated() {
				http.Redirect(w, r, LoginRoute, http.StatusSeeOther)
				return
			}

			view := roles.Resolve(snap, nav)
			ctx := SetViewInContext(r.Context(), snap, view)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware restricting a route to one role.
// It must run below RequireAuth. A role mismatch redirects to the
// visitor's own dashboard home rather than rendering a forbidden page.
func RequireRole(required domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			view, ok := ViewFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, LoginRoute, http.StatusSeeOther)
				return
			}
			if view.Role != required {
				http.Redirect(w, r, view.DashboardHome, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Chain composes middlewares left to right: the first argument is the
// outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
