package httpx

import (
	"context"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	"github.com/justicia-ai/leia-auth/internal/domain/roles"
)

// viewKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type viewKey struct{}

type requestView struct {
	Session domainauth.Session
	View    roles.View
}

// SetViewInContext returns a child context that carries the session
// snapshot and its resolved role view.
func SetViewInContext(ctx context.Context, sess domainauth.Session, view roles.View) context.Context {
	return context.WithValue(ctx, viewKey{}, requestView{Session: sess, View: view})
}

// ViewFromContext returns the role view from context and a boolean
// indicating presence. The view is only present below the auth guards.
func ViewFromContext(ctx context.Context) (roles.View, bool) {
	if rv, ok := ctx.Value(viewKey{}).(requestView); ok {
		return rv.View, true
	}
	return roles.View{}, false
}

// SessionFromContext retrieves the session snapshot guarded requests run
// under. The zero session (not loading, unauthenticated) is returned
// when no guard has run.
func SessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	if rv, ok := ctx.Value(viewKey{}).(requestView); ok {
		return rv.Session, true
	}
	return domainauth.Session{}, false
}
