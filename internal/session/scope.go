package session

import (
	"context"
	"errors"
)

// ErrOutsideScope is the fixed error returned when the session accessor
// is used outside an installed scope. This is a programming-contract
// violation (structurally invalid composition), never a recoverable
// runtime condition, so the accessor fails loudly instead of returning
// a default.
var ErrOutsideScope = errors.New("session: accessor used outside an initialized session scope")

type scopeKey struct{}

// Install returns a context carrying the store. The HTTP layer installs
// the scope at the top of the protected area; anything below it may
// call Use.
func Install(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, scopeKey{}, store)
}

// Use returns the store installed in ctx, or ErrOutsideScope.
func Use(ctx context.Context) (*Store, error) {
	store, ok := ctx.Value(scopeKey{}).(*Store)
	if !ok || store == nil {
		return nil, ErrOutsideScope
	}
	return store, nil
}

// MustUse is Use for call sites that are structurally inside the scope;
// it panics with ErrOutsideScope when the contract is broken.
func MustUse(ctx context.Context) *Store {
	store, err := Use(ctx)
	if err != nil {
		panic(err)
	}
	return store
}
