package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockauth "github.com/justicia-ai/leia-auth/internal/mocks/auth"
)

func TestUse_OutsideScope(t *testing.T) {
	_, err := Use(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutsideScope)
	assert.Equal(t, "session: accessor used outside an initialized session scope", err.Error())
}

func TestUse_InsideScope(t *testing.T) {
	store := newTestStore(mockauth.NewMemoryVault(), mockauth.NewMockGateway())
	ctx := Install(context.Background(), store)

	got, err := Use(ctx)
	require.NoError(t, err)
	assert.Same(t, store, got)
}

func TestMustUse_PanicsOutsideScope(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "MustUse must fail loudly outside the scope")
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrOutsideScope)
	}()
	MustUse(context.Background())
}

func TestMustUse_ReturnsStoreInsideScope(t *testing.T) {
	store := newTestStore(mockauth.NewMemoryVault(), mockauth.NewMockGateway())
	ctx := Install(context.Background(), store)
	assert.Same(t, store, MustUse(ctx))
}
