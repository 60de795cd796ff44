package redisvault

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	"github.com/justicia-ai/leia-auth/internal/ports"
	"github.com/justicia-ai/leia-auth/internal/testutil"
)

func testProfile() *domainauth.UserProfile {
	return &domainauth.UserProfile{
		ID:         "u-1",
		Email:      "test@example.com",
		FullName:   "Test User",
		IsActive:   true,
		IsVerified: true,
		Role:       domainauth.RoleUser,
		CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestVault_SaveLoadClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	vault := New(client)
	ctx := context.Background()

	pair := ports.PersistedPair{Token: "test-token", User: testProfile()}
	require.NoError(t, vault.SavePair(ctx, pair))

	// The canonical key set is written as-is; no consumer-specific
	// key names exist.
	assert.Equal(t, "test-token", client.Get(ctx, "leia:token").Val())
	assert.NotEmpty(t, client.Get(ctx, "leia:user").Val())

	loaded, err := vault.LoadPair(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Present())
	assert.Equal(t, "test-token", loaded.Token)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "test@example.com", loaded.User.Email)
	assert.Equal(t, domainauth.RoleUser, loaded.User.Role)

	require.NoError(t, vault.ClearPair(ctx))
	empty, err := vault.LoadPair(ctx)
	require.NoError(t, err)
	assert.False(t, empty.Present())
	assert.False(t, empty.Mismatched())
}

func TestVault_ClearPairIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	vault := New(client)
	ctx := context.Background()

	require.NoError(t, vault.ClearPair(ctx))
	require.NoError(t, vault.ClearPair(ctx))
}

func TestVault_RefusesPartialPair(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	vault := New(client)
	ctx := context.Background()

	err := vault.SavePair(ctx, ports.PersistedPair{Token: "lonely-token"})
	require.Error(t, err)
	assert.Empty(t, client.Get(ctx, "leia:token").Val())

	err = vault.SavePair(ctx, ports.PersistedPair{User: testProfile()})
	require.Error(t, err)
}

func TestVault_LoadPair_ReportsMismatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	vault := New(client)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "leia:token", "orphan", 0).Err())

	pair, err := vault.LoadPair(ctx)
	require.NoError(t, err)
	assert.True(t, pair.Mismatched())
}

func TestVault_LoadPair_CorruptProfileTreatedAsMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	vault := New(client)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "leia:token", "tok", 0).Err())
	require.NoError(t, client.Set(ctx, "leia:user", "{not json", 0).Err())

	pair, err := vault.LoadPair(ctx)
	require.NoError(t, err)
	assert.Nil(t, pair.User)
	assert.True(t, pair.Mismatched())
}

func TestVault_ClearAnonymousUsage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	vault := New(client)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "leia:anon_usage", "7", 0).Err())
	require.NoError(t, vault.ClearAnonymousUsage(ctx))
	assert.Empty(t, client.Get(ctx, "leia:anon_usage").Val())
}

func TestVault_CustomPrefix(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client := testutil.SetupTestRedis(t)
	vault := NewWithPrefix(client, "staging:")
	ctx := context.Background()

	require.NoError(t, vault.SavePair(ctx, ports.PersistedPair{Token: "tok", User: testProfile()}))
	assert.Equal(t, "tok", client.Get(ctx, "staging:token").Val())
}
