package data

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justicia-ai/leia-auth/internal/domain/model"
	apperrors "github.com/justicia-ai/leia-auth/internal/errors"
	"github.com/justicia-ai/leia-auth/internal/testutil"
)

func newEvent(kind model.AuthEventKind, email string) model.AuthEvent {
	return model.AuthEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

func TestAuthEventRepo_RecordAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewAuthEventRepo(db)
	ctx := context.Background()

	first := newEvent(model.AuthEventLoginSucceeded, "test@example.com")
	require.NoError(t, repo.Record(ctx, first))

	second := newEvent(model.AuthEventLogout, "test@example.com")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Record(ctx, second))

	events, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, model.AuthEventLogout, events[0].Kind)
	assert.Equal(t, model.AuthEventLoginSucceeded, events[1].Kind)
}

func TestAuthEventRepo_RecordFailureDetails(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewAuthEventRepo(db)
	ctx := context.Background()

	event := newEvent(model.AuthEventLoginFailed, "test@example.com")
	event.Reason = "Invalid credentials"
	event.TransportFault = true
	require.NoError(t, repo.Record(ctx, event))

	events, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Invalid credentials", events[0].Reason)
	assert.True(t, events[0].TransportFault)
}

func TestAuthEventRepo_RejectsInvalidEvent(t *testing.T) {
	// Validation runs before any query, so no database is needed.
	repo := NewAuthEventRepo(nil)
	err := repo.Record(context.Background(), model.AuthEvent{ID: uuid.NewString()})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAuthEventRepo_DuplicateIDConflicts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	repo := NewAuthEventRepo(db)
	ctx := context.Background()

	event := newEvent(model.AuthEventLogout, "")
	require.NoError(t, repo.Record(ctx, event))

	err := repo.Record(ctx, event)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}
