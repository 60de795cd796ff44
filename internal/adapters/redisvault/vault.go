package redisvault

// Package redisvault persists the session pair and the anonymous-usage
// counter in Redis. It is the production implementation of
// ports.SessionVault; both session writers share one instance, so the
// key names used here are the only key names that exist.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/justicia-ai/leia-auth/internal/domain/auth"
	"github.com/justicia-ai/leia-auth/internal/ports"
)

// DefaultPrefix namespaces the canonical key set.
const DefaultPrefix = "leia:"

const (
	tokenKey     = "token"
	userKey      = "user"
	anonUsageKey = "anon_usage"
)

// Vault is a Redis-backed session vault.
type Vault struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.SessionVault = (*Vault)(nil)

// New creates a vault with the default key prefix.
func New(client redis.UniversalClient) *Vault {
	return NewWithPrefix(client, DefaultPrefix)
}

// NewWithPrefix creates a vault with a custom key prefix.
func NewWithPrefix(client redis.UniversalClient, prefix string) *Vault {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Vault{client: client, prefix: prefix}
}

// LoadPair reads both persisted halves. A missing half comes back as
// its zero value; the caller applies the invalid-pairing recovery rule.
func (v *Vault) LoadPair(ctx context.Context) (ports.PersistedPair, error) {
	var pair ports.PersistedPair

	token, err := v.client.Get(ctx, v.prefix+tokenKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ports.PersistedPair{}, fmt.Errorf("vault get token: %w", err)
	}
	pair.Token = token

	raw, err := v.client.Get(ctx, v.prefix+userKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return pair, nil
		}
		return ports.PersistedPair{}, fmt.Errorf("vault get user: %w", err)
	}

	var user domainauth.UserProfile
	if unmarshalErr := json.Unmarshal([]byte(raw), &user); unmarshalErr != nil {
		// A corrupt profile is equivalent to a missing half; the caller
		// clears the pair.
		return pair, nil
	}
	pair.User = &user
	return pair, nil
}

// SavePair writes both halves as whole-value replacements. The two
// writes are sequential; an observer arriving between them sees a
// bounded inconsistency window, never a torn value.
func (v *Vault) SavePair(ctx context.Context, pair ports.PersistedPair) error {
	if !pair.Present() {
		return errors.New("vault: refusing to persist a partial session pair")
	}

	data, err := json.Marshal(pair.User)
	if err != nil {
		return fmt.Errorf("marshal user profile: %w", err)
	}

	if err := v.client.Set(ctx, v.prefix+tokenKey, pair.Token, 0).Err(); err != nil {
		return fmt.Errorf("vault set token: %w", err)
	}
	if err := v.client.Set(ctx, v.prefix+userKey, data, 0).Err(); err != nil {
		return fmt.Errorf("vault set user: %w", err)
	}
	return nil
}

// ClearPair removes both halves. Clearing keys that are already absent
// is a no-op, which keeps logout idempotent.
func (v *Vault) ClearPair(ctx context.Context) error {
	if err := v.client.Del(ctx, v.prefix+tokenKey, v.prefix+userKey).Err(); err != nil {
		return fmt.Errorf("vault clear pair: %w", err)
	}
	return nil
}

// ClearAnonymousUsage removes the anonymous-usage counter entirely.
func (v *Vault) ClearAnonymousUsage(ctx context.Context) error {
	if err := v.client.Del(ctx, v.prefix+anonUsageKey).Err(); err != nil {
		return fmt.Errorf("vault clear anon usage: %w", err)
	}
	return nil
}
