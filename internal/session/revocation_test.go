package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/calltrack/dnc-registry/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*session.RedisRevocationStore, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	store, err := session.NewRedisRevocationStore("redis://" + server.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, server
}

func TestRevokeAndCheck(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "some-jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "some-jti", time.Hour))

	revoked, err = store.IsRevoked(ctx, "some-jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Other tokens are unaffected
	revoked, err = store.IsRevoked(ctx, "other-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationExpiresWithToken(t *testing.T) {
	store, server := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "short-jti", time.Minute))

	server.FastForward(2 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "short-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	// Nothing to deny for an already-expired token
	require.NoError(t, store.Revoke(ctx, "expired-jti", -time.Minute))

	revoked, err := store.IsRevoked(ctx, "expired-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInvalidRedisURL(t *testing.T) {
	_, err := session.NewRedisRevocationStore("not a url")
	assert.Error(t, err)
}
