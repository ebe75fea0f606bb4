package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	revoked, err := s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "abc", time.Hour))

	revoked, err = s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = s.IsRevoked(ctx, "other")
	assert.False(t, revoked)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore().(*memoryStore)

	base := time.Now()
	s.now = func() time.Time { return base }
	require.NoError(t, s.Revoke(ctx, "jti", time.Minute))

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	revoked, err := s.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	_, ok := s.items.Load("jti")
	assert.False(t, ok, "expired entry should be evicted")
}

func TestMemoryStore_IgnoresEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Revoke(ctx, "", time.Hour))
	require.NoError(t, s.Revoke(ctx, "x", 0))

	revoked, _ := s.IsRevoked(ctx, "x")
	assert.False(t, revoked)
}

func TestNewRevocationStore_NoAddrUsesMemory(t *testing.T) {
	s, err := NewRevocationStore(context.Background(), RedisConfig{})
	require.NoError(t, err)

	_, ok := s.(*memoryStore)
	assert.True(t, ok)
}
