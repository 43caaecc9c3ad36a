package cache

import (
	"context"
	"testing"
	"time"

	"skill-passport/internal/config"
	"skill-passport/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBypass_BehavesAsEmptyCache(t *testing.T) {
	ctx := context.Background()
	r := NewBypass()

	assert.False(t, r.Available())
	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.DeleteByPattern(ctx, "skills:*"))

	n, err := r.Incr(ctx, "skills:search-gen")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = r.GetInt64(ctx, "skills:search-gen")
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, r.Close())
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
}

func TestBypass_RevocationReportsUnavailable(t *testing.T) {
	ctx := context.Background()
	r := NewBypass()

	assert.ErrorIs(t, r.Revoke(ctx, "jti", time.Now().Add(time.Hour)), ErrUnavailable)
	_, err := r.IsRevoked(ctx, "jti")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNilRedis_IsSafe(t *testing.T) {
	var r *Redis
	assert.False(t, r.Available())
	assert.NoError(t, r.Close())
}

func TestNewRedis_UnreachableFallsBackToBypass(t *testing.T) {
	ctx := context.Background()
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1", TTL: time.Minute}

	r := NewRedis(ctx, cfg, logging.Discard())
	assert.False(t, r.Available())
}
