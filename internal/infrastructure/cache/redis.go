package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"skill-passport/internal/config"
	"skill-passport/internal/logging"

	"github.com/redis/go-redis/v9"
)

const (
	revokedKeyPrefix = "session:revoked:"
	defaultTTL       = 10 * time.Minute
)

var ErrUnavailable = errors.New("redis unavailable")

// Redis wraps a go-redis client. A Redis without a client is valid and
// behaves as an always-empty cache, so callers never branch on availability.
type Redis struct {
	client *redis.Client
	logger logging.Logger
	ttl    time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedis connects and pings. When the ping fails the returned cache is a
// bypass and the failure is logged once.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger logging.Logger) *Redis {
	if logger == nil {
		logger = logging.Discard()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn(ctx, "redis unavailable, bypassing cache", "addr", cfg.Addr(), "error", err)
		_ = client.Close()
		return &Redis{logger: logger, ttl: ttl}
	}

	logger.Info(ctx, "redis connected", "addr", cfg.Addr())
	return &Redis{client: client, logger: logger, ttl: ttl}
}

// NewBypass returns a cache that stores nothing.
func NewBypass() *Redis {
	return &Redis{logger: logging.Discard(), ttl: defaultTTL}
}

func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) warnUnavailableOnce(ctx context.Context, err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn(ctx, "redis command failed, bypassing cache", "error", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.Available() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.Available() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(ctx, err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Available() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(ctx, err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if !r.Available() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(ctx, err)
		return err
	}
	return nil
}

func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if !r.Available() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			r.logger.Warn(ctx, "redis delete failed", "key", k, "pattern", pattern, "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		r.warnUnavailableOnce(ctx, err)
		return err
	}
	return nil
}

// GetInt64 reads an integer counter. A missing key reads as zero.
func (r *Redis) GetInt64(ctx context.Context, key string) (int64, error) {
	if !r.Available() {
		return 0, nil
	}
	n, err := r.client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		r.warnUnavailableOnce(ctx, err)
		return 0, err
	}
	return n, nil
}

// Incr atomically increments a counter without expiry.
func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	if !r.Available() {
		return 0, nil
	}
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		r.warnUnavailableOnce(ctx, err)
		return 0, err
	}
	return n, nil
}

// Revoke marks a session token id as revoked until the token would have
// expired anyway.
func (r *Redis) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if !r.Available() {
		return ErrUnavailable
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.SetNX(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		r.warnUnavailableOnce(ctx, err)
		return err
	}
	return nil
}

func (r *Redis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if !r.Available() {
		return false, ErrUnavailable
	}
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		r.warnUnavailableOnce(ctx, err)
		return false, err
	}
	return n > 0, nil
}
