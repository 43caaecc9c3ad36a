package skill

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"skill-passport/internal/search"
)

const (
	searchKeyPrefix  = "skills:search:"
	searchKeyPattern = searchKeyPrefix + "*"

	// searchGenKey must stay outside searchKeyPattern so invalidation never
	// resets it.
	searchGenKey = "skills:search-gen"
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	GetInt64(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

type searchCacheKeyInput struct {
	Generation int64  `json:"generation"`
	Query      string `json:"query"`
}

// SearchCacheKey hashes the cache generation and the normalized query.
// Queries differing only in case or surrounding whitespace share one entry;
// inner whitespace is significant to matching and is kept. Every approval
// bumps the generation, so results computed before it are never served.
func SearchCacheKey(generation int64, query string) string {
	b, _ := json.Marshal(searchCacheKeyInput{
		Generation: generation,
		Query:      search.NormalizeQuery(query),
	})
	sum := sha256.Sum256(b)
	return searchKeyPrefix + hex.EncodeToString(sum[:])
}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error) {
	return false, nil
}

func (noopCache) SetJSON(context.Context, string, any, time.Duration) error {
	return nil
}

func (noopCache) DeleteByPattern(context.Context, string) error {
	return nil
}

func (noopCache) GetInt64(context.Context, string) (int64, error) {
	return 0, nil
}

func (noopCache) Incr(context.Context, string) (int64, error) {
	return 0, nil
}
