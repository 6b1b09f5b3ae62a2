package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velmar/catalog-sync/pkg/logger"
)

// DefaultCacheTTL bounds how long a cached query embedding stays valid.
const DefaultCacheTTL = 24 * time.Hour

// Cache outcomes reported by EmbedWithOutcome.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
	CacheOff  = "off"
)

// CachedEmbedder caches embeddings in Redis keyed by a hash of the
// input text. Identical queries skip the external embedding call.
// Cache failures degrade to the wrapped embedder, never to an error.
type CachedEmbedder struct {
	next   Embedder
	client *redis.Client
	ttl    time.Duration
}

// NewCachedEmbedder wraps an embedder with a Redis cache. A nil client
// disables caching and passes every call through.
func NewCachedEmbedder(next Embedder, client *redis.Client, ttl time.Duration) *CachedEmbedder {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedEmbedder{next: next, client: client, ttl: ttl}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vector, _, err := c.EmbedWithOutcome(ctx, text)
	return vector, err
}

// EmbedWithOutcome embeds the text and reports how the cache served
// the call, so callers can label their metrics without a second
// round-trip to Redis.
func (c *CachedEmbedder) EmbedWithOutcome(ctx context.Context, text string) ([]float32, string, error) {
	if c.client == nil {
		vector, err := c.next.Embed(ctx, text)
		return vector, CacheOff, err
	}

	key := cacheKey(text)

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil && len(cached) > 0 {
		var vector []float32
		if err := json.Unmarshal(cached, &vector); err == nil {
			logger.Debug(ctx).Str("cache_key", key).Msg("Embedding cache hit")
			return vector, CacheHit, nil
		}
		// Corrupt entry: drop it and recompute
		c.client.Del(ctx, key)
	}

	vector, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, CacheMiss, err
	}

	if payload, err := json.Marshal(vector); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Failed to cache embedding")
		}
	}

	return vector, CacheMiss, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "catalog:embed:" + hex.EncodeToString(sum[:])
}
