package idempotency

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CacheTTL governs how long a cached key is reused. Deliberately
// decoupled from the derivation minute bucket: a cached key stays valid
// for its full TTL even after the bucket rolls over, so a client retry
// always maps to the intent it already requested.
const CacheTTL = 60 * time.Second

const keyPrefix = "idemkey:"

// Store is the key-value port behind the cache. Implementations exist
// for in-process memory, a JSON file, and Redis; a non-browser-style
// target can supply its own.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type cachedKey struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// Cache wraps DeriveKey with the client-side reuse window. A nil store
// is valid: every call derives fresh, nothing is cached, no error.
type Cache struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

// NewCache creates a Cache over the given store.
func NewCache(store Store, logger zerolog.Logger) *Cache {
	return &Cache{
		store:  store,
		ttl:    CacheTTL,
		logger: logger,
		now:    time.Now,
	}
}

// GetOrCreate returns the cached key for (birdID, birdAmount,
// wihngoAmount) while it is younger than the cache TTL, otherwise
// derives a fresh key and caches it. Store failures degrade to
// derive-fresh; they are logged, never surfaced.
func (c *Cache) GetOrCreate(ctx context.Context, userID, birdID string, birdAmount, wihngoAmount decimal.Decimal) string {
	now := c.now()
	cacheKey := compositeKey(birdID, birdAmount, wihngoAmount)

	if c.store != nil {
		raw, ok, err := c.store.Get(ctx, cacheKey)
		if err != nil {
			c.logger.Debug().Err(err).Str("bird_id", birdID).Msg("idempotency cache read failed")
		} else if ok {
			var cached cachedKey
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				age := now.Sub(time.UnixMilli(cached.Timestamp))
				if age >= 0 && age < c.ttl {
					return cached.Key
				}
			}
		}
	}

	key := DeriveKey(userID, birdID, birdAmount, wihngoAmount, now)

	if c.store != nil {
		raw, _ := json.Marshal(cachedKey{Key: key, Timestamp: now.UnixMilli()})
		if err := c.store.Set(ctx, cacheKey, string(raw)); err != nil {
			c.logger.Debug().Err(err).Str("bird_id", birdID).Msg("idempotency cache write failed")
		}
	}

	return key
}

// Clear removes every cached key scoped to the bird. Must run after a
// payment reaches terminal success, else a legitimate follow-up
// donation to the same bird within the minute silently collapses into
// the old intent.
func (c *Cache) Clear(ctx context.Context, birdID string) {
	if c.store == nil {
		return
	}

	if err := c.store.DeletePrefix(ctx, keyPrefix+birdID+":"); err != nil {
		c.logger.Debug().Err(err).Str("bird_id", birdID).Msg("idempotency cache clear failed")
	}
}

func compositeKey(birdID string, birdAmount, wihngoAmount decimal.Decimal) string {
	return keyPrefix + birdID + ":" + birdAmount.StringFixed(6) + ":" + wihngoAmount.StringFixed(6)
}
