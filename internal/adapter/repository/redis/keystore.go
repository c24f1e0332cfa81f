package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wihngo/wallet/internal/infrastructure/idempotency"
)

// KeyStore implements idempotency.Store on Redis, for clients whose
// key cache must survive a process restart or be shared.
type KeyStore struct {
	client *redis.Client
}

// NewKeyStore creates a Redis-backed idempotency key store.
func NewKeyStore(client *redis.Client) *KeyStore {
	return &KeyStore{client: client}
}

var _ idempotency.Store = (*KeyStore)(nil)

func (s *KeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get key: %w", err)
	}

	return value, true, nil
}

func (s *KeyStore) Set(ctx context.Context, key, value string) error {
	// Keep entries around for twice the cache TTL; the cache applies
	// the precise reuse window itself from the stored timestamp.
	return s.client.Set(ctx, key, value, 2*idempotency.CacheTTL).Err()
}

func (s *KeyStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *KeyStore) DeletePrefix(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("delete key %s: %w", iter.Val(), err)
		}
	}

	return iter.Err()
}
