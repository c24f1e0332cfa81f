// Package redis provides the shared-store variants of the connection
// registry and the idempotency key cache, for multi-instance
// deployments where process memory cannot be shared.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wihngo/wallet/internal/domain"
)

const connPrefix = "phantom:conn:"

// storedConnection is the Redis representation of a PendingConnection.
// The secret key lives in Redis only for the connection TTL; the Redis
// deployment is expected to be private to the service.
type storedConnection struct {
	SecretKey []byte    `json:"secret_key"`
	PublicKey []byte    `json:"public_key"`
	CreatedAt time.Time `json:"created_at"`
}

// Registry implements usecase.ConnectionRegistry on Redis. Expiry uses
// native key TTLs, so Sweep is a no-op kept for interface parity.
type Registry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistry creates a Redis-backed Registry.
func NewRegistry(client *redis.Client) *Registry {
	return &Registry{
		client: client,
		ttl:    domain.ConnectionTTL,
	}
}

// Put stores the pending connection with the registry TTL.
func (r *Registry) Put(ctx context.Context, conn *domain.PendingConnection) error {
	stored := storedConnection{
		SecretKey: conn.SecretKey[:],
		PublicKey: conn.PublicKey[:],
		CreatedAt: conn.CreatedAt,
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode connection: %w", err)
	}

	return r.client.Set(ctx, connPrefix+conn.ConnectionID, raw, r.ttl).Err()
}

// Get returns the pending connection, or ErrConnectionNotFound.
func (r *Registry) Get(ctx context.Context, connectionID string) (*domain.PendingConnection, error) {
	raw, err := r.client.Get(ctx, connPrefix+connectionID).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrConnectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}

	return decode(connectionID, raw)
}

// Consume atomically removes and returns the pending connection via
// GETDEL, so a concurrent duplicate decrypt observes NotFound.
func (r *Registry) Consume(ctx context.Context, connectionID string) (*domain.PendingConnection, error) {
	raw, err := r.client.GetDel(ctx, connPrefix+connectionID).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrConnectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume connection: %w", err)
	}

	return decode(connectionID, raw)
}

// Sweep is a no-op: Redis evicts on TTL.
func (r *Registry) Sweep(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func decode(connectionID string, raw []byte) (*domain.PendingConnection, error) {
	var stored storedConnection
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode connection: %w", err)
	}

	conn := &domain.PendingConnection{
		ConnectionID: connectionID,
		CreatedAt:    stored.CreatedAt,
	}
	copy(conn.SecretKey[:], stored.SecretKey)
	copy(conn.PublicKey[:], stored.PublicKey)

	return conn, nil
}
