// Package memory holds the in-process connection registry. Suitable
// for a single-instance deployment; multi-instance deployments use the
// Redis registry behind the same interface.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wihngo/wallet/internal/domain"
)

// Registry maps connectionId to PendingConnection in process memory.
// Eviction is sweep-on-write: there is no background timer, every
// connect-init sweeps entries past the TTL before storing a new one.
type Registry struct {
	mu          sync.RWMutex
	connections map[string]*domain.PendingConnection
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		connections: make(map[string]*domain.PendingConnection),
	}
}

// Put stores a pending connection. At most one live entry per ID.
func (r *Registry) Put(_ context.Context, conn *domain.PendingConnection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.connections[conn.ConnectionID] = conn

	return nil
}

// Get returns the pending connection, or ErrConnectionNotFound when it
// is absent or past its TTL.
func (r *Registry) Get(_ context.Context, connectionID string) (*domain.PendingConnection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.connections[connectionID]
	if !ok || conn.Expired(time.Now()) {
		return nil, domain.ErrConnectionNotFound
	}

	return conn, nil
}

// Consume atomically removes and returns the pending connection. After
// one caller consumes an ID every other caller observes
// ErrConnectionNotFound, never a stale secret-bearing entry.
func (r *Registry) Consume(_ context.Context, connectionID string) (*domain.PendingConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.connections[connectionID]
	if !ok || conn.Expired(time.Now()) {
		return nil, domain.ErrConnectionNotFound
	}

	delete(r.connections, connectionID)

	return conn, nil
}

// Sweep removes entries created before the cutoff and reports how many
// were evicted.
func (r *Registry) Sweep(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, conn := range r.connections {
		if conn.CreatedAt.Before(cutoff) {
			delete(r.connections, id)
			evicted++
		}
	}

	return evicted, nil
}

// Len reports the live entry count. Used by tests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.connections)
}
