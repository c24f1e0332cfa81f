// Package mocks holds hand-rolled mock implementations of the usecase
// ports for tests.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wihngo/wallet/internal/domain"
)

// MockConnectionRegistry is a map-backed mock of ConnectionRegistry.
type MockConnectionRegistry struct {
	mu          sync.Mutex
	connections map[string]*domain.PendingConnection

	PutFunc     func(ctx context.Context, conn *domain.PendingConnection) error
	GetFunc     func(ctx context.Context, connectionID string) (*domain.PendingConnection, error)
	ConsumeFunc func(ctx context.Context, connectionID string) (*domain.PendingConnection, error)
	SweepFunc   func(ctx context.Context, cutoff time.Time) (int, error)
}

func NewMockConnectionRegistry() *MockConnectionRegistry {
	return &MockConnectionRegistry{
		connections: make(map[string]*domain.PendingConnection),
	}
}

func (m *MockConnectionRegistry) Put(ctx context.Context, conn *domain.PendingConnection) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, conn)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.connections[conn.ConnectionID] = conn

	return nil
}

func (m *MockConnectionRegistry) Get(ctx context.Context, connectionID string) (*domain.PendingConnection, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, connectionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	conn, ok := m.connections[connectionID]
	if !ok || conn.Expired(time.Now()) {
		return nil, domain.ErrConnectionNotFound
	}

	return conn, nil
}

func (m *MockConnectionRegistry) Consume(ctx context.Context, connectionID string) (*domain.PendingConnection, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, connectionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	conn, ok := m.connections[connectionID]
	if !ok || conn.Expired(time.Now()) {
		return nil, domain.ErrConnectionNotFound
	}

	delete(m.connections, connectionID)

	return conn, nil
}

func (m *MockConnectionRegistry) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	if m.SweepFunc != nil {
		return m.SweepFunc(ctx, cutoff)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, conn := range m.connections {
		if conn.CreatedAt.Before(cutoff) {
			delete(m.connections, id)
			evicted++
		}
	}

	return evicted, nil
}

// Len reports the live entry count.
func (m *MockConnectionRegistry) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.connections)
}

// MockBalanceChecker is a mock of BalanceChecker.
type MockBalanceChecker struct {
	USDCBalanceFunc func(ctx context.Context, walletAddress string) (decimal.Decimal, error)
	Calls           int
}

func (m *MockBalanceChecker) USDCBalance(ctx context.Context, walletAddress string) (decimal.Decimal, error) {
	m.Calls++
	if m.USDCBalanceFunc != nil {
		return m.USDCBalanceFunc(ctx, walletAddress)
	}

	return decimal.NewFromInt(1000), nil
}

// MockIntentService is a mock of IntentService recording the keys it
// was called with.
type MockIntentService struct {
	CreateIntentFunc func(ctx context.Context, donation *domain.Donation, idempotencyKey string) (*domain.PaymentIntent, error)
	Keys             []string
}

func (m *MockIntentService) CreateIntent(ctx context.Context, donation *domain.Donation, idempotencyKey string) (*domain.PaymentIntent, error) {
	m.Keys = append(m.Keys, idempotencyKey)
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, donation, idempotencyKey)
	}

	return &domain.PaymentIntent{ID: "intent-1", Amount: donation.Total()}, nil
}

// MockTransactionSigner is a mock of TransactionSigner.
type MockTransactionSigner struct {
	SignTransactionFunc func(ctx context.Context, intent *domain.PaymentIntent) (string, error)
}

func (m *MockTransactionSigner) SignTransaction(ctx context.Context, intent *domain.PaymentIntent) (string, error) {
	if m.SignTransactionFunc != nil {
		return m.SignTransactionFunc(ctx, intent)
	}

	return "c2lnbmVkLXR4", nil
}

// MockTransactionSubmitter is a mock of TransactionSubmitter.
type MockTransactionSubmitter struct {
	SubmitFunc func(ctx context.Context, signedTx string) (string, error)
	Calls      int
}

func (m *MockTransactionSubmitter) Submit(ctx context.Context, signedTx string) (string, error) {
	m.Calls++
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, signedTx)
	}

	return "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW", nil
}

// MockConfirmationWaiter is a mock of ConfirmationWaiter.
type MockConfirmationWaiter struct {
	WaitForConfirmationFunc func(ctx context.Context, signature string) error
}

func (m *MockConfirmationWaiter) WaitForConfirmation(ctx context.Context, signature string) error {
	if m.WaitForConfirmationFunc != nil {
		return m.WaitForConfirmationFunc(ctx, signature)
	}

	return nil
}

// MockIdempotencyKeys is a mock of IdempotencyKeys recording clears.
type MockIdempotencyKeys struct {
	GetOrCreateFunc func(ctx context.Context, userID, birdID string, birdAmount, wihngoAmount decimal.Decimal) string
	Cleared         []string
}

func (m *MockIdempotencyKeys) GetOrCreate(ctx context.Context, userID, birdID string, birdAmount, wihngoAmount decimal.Decimal) string {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, userID, birdID, birdAmount, wihngoAmount)
	}

	return "0123456789abcdef0123456789abcdef"
}

func (m *MockIdempotencyKeys) Clear(ctx context.Context, birdID string) {
	m.Cleared = append(m.Cleared, birdID)
}
