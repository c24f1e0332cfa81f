package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wihngo/wallet/internal/domain"
)

// ConnectionRegistry stores pending wallet connections. Consume must be
// atomic with respect to concurrent Consume/Get calls for the same ID:
// after one caller consumes, every other caller gets ErrConnectionNotFound.
type ConnectionRegistry interface {
	Put(ctx context.Context, conn *domain.PendingConnection) error
	Get(ctx context.Context, connectionID string) (*domain.PendingConnection, error)
	Consume(ctx context.Context, connectionID string) (*domain.PendingConnection, error)
	Sweep(ctx context.Context, cutoff time.Time) (int, error)
}

// BalanceChecker reports a wallet's spendable USDC balance.
type BalanceChecker interface {
	USDCBalance(ctx context.Context, walletAddress string) (decimal.Decimal, error)
}

// IntentService creates payment intents on the backend. The idempotency
// key travels with the request so repeated submissions collapse to one
// intent.
type IntentService interface {
	CreateIntent(ctx context.Context, donation *domain.Donation, idempotencyKey string) (*domain.PaymentIntent, error)
}

// TransactionSigner hands the intent's transaction to the wallet and
// returns the signed transaction, base64-encoded. Signing itself is the
// wallet's job; this port only carries the round-trip.
type TransactionSigner interface {
	SignTransaction(ctx context.Context, intent *domain.PaymentIntent) (string, error)
}

// TransactionSubmitter broadcasts a signed transaction and returns its
// signature.
type TransactionSubmitter interface {
	Submit(ctx context.Context, signedTx string) (string, error)
}

// ConfirmationWaiter blocks until the transaction is confirmed on chain
// or the context expires.
type ConfirmationWaiter interface {
	WaitForConfirmation(ctx context.Context, signature string) error
}

// IdempotencyKeys is the client-side key cache around the deriver.
type IdempotencyKeys interface {
	GetOrCreate(ctx context.Context, userID, birdID string, birdAmount, wihngoAmount decimal.Decimal) string
	Clear(ctx context.Context, birdID string)
}
