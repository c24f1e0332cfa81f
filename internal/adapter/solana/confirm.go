package solanaadapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/wihngo/wallet/internal/domain"
)

const (
	confirmInitialInterval = 1 * time.Second
	confirmMaxInterval     = 5 * time.Second
)

var errNotYetConfirmed = errors.New("transaction not yet confirmed")

// ConfirmationWaiter polls signature statuses until a transaction is
// confirmed or the timeout elapses.
type ConfirmationWaiter struct {
	client  *rpc.Client
	timeout time.Duration
	logger  zerolog.Logger
}

func NewConfirmationWaiter(rpcURL string, timeout time.Duration, logger zerolog.Logger) *ConfirmationWaiter {
	return &ConfirmationWaiter{
		client:  rpc.New(rpcURL),
		timeout: timeout,
		logger:  logger.With().Str("component", "confirmation_waiter").Logger(),
	}
}

// WaitForConfirmation blocks until the signature reaches confirmed or
// finalized commitment. A transaction the cluster rejected returns
// domain.ErrTransactionFailed immediately; running out of time returns
// the last polling error.
func (w *ConfirmationWaiter) WaitForConfirmation(ctx context.Context, signature string) error {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return fmt.Errorf("invalid signature %q: %w", signature, err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = confirmInitialInterval
	b.MaxInterval = confirmMaxInterval
	b.MaxElapsedTime = w.timeout

	return backoff.Retry(func() error {
		result, err := w.client.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			w.logger.Debug().Err(err).Str("signature", signature).Msg("status poll failed")
			return err
		}

		if result == nil || len(result.Value) == 0 || result.Value[0] == nil {
			return errNotYetConfirmed
		}

		status := result.Value[0]
		if status.Err != nil {
			w.logger.Warn().
				Str("signature", signature).
				Interface("tx_error", status.Err).
				Msg("transaction rejected by cluster")

			return backoff.Permanent(domain.ErrTransactionFailed)
		}

		switch status.ConfirmationStatus {
		case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
			w.logger.Info().
				Str("signature", signature).
				Str("status", string(status.ConfirmationStatus)).
				Msg("transaction confirmed")

			return nil
		default:
			return errNotYetConfirmed
		}
	}, backoff.WithContext(b, ctx))
}
