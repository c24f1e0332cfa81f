package solanaadapter

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
)

// Submitter sends signed transactions to the cluster.
type Submitter struct {
	client *rpc.Client
	logger zerolog.Logger
}

func NewSubmitter(rpcURL string, logger zerolog.Logger) *Submitter {
	return &Submitter{
		client: rpc.New(rpcURL),
		logger: logger.With().Str("component", "tx_submitter").Logger(),
	}
}

// Submit broadcasts a base64-encoded signed transaction and returns
// its signature.
func (s *Submitter) Submit(ctx context.Context, signedTx string) (string, error) {
	sig, err := s.client.SendEncodedTransaction(ctx, signedTx)
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}

	s.logger.Info().Str("signature", sig.String()).Msg("transaction submitted")

	return sig.String(), nil
}
