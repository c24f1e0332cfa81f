// Package solanaadapter talks to a Solana RPC node for balance reads,
// transaction submission, and confirmation polling.
package solanaadapter

import (
	"context"
	"fmt"
	"strings"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wihngo/wallet/internal/domain"
)

// BalanceChecker reads SPL token balances for a fixed mint.
type BalanceChecker struct {
	client *rpc.Client
	mint   solana.PublicKey
	logger zerolog.Logger
}

// NewBalanceChecker builds a checker against the given RPC endpoint
// and token mint.
func NewBalanceChecker(rpcURL, mintAddress string, logger zerolog.Logger) (*BalanceChecker, error) {
	mint, err := solana.PublicKeyFromBase58(mintAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid mint address %q: %w", mintAddress, err)
	}

	return &BalanceChecker{
		client: rpc.New(rpcURL),
		mint:   mint,
		logger: logger.With().Str("component", "balance_checker").Logger(),
	}, nil
}

// USDCBalance returns the token balance of the wallet's associated
// token account. A wallet with no token account has a zero balance,
// not an error.
func (b *BalanceChecker) USDCBalance(ctx context.Context, walletAddress string) (decimal.Decimal, error) {
	owner, err := solana.PublicKeyFromBase58(walletAddress)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInvalidWalletAddress, walletAddress)
	}

	ata, _, err := solana.FindAssociatedTokenAddress(owner, b.mint)
	if err != nil {
		return decimal.Zero, fmt.Errorf("derive token account: %w", err)
	}

	result, err := b.client.GetTokenAccountBalance(ctx, ata, rpc.CommitmentConfirmed)
	if err != nil {
		if isMissingAccount(err) {
			b.logger.Debug().Str("wallet", walletAddress).Msg("no token account, balance zero")
			return decimal.Zero, nil
		}

		return decimal.Zero, fmt.Errorf("query token balance: %w", err)
	}

	if result == nil || result.Value == nil {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(result.Value.UiAmountString)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance %q: %w", result.Value.UiAmountString, err)
	}

	return amount, nil
}

func isMissingAccount(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, "could not find account") ||
		strings.Contains(msg, "Account does not exist")
}
