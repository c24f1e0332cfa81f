package usecase

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wihngo/wallet/internal/domain"
	"github.com/wihngo/wallet/internal/infrastructure/metrics"
	"github.com/wihngo/wallet/internal/infrastructure/retry"
)

// DonationUseCase orchestrates one donation end to end: balance check,
// idempotent intent creation, wallet signature hand-off, submission,
// and on-chain confirmation, advancing a ProgressTracker as it goes.
type DonationUseCase struct {
	balances  BalanceChecker
	intents   IntentService
	signer    TransactionSigner
	submitter TransactionSubmitter
	confirmer ConfirmationWaiter
	keys      IdempotencyKeys
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	newReference func() string
}

// NewDonationUseCase creates a new DonationUseCase. Metrics may be nil.
func NewDonationUseCase(
	balances BalanceChecker,
	intents IntentService,
	signer TransactionSigner,
	submitter TransactionSubmitter,
	confirmer ConfirmationWaiter,
	keys IdempotencyKeys,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *DonationUseCase {
	return &DonationUseCase{
		balances:  balances,
		intents:   intents,
		signer:    signer,
		submitter: submitter,
		confirmer: confirmer,
		keys:      keys,
		metrics:   m,
		logger:    logger,
		newReference: func() string {
			return ulid.MustNew(ulid.Now(), rand.Reader).String()
		},
	}
}

// Submit runs the pipeline for a donation. The tracker is advanced
// through every step; failures leave it on the step that failed so the
// caller can show where the flow stopped. Network-class failures are
// retried per policy before surfacing; cryptographic, validation, and
// balance failures surface immediately.
func (uc *DonationUseCase) Submit(ctx context.Context, donation *domain.Donation, tracker *ProgressTracker) (*domain.DonationReceipt, error) {
	started := time.Now()

	receipt, err := uc.run(ctx, donation, tracker)

	if uc.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		uc.metrics.DonationsSubmitted.WithLabelValues(outcome).Inc()
		uc.metrics.DonationDuration.Observe(time.Since(started).Seconds())
	}

	return receipt, err
}

func (uc *DonationUseCase) run(ctx context.Context, donation *domain.Donation, tracker *ProgressTracker) (*domain.DonationReceipt, error) {
	if err := donation.Validate(); err != nil {
		return nil, err
	}

	log := uc.logger.With().
		Str("bird_id", donation.BirdID).
		Str("user_id", donation.UserID).
		Logger()

	if err := tracker.Advance(domain.StepConnectingWallet); err != nil {
		return nil, err
	}

	// checking_balance
	if err := tracker.Advance(domain.StepCheckingBalance); err != nil {
		return nil, err
	}

	balance, err := retry.Do(ctx, retry.Balance(), func(ctx context.Context) (decimal.Decimal, error) {
		return uc.balances.USDCBalance(ctx, donation.WalletAddress)
	})
	if err != nil {
		log.Warn().Err(err).Msg("balance check failed")
		return nil, err
	}

	if balance.LessThan(donation.Total()) {
		return nil, domain.ErrInsufficientBalance
	}

	// creating_intent
	if err := tracker.Advance(domain.StepCreatingIntent); err != nil {
		return nil, err
	}

	key := uc.keys.GetOrCreate(ctx, donation.UserID, donation.BirdID, donation.BirdAmount, donation.WihngoAmount)

	intent, err := retry.Do(ctx, retry.Network(), func(ctx context.Context) (*domain.PaymentIntent, error) {
		return uc.intents.CreateIntent(ctx, donation, key)
	})
	if err != nil {
		log.Warn().Err(err).Msg("intent creation failed")
		return nil, err
	}

	// awaiting_signature: the wallet round-trip is never retried, the
	// user drives it.
	if err := tracker.Advance(domain.StepAwaitingSignature); err != nil {
		return nil, err
	}

	signedTx, err := uc.signer.SignTransaction(ctx, intent)
	if err != nil {
		log.Warn().Err(err).Str("intent_id", intent.ID).Msg("wallet signature failed")
		return nil, err
	}

	// submitting
	if err := tracker.Advance(domain.StepSubmitting); err != nil {
		return nil, err
	}

	signature, err := retry.Do(ctx, retry.Blockchain(), func(ctx context.Context) (string, error) {
		return uc.submitter.Submit(ctx, signedTx)
	})
	if err != nil {
		log.Error().Err(err).Str("intent_id", intent.ID).Msg("transaction submission failed")
		return nil, err
	}

	tracker.SetSignature(signature)

	// confirming
	if err := tracker.Advance(domain.StepConfirming); err != nil {
		return nil, err
	}

	if err := uc.confirmer.WaitForConfirmation(ctx, signature); err != nil {
		log.Error().Err(err).Str("signature", signature).Msg("confirmation failed")
		return nil, err
	}

	// Terminal success: purge the cached key so the next donation to
	// this bird is not collapsed into this intent.
	uc.keys.Clear(ctx, donation.BirdID)

	if err := tracker.Advance(domain.StepComplete); err != nil {
		return nil, err
	}

	receipt := &domain.DonationReceipt{
		ReferenceID: uc.newReference(),
		IntentID:    intent.ID,
		Signature:   signature,
		Amount:      donation.Total(),
		ConfirmedAt: time.Now().UTC(),
	}

	log.Info().
		Str("reference_id", receipt.ReferenceID).
		Str("signature", signature).
		Str("amount", receipt.Amount.StringFixed(6)).
		Msg("donation confirmed")

	if uc.metrics != nil {
		amount, _ := receipt.Amount.Float64()
		uc.metrics.DonationAmount.Observe(amount)
	}

	return receipt, nil
}
