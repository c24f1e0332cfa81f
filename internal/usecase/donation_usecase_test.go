package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wihngo/wallet/internal/domain"
	"github.com/wihngo/wallet/internal/usecase"
	"github.com/wihngo/wallet/internal/usecase/mocks"
)

type donationMocks struct {
	balances  *mocks.MockBalanceChecker
	intents   *mocks.MockIntentService
	signer    *mocks.MockTransactionSigner
	submitter *mocks.MockTransactionSubmitter
	confirmer *mocks.MockConfirmationWaiter
	keys      *mocks.MockIdempotencyKeys
}

func newDonationUseCase() (*usecase.DonationUseCase, *donationMocks) {
	m := &donationMocks{
		balances:  &mocks.MockBalanceChecker{},
		intents:   &mocks.MockIntentService{},
		signer:    &mocks.MockTransactionSigner{},
		submitter: &mocks.MockTransactionSubmitter{},
		confirmer: &mocks.MockConfirmationWaiter{},
		keys:      &mocks.MockIdempotencyKeys{},
	}

	uc := usecase.NewDonationUseCase(
		m.balances, m.intents, m.signer, m.submitter, m.confirmer, m.keys,
		nil, zerolog.Nop(),
	)

	return uc, m
}

func validDonation() *domain.Donation {
	return &domain.Donation{
		UserID:        "user-1",
		BirdID:        "bird-1",
		BirdAmount:    decimal.RequireFromString("5.00"),
		WihngoAmount:  decimal.RequireFromString("0.50"),
		WalletAddress: testWalletAddress,
	}
}

func TestDonationUseCase_SubmitSuccess(t *testing.T) {
	uc, m := newDonationUseCase()
	tracker := usecase.NewProgressTracker(domain.NetworkMainnet)

	receipt, err := uc.Submit(context.Background(), validDonation(), tracker)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if receipt.ReferenceID == "" {
		t.Error("receipt missing reference id")
	}

	if receipt.IntentID != "intent-1" {
		t.Errorf("intent id = %q, want intent-1", receipt.IntentID)
	}

	if receipt.Signature == "" {
		t.Error("receipt missing transaction signature")
	}

	if !receipt.Amount.Equal(decimal.RequireFromString("5.50")) {
		t.Errorf("receipt amount = %s, want 5.50", receipt.Amount)
	}

	if tracker.Step() != domain.StepComplete {
		t.Errorf("tracker step = %s, want complete", tracker.Step())
	}

	// Terminal success purges the bird's cached key.
	if len(m.keys.Cleared) != 1 || m.keys.Cleared[0] != "bird-1" {
		t.Errorf("cleared keys = %v, want [bird-1]", m.keys.Cleared)
	}

	if len(m.intents.Keys) != 1 || len(m.intents.Keys[0]) != 32 {
		t.Errorf("intent received keys %v, want one 32-char key", m.intents.Keys)
	}
}

func TestDonationUseCase_InvalidDonation(t *testing.T) {
	uc, m := newDonationUseCase()
	tracker := usecase.NewProgressTracker(domain.NetworkMainnet)

	d := validDonation()
	d.BirdAmount = decimal.Zero

	if _, err := uc.Submit(context.Background(), d, tracker); err != domain.ErrInvalidAmount {
		t.Errorf("err = %v, want %v", err, domain.ErrInvalidAmount)
	}

	if m.balances.Calls != 0 {
		t.Error("invalid donation should not reach the balance check")
	}
}

func TestDonationUseCase_InsufficientBalance(t *testing.T) {
	uc, m := newDonationUseCase()
	tracker := usecase.NewProgressTracker(domain.NetworkMainnet)

	m.balances.USDCBalanceFunc = func(ctx context.Context, walletAddress string) (decimal.Decimal, error) {
		return decimal.RequireFromString("5.49"), nil
	}

	_, err := uc.Submit(context.Background(), validDonation(), tracker)
	if err != domain.ErrInsufficientBalance {
		t.Errorf("err = %v, want %v", err, domain.ErrInsufficientBalance)
	}

	if len(m.intents.Keys) != 0 {
		t.Error("insufficient balance should not create an intent")
	}

	if tracker.Step() != domain.StepCheckingBalance {
		t.Errorf("tracker stopped on %s, want checking_balance", tracker.Step())
	}
}

func TestDonationUseCase_SignatureRejected(t *testing.T) {
	uc, m := newDonationUseCase()
	tracker := usecase.NewProgressTracker(domain.NetworkMainnet)

	wantErr := errors.New("user rejected the request")
	m.signer.SignTransactionFunc = func(ctx context.Context, intent *domain.PaymentIntent) (string, error) {
		return "", wantErr
	}

	if _, err := uc.Submit(context.Background(), validDonation(), tracker); err != wantErr {
		t.Errorf("err = %v, want the original %v", err, wantErr)
	}

	if m.submitter.Calls != 0 {
		t.Error("rejected signature should not submit anything")
	}

	if tracker.Step() != domain.StepAwaitingSignature {
		t.Errorf("tracker stopped on %s, want awaiting_signature", tracker.Step())
	}

	// The key is only purged on terminal success.
	if len(m.keys.Cleared) != 0 {
		t.Errorf("keys cleared on failure: %v", m.keys.Cleared)
	}
}

func TestDonationUseCase_SubmissionFailureIsNotRetriedWhenPermanent(t *testing.T) {
	uc, m := newDonationUseCase()
	tracker := usecase.NewProgressTracker(domain.NetworkDevnet)

	wantErr := errors.New("invalid transaction signature")
	m.submitter.SubmitFunc = func(ctx context.Context, signedTx string) (string, error) {
		return "", wantErr
	}

	if _, err := uc.Submit(context.Background(), validDonation(), tracker); err != wantErr {
		t.Errorf("err = %v, want %v", err, wantErr)
	}

	if m.submitter.Calls != 1 {
		t.Errorf("submit calls = %d, want 1 (non-retryable)", m.submitter.Calls)
	}
}

func TestDonationUseCase_ConfirmationFailure(t *testing.T) {
	uc, m := newDonationUseCase()
	tracker := usecase.NewProgressTracker(domain.NetworkMainnet)

	m.confirmer.WaitForConfirmationFunc = func(ctx context.Context, signature string) error {
		return domain.ErrTransactionFailed
	}

	if _, err := uc.Submit(context.Background(), validDonation(), tracker); err != domain.ErrTransactionFailed {
		t.Errorf("err = %v, want %v", err, domain.ErrTransactionFailed)
	}

	if tracker.Step() != domain.StepConfirming {
		t.Errorf("tracker stopped on %s, want confirming", tracker.Step())
	}

	// The signature became known before confirmation failed, so the
	// stall escalation can link to the explorer.
	snapshot := tracker.Snapshot()
	if snapshot.Step != domain.StepConfirming {
		t.Errorf("snapshot step = %s", snapshot.Step)
	}
}
