package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a single peer-to-peer USDC donation: an amount for the
// bird's caretaker plus an optional platform share.
type Donation struct {
	UserID        string
	BirdID        string
	BirdAmount    decimal.Decimal
	WihngoAmount  decimal.Decimal
	WalletAddress string
}

// Total is the full USDC amount the donor pays.
func (d *Donation) Total() decimal.Decimal {
	return d.BirdAmount.Add(d.WihngoAmount)
}

// Validate checks donation invariants before the pipeline starts.
func (d *Donation) Validate() error {
	if d.UserID == "" || d.BirdID == "" || d.WalletAddress == "" {
		return ErrMissingFields
	}

	if d.BirdAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if d.WihngoAmount.IsNegative() {
		return ErrInvalidAmount
	}

	return nil
}

// PaymentIntent is the backend's record of a pending donation, created
// idempotently: repeated submissions with the same idempotency key
// collapse to one intent.
type PaymentIntent struct {
	ID               string
	RecipientAddress string
	Amount           decimal.Decimal
	UnsignedTx       string // base64-encoded transaction awaiting the wallet's signature
	ExpiresAt        time.Time
}

// DonationReceipt is the terminal result of a successful pipeline run.
type DonationReceipt struct {
	ReferenceID string
	IntentID    string
	Signature   string
	Amount      decimal.Decimal
	ConfirmedAt time.Time
}
