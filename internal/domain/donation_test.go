package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wihngo/wallet/internal/domain"
)

func TestDonation_Validate(t *testing.T) {
	valid := domain.Donation{
		UserID:        "user-1",
		BirdID:        "bird-1",
		BirdAmount:    decimal.NewFromFloat(5),
		WihngoAmount:  decimal.NewFromFloat(0.5),
		WalletAddress: "4Nd1mYvJ6QV4DqVi5kyKvPmVkZbhEkbqYhXGdKsqrnGp",
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Donation)
		wantErr error
	}{
		{
			name:   "valid donation",
			mutate: func(d *domain.Donation) {},
		},
		{
			name:    "missing user",
			mutate:  func(d *domain.Donation) { d.UserID = "" },
			wantErr: domain.ErrMissingFields,
		},
		{
			name:    "missing wallet address",
			mutate:  func(d *domain.Donation) { d.WalletAddress = "" },
			wantErr: domain.ErrMissingFields,
		},
		{
			name:    "zero bird amount",
			mutate:  func(d *domain.Donation) { d.BirdAmount = decimal.Zero },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative wihngo amount",
			mutate:  func(d *domain.Donation) { d.WihngoAmount = decimal.NewFromFloat(-0.1) },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "zero wihngo amount allowed",
			mutate: func(d *domain.Donation) { d.WihngoAmount = decimal.Zero },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)

			err := d.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDonation_Total(t *testing.T) {
	d := domain.Donation{
		BirdAmount:   decimal.RequireFromString("5.25"),
		WihngoAmount: decimal.RequireFromString("0.75"),
	}

	if !d.Total().Equal(decimal.NewFromInt(6)) {
		t.Errorf("Total() = %s, want 6", d.Total())
	}
}

func TestPendingConnection_Expired(t *testing.T) {
	now := time.Now()
	conn := domain.PendingConnection{CreatedAt: now.Add(-9 * time.Minute)}

	if conn.Expired(now) {
		t.Error("connection younger than TTL should not be expired")
	}

	conn.CreatedAt = now.Add(-11 * time.Minute)
	if !conn.Expired(now) {
		t.Error("connection older than TTL should be expired")
	}
}
