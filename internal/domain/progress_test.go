package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/wihngo/wallet/internal/domain"
)

func TestPaymentStep_Progress(t *testing.T) {
	want := map[domain.PaymentStep]int{
		domain.StepConnectingWallet:  15,
		domain.StepCheckingBalance:   30,
		domain.StepCreatingIntent:    45,
		domain.StepAwaitingSignature: 60,
		domain.StepSubmitting:        75,
		domain.StepConfirming:        90,
		domain.StepComplete:          100,
	}

	prev := 0
	for _, step := range domain.Steps {
		got := step.Progress()
		if got != want[step] {
			t.Errorf("step %s: progress = %d, want %d", step, got, want[step])
		}
		if got < prev {
			t.Errorf("step %s: progress %d decreased below %d", step, got, prev)
		}
		prev = got
	}
}

func TestPaymentStep_Order(t *testing.T) {
	for i, step := range domain.Steps {
		if step.Index() != i {
			t.Errorf("step %s: index = %d, want %d", step, step.Index(), i)
		}
	}

	if domain.PaymentStep("bogus").Index() != -1 {
		t.Error("unknown step should have index -1")
	}

	if !domain.StepComplete.Terminal() {
		t.Error("complete should be terminal")
	}

	if domain.StepConfirming.Terminal() {
		t.Error("confirming should not be terminal")
	}
}

func TestStall(t *testing.T) {
	sig := "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW"

	tests := []struct {
		name         string
		elapsed      time.Duration
		signature    string
		network      domain.Network
		wantAdvisory bool
		wantExplorer bool
	}{
		{
			name:    "below threshold shows nothing",
			elapsed: 25 * time.Second,
		},
		{
			name:         "advisory without explorer link",
			elapsed:      35 * time.Second,
			signature:    sig,
			wantAdvisory: true,
		},
		{
			name:         "advisory with explorer link",
			elapsed:      65 * time.Second,
			signature:    sig,
			network:      domain.NetworkMainnet,
			wantAdvisory: true,
			wantExplorer: true,
		},
		{
			name:         "no explorer link without signature",
			elapsed:      65 * time.Second,
			wantAdvisory: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := domain.Stall(tt.elapsed, tt.signature, tt.network)

			if status.Advisory != tt.wantAdvisory {
				t.Errorf("advisory = %v, want %v", status.Advisory, tt.wantAdvisory)
			}

			if tt.wantExplorer {
				if !strings.Contains(status.ExplorerURL, tt.signature) {
					t.Errorf("explorer URL %q does not contain signature", status.ExplorerURL)
				}
			} else if status.ExplorerURL != "" {
				t.Errorf("unexpected explorer URL %q", status.ExplorerURL)
			}
		})
	}
}

func TestExplorerTxURL(t *testing.T) {
	sig := "2nBhEBYYvfaAe16UMNqRHre4YNSskvuYgx3M6E4JP1oDYvZEJHvoPzyUidNgNX5r9sTyN1J9UxtbCXy2rqYcuyuv"

	mainnet := domain.ExplorerTxURL(sig, domain.NetworkMainnet)
	if mainnet != "https://explorer.solana.com/tx/"+sig {
		t.Errorf("mainnet URL = %q", mainnet)
	}

	devnet := domain.ExplorerTxURL(sig, domain.NetworkDevnet)
	if !strings.HasSuffix(devnet, "?cluster=devnet") {
		t.Errorf("devnet URL missing cluster suffix: %q", devnet)
	}
}
