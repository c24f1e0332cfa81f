package domain

import (
	"fmt"
	"time"
)

// PaymentStep is one stage of the donation submission pipeline. The
// sequence is fixed and forward-only; Complete is the only terminal step.
type PaymentStep string

const (
	StepConnectingWallet  PaymentStep = "connecting_wallet"
	StepCheckingBalance   PaymentStep = "checking_balance"
	StepCreatingIntent    PaymentStep = "creating_intent"
	StepAwaitingSignature PaymentStep = "awaiting_signature"
	StepSubmitting        PaymentStep = "submitting"
	StepConfirming        PaymentStep = "confirming"
	StepComplete          PaymentStep = "complete"
)

// Steps lists all payment steps in pipeline order.
var Steps = []PaymentStep{
	StepConnectingWallet,
	StepCheckingBalance,
	StepCreatingIntent,
	StepAwaitingSignature,
	StepSubmitting,
	StepConfirming,
	StepComplete,
}

var stepProgress = map[PaymentStep]int{
	StepConnectingWallet:  15,
	StepCheckingBalance:   30,
	StepCreatingIntent:    45,
	StepAwaitingSignature: 60,
	StepSubmitting:        75,
	StepConfirming:        90,
	StepComplete:          100,
}

// Progress returns the display percentage for the step, 0 if unknown.
func (s PaymentStep) Progress() int {
	return stepProgress[s]
}

// Index returns the step's position in the pipeline, -1 if unknown.
func (s PaymentStep) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Terminal reports whether the step ends the pipeline.
func (s PaymentStep) Terminal() bool {
	return s == StepComplete
}

// Network selects the Solana cluster a payment targets.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkDevnet  Network = "devnet"
)

// Stall escalation thresholds, measured from the caller-supplied start
// instant and independent of which step is active.
const (
	StallAdvisoryAfter = 30 * time.Second
	StallExplorerAfter = 60 * time.Second
)

// StallStatus describes the elapsed-time escalation for a submission.
// Below 30s nothing is shown; at 30s an advisory appears; at 60s an
// explorer link is added when the transaction signature is known.
type StallStatus struct {
	Advisory    bool
	Message     string
	ExplorerURL string
}

// Stall derives the escalation state for the given elapsed time.
func Stall(elapsed time.Duration, signature string, network Network) StallStatus {
	if elapsed < StallAdvisoryAfter {
		return StallStatus{}
	}

	status := StallStatus{
		Advisory: true,
		Message:  "This is taking longer than usual. Your payment is still being processed.",
	}

	if elapsed >= StallExplorerAfter && signature != "" {
		status.ExplorerURL = ExplorerTxURL(signature, network)
	}

	return status
}

// ExplorerTxURL builds a Solana block-explorer link for a transaction
// signature. Devnet adds the cluster query suffix; mainnet does not.
func ExplorerTxURL(signature string, network Network) string {
	url := fmt.Sprintf("https://explorer.solana.com/tx/%s", signature)
	if network == NetworkDevnet {
		url += "?cluster=devnet"
	}
	return url
}
