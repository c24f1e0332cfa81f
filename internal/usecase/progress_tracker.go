package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/wihngo/wallet/internal/domain"
)

// tickInterval is how often a watched tracker recomputes its
// elapsed-time state for display.
const tickInterval = time.Second

// ProgressSnapshot is a point-in-time view of the pipeline for display.
type ProgressSnapshot struct {
	Step     domain.PaymentStep
	Progress int
	Elapsed  time.Duration
	Stall    domain.StallStatus
}

// ProgressTracker derives presentation state for a donation in flight.
// Steps only move forward; the stall escalation is a pure function of
// elapsed time since the start instant, independent of the active step.
type ProgressTracker struct {
	mu        sync.Mutex
	step      domain.PaymentStep
	startedAt time.Time
	signature string
	network   domain.Network
	now       func() time.Time
}

// NewProgressTracker starts tracking at connecting_wallet with the
// clock running from now.
func NewProgressTracker(network domain.Network) *ProgressTracker {
	t := &ProgressTracker{
		step:    domain.StepConnectingWallet,
		network: network,
		now:     time.Now,
	}
	t.startedAt = t.now()

	return t
}

// Advance moves the tracker to the given step. Moving backward or to an
// unknown step is rejected; advancing to the current step is a no-op so
// idempotent callers do not error.
func (t *ProgressTracker) Advance(step domain.PaymentStep) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := step.Index()
	if idx < 0 {
		return domain.ErrUnknownStep
	}

	if idx < t.step.Index() {
		return domain.ErrStepBackward
	}

	t.step = step

	return nil
}

// SetSignature records the transaction signature once known, enabling
// the explorer link in the stall escalation.
func (t *ProgressTracker) SetSignature(signature string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.signature = signature
}

// Step returns the current step.
func (t *ProgressTracker) Step() domain.PaymentStep {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.step
}

// Snapshot derives the current display state.
func (t *ProgressTracker) Snapshot() ProgressSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := t.now().Sub(t.startedAt)

	return ProgressSnapshot{
		Step:     t.step,
		Progress: t.step.Progress(),
		Elapsed:  elapsed,
		Stall:    domain.Stall(elapsed, t.signature, t.network),
	}
}

// Watch invokes fn with a fresh snapshot every second until the
// returned stop function is called, the context is cancelled, or the
// tracker reaches a terminal step. The owner must stop the watch on
// teardown; the ticker goroutine holds no other references.
func (t *ProgressTracker) Watch(ctx context.Context, fn func(ProgressSnapshot)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snapshot := t.Snapshot()
				fn(snapshot)

				if snapshot.Step.Terminal() {
					return
				}
			}
		}
	}()

	return cancel
}
