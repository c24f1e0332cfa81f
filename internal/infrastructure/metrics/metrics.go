package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the wallet service.
type Metrics struct {
	// Connection channel metrics
	ConnectionsInitiated prometheus.Counter
	ConnectionsCompleted prometheus.Counter
	ConnectionsExpired   prometheus.Counter
	DecryptFailures      *prometheus.CounterVec

	// Donation pipeline metrics
	DonationsSubmitted *prometheus.CounterVec
	DonationDuration   prometheus.Histogram
	DonationAmount     prometheus.Histogram
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ConnectionsInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wihngo_wallet_connections_initiated_total",
			Help: "Total number of wallet connection handshakes started",
		}),
		ConnectionsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wihngo_wallet_connections_completed_total",
			Help: "Total number of wallet connections successfully decrypted",
		}),
		ConnectionsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wihngo_wallet_connections_expired_total",
			Help: "Total number of pending connections evicted by TTL sweep",
		}),
		DecryptFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wihngo_wallet_decrypt_failures_total",
				Help: "Total number of connect-decrypt failures by reason",
			},
			[]string{"reason"},
		),

		DonationsSubmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wihngo_wallet_donations_submitted_total",
				Help: "Total number of donation pipeline runs by outcome",
			},
			[]string{"outcome"},
		),
		DonationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wihngo_wallet_donation_duration_seconds",
			Help:    "Duration of full donation pipeline runs",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		DonationAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wihngo_wallet_donation_amount_usdc",
			Help:    "Donation amounts in USDC",
			Buckets: []float64{0.5, 1, 5, 10, 25, 50, 100, 500},
		}),
	}
}
