// Package metrics provides observability for the mint orchestrator: issuance
// volume by entry point, rejections by error code, and execution latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	MintsTotal     *prometheus.CounterVec
	TokensMinted   prometheus.Counter
	MintRejections *prometheus.CounterVec
	MintDuration   prometheus.Histogram
	Withdrawals    prometheus.Counter
	TransfersTotal prometheus.Counter
}

// New creates and registers all orchestrator metrics.
func New() *Metrics {
	return &Metrics{
		MintsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hypehaus_mints_total",
			Help: "Successful mint requests by entry point",
		}, []string{"entry"}),
		TokensMinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hypehaus_tokens_minted_total",
			Help: "Total tokens issued across all entry points",
		}),
		MintRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hypehaus_mint_rejections_total",
			Help: "Rejected mint requests by error code",
		}, []string{"code"}),
		MintDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hypehaus_mint_duration_seconds",
			Help:    "Duration of mint request execution",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		Withdrawals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hypehaus_withdrawals_total",
			Help: "Total treasury withdrawals executed",
		}),
		TransfersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hypehaus_transfers_total",
			Help: "Total ownership transfers executed",
		}),
	}
}

// ObserveMint records a successful mint of n tokens through an entry point.
func (m *Metrics) ObserveMint(entry string, n int, start time.Time) {
	m.MintsTotal.WithLabelValues(entry).Inc()
	m.TokensMinted.Add(float64(n))
	m.MintDuration.Observe(time.Since(start).Seconds())
}

// ObserveRejection records a failed mint with its error code.
func (m *Metrics) ObserveRejection(code string, start time.Time) {
	m.MintRejections.WithLabelValues(code).Inc()
	m.MintDuration.Observe(time.Since(start).Seconds())
}
