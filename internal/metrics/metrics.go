package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engine metrics
	ComparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldflow_comparisons_total",
			Help: "Total number of gold vs deposit comparisons",
		},
		[]string{"outcome"},
	)

	ProjectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldflow_projections_total",
			Help: "Total number of continuous compounding projections",
		},
		[]string{"outcome"},
	)

	SeriesLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "goldflow_price_series_samples",
			Help:    "Number of daily samples per comparison",
			Buckets: []float64{30, 90, 365, 730, 1825, 3650, 7300},
		},
	)

	// Provider metrics
	ProviderFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldflow_provider_fetches_total",
			Help: "Total number of price provider fetches",
		},
		[]string{"source", "status"},
	)

	// Transport metrics
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldflow_rpc_requests_total",
			Help: "Total number of gRPC requests",
		},
		[]string{"method", "code"},
	)
)

// Outcome labels
const (
	OutcomeGold     = "gold"
	OutcomeDeposit  = "deposit"
	OutcomeOK       = "ok"
	OutcomeNoData   = "no_data"
	OutcomeInvalid  = "invalid"
	OutcomeOverflow = "overflow"
	OutcomeFailed   = "failed"
	StatusSuccess   = "success"
	StatusError     = "error"
)
