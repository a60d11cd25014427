package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	scheduleBoard = "schedule_board"

	gatewayFallbacksTotal   = "gateway_fallbacks_total"
	reorderBatchesTotal     = "reorder_batches_total"
	refreshDurationSecsName = "refresh_duration_seconds"

	// Labels
	collectionLabel = "collection"
	resultLabel     = "result"
)

/**
* Metrics definition
**/
var gatewayFallbacksMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: scheduleBoard,
		Name:      gatewayFallbacksTotal,
		Help:      "number of reads served from the local fallback cache because the gateway was unreachable",
	},
	[]string{collectionLabel},
)

var reorderBatchesMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: scheduleBoard,
		Name:      reorderBatchesTotal,
		Help:      "number of drag reorder update batches committed to the gateway",
	},
	[]string{resultLabel},
)

var refreshDurationMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: scheduleBoard,
		Name:      refreshDurationSecsName,
		Help:      "duration of a full board refresh cycle",
		Buckets:   prometheus.DefBuckets,
	},
)

// IncreaseGatewayFallbacksMetric records a read that fell back to the cached
// snapshot for the given collection (jobs or priorities).
func IncreaseGatewayFallbacksMetric(collection string) {
	gatewayFallbacksMetric.With(prometheus.Labels{collectionLabel: collection}).Inc()
}

// IncreaseReorderBatchesMetric records the outcome of a reorder commit,
// result is "ok" or "failed".
func IncreaseReorderBatchesMetric(result string) {
	reorderBatchesMetric.With(prometheus.Labels{resultLabel: result}).Inc()
}

// ObserveRefreshDuration records the wall time of one refresh cycle.
func ObserveRefreshDuration(seconds float64) {
	refreshDurationMetric.Observe(seconds)
}

func init() {
	prometheus.MustRegister(gatewayFallbacksMetric)
	prometheus.MustRegister(reorderBatchesMetric)
	prometheus.MustRegister(refreshDurationMetric)
}
