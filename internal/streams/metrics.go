package streams

import (
	"loadtest-report/internal/shared/metrics"
)

var (
	metricQueueDepth = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "queue_depth",
		},
		[]string{"queue"},
	)

	metricQueueBlockedPutsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "queue_blocked_puts_total",
		},
		[]string{"queue"},
	)
)
