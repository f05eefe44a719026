package aggregators

import (
	"loadtest-report/internal/shared/metrics"
)

var (
	// metricProviderBatchesTotal counts provider invocations by outcome.
	// error_code is empty for batches the provider processed successfully.
	metricProviderBatchesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "provider_batches_total",
		},
		[]string{metrics.FieldProvider, metrics.FieldErrorCode},
	)

	metricProviderDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "provider_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldProvider},
	)

	metricRecordsAggregatedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "records_aggregated_total",
		},
	)
)
