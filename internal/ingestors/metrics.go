package ingestors

import (
	"loadtest-report/internal/shared/metrics"
)

var (
	metricFilesReadTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "files_read_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricDirectoriesFinishedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "directories_finished_total",
		},
	)

	metricChunksSubmittedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "chunks_submitted_total",
		},
	)

	metricLinesParsedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParsing,
			Name:      "lines_parsed_total",
		},
		[]string{metrics.FieldTypeCode, metrics.FieldErrorCode},
	)

	// metricRuleDecisionsTotal counts request records per classification
	// outcome: accepted, renamed, dropped or failed.
	metricRuleDecisionsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRules,
			Name:      "decisions_total",
		},
		[]string{metrics.FieldOutcome},
	)
)
