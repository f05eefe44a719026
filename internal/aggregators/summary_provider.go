package aggregators

import (
	"context"
	"sort"
	"sync"

	"loadtest-report/internal/models"
	"loadtest-report/internal/rules"
)

const SummaryProviderName = "summary"

// SummaryProvider accumulates per-series statistics for the run summary.
type SummaryProvider interface {
	ReportProvider
	// Summary returns a snapshot of the accumulated series, sorted by type
	// code and name.
	Summary(runID string, startTime, endTime int64) *models.ReportSummary
}

type summaryProvider struct {
	mu        sync.Mutex
	series    map[models.SeriesKey]*models.SeriesResult
	intervals *rules.RuntimeIntervals
}

// NewSummaryProvider buckets request runtimes by intervals. A nil intervals
// disables the runtime distribution.
func NewSummaryProvider(intervals *rules.RuntimeIntervals) SummaryProvider {
	return &summaryProvider{
		series:    make(map[models.SeriesKey]*models.SeriesResult),
		intervals: intervals,
	}
}

func (p *summaryProvider) Name() string { return SummaryProviderName }

func (p *summaryProvider) WantsRecords() bool { return true }

func (p *summaryProvider) ProcessAll(_ context.Context, batch *models.PostProcessedBatch) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, record := range batch.Records {
		base := record.Base()
		key := models.SeriesKey{TypeCode: record.TypeCode(), Name: base.Name}
		series, ok := p.series[key]
		if !ok {
			series = models.NewSeriesResult(key)
			p.series[key] = series
		}

		switch r := record.(type) {
		case *models.RequestRecord:
			series.AddRuntime(r.Runtime, r.Failed)
			if p.intervals != nil {
				if series.RuntimeBuckets == nil {
					series.RuntimeBuckets = make(map[string]int64)
				}
				series.RuntimeBuckets[p.intervals.Label(r.Runtime)]++
			}
		case models.Timer:
			series.AddRuntime(r.RuntimeMillis(), r.HasFailed())
		case *models.CustomValueRecord:
			series.Count++
			series.ValueSum += r.Value
		default:
			series.Count++
		}
	}
	return nil
}

func (p *summaryProvider) Summary(runID string, startTime, endTime int64) *models.ReportSummary {
	p.mu.Lock()
	defer p.mu.Unlock()

	summary := &models.ReportSummary{
		RunID:     runID,
		StartTime: startTime,
		EndTime:   endTime,
		Series:    make([]*models.SeriesResult, 0, len(p.series)),
	}
	for _, s := range p.series {
		copied := *s
		if copied.MinRuntime > copied.MaxRuntime {
			// series without timers
			copied.MinRuntime, copied.MaxRuntime = 0, 0
		}
		if s.RuntimeBuckets != nil {
			copied.RuntimeBuckets = make(map[string]int64, len(s.RuntimeBuckets))
			for label, n := range s.RuntimeBuckets {
				copied.RuntimeBuckets[label] = n
			}
		}
		summary.Series = append(summary.Series, &copied)
	}
	sort.Slice(summary.Series, func(i, j int) bool {
		a, b := summary.Series[i], summary.Series[j]
		if a.TypeCode != b.TypeCode {
			return a.TypeCode < b.TypeCode
		}
		return a.Name < b.Name
	})
	return summary
}

