package aggregators

import (
	"context"
	"math"
	"runtime/debug"
	"sync"
	"time"

	"loadtest-report/internal/models"
	"loadtest-report/internal/shared/loggers"
	"loadtest-report/internal/shared/metrics"
	"loadtest-report/internal/shared/svcerrors"
)

//go:generate mockgen -source=statistics_aggregator.go -destination=./mocks/statistics_aggregator_mock.go -package=mocks
type StatisticsAggregator interface {
	// Aggregate hands a batch to every provider that wants records and
	// returns once all of them are done with it.
	Aggregate(ctx context.Context, batch *models.PostProcessedBatch)
	// TimeRange returns the min and max record time over all aggregated
	// batches. ok is false until a non-empty batch was aggregated.
	TimeRange() (minTime, maxTime int64, ok bool)
}

// guardedProvider pairs a provider with the lock serialising its calls.
type guardedProvider struct {
	mu       sync.Mutex
	provider ReportProvider
}

type statisticsAggregator struct {
	providers []*guardedProvider

	timeMu  sync.Mutex
	minTime int64
	maxTime int64

	logger loggers.Logger
}

func NewStatisticsAggregator(providers []ReportProvider, logger loggers.Logger) StatisticsAggregator {
	guarded := make([]*guardedProvider, 0, len(providers))
	for _, p := range providers {
		if !p.WantsRecords() {
			continue
		}
		guarded = append(guarded, &guardedProvider{provider: p})
	}
	return &statisticsAggregator{
		providers: guarded,
		minTime:   math.MaxInt64,
		maxTime:   math.MinInt64,
		logger:    logger,
	}
}

// Aggregate fans the batch out to one task per provider. Distinct providers
// run in parallel; a single provider is never entered twice at once.
func (a *statisticsAggregator) Aggregate(ctx context.Context, batch *models.PostProcessedBatch) {
	if batch == nil || batch.IsEmpty() {
		return
	}

	var wg sync.WaitGroup
	for _, gp := range a.providers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.runProvider(ctx, gp, batch)
		}()
	}
	wg.Wait()

	a.timeMu.Lock()
	if batch.MinTime < a.minTime {
		a.minTime = batch.MinTime
	}
	if batch.MaxTime > a.maxTime {
		a.maxTime = batch.MaxTime
	}
	a.timeMu.Unlock()

	metricRecordsAggregatedTotal.Add(float64(len(batch.Records)))
}

func (a *statisticsAggregator) runProvider(ctx context.Context, gp *guardedProvider, batch *models.PostProcessedBatch) {
	gp.mu.Lock()
	defer gp.mu.Unlock()

	name := gp.provider.Name()
	start := time.Now()
	defer func() {
		metricProviderDurationSeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	defer func() {
		if r := recover(); r != nil {
			svcErr := errProviderPanic(name, svcerrors.PanicToError(r))
			a.logger.Error().
				Err(svcErr).
				Str(loggers.FieldProvider, name).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("report provider panic recovered")
			metricProviderBatchesTotal.WithLabelValues(name, svcErr.Code).Inc()
		}
	}()

	if err := gp.provider.ProcessAll(ctx, batch); err != nil {
		svcErr := errProviderFailed(name, err)
		a.logger.Error().
			Err(svcErr).
			Str(loggers.FieldProvider, name).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Int("records", len(batch.Records)).
			Msg("report provider failed, batch contribution lost")
		metricProviderBatchesTotal.WithLabelValues(name, svcErr.Code).Inc()
		return
	}
	metricProviderBatchesTotal.WithLabelValues(name, metrics.ValueNoError).Inc()
}

func (a *statisticsAggregator) TimeRange() (int64, int64, bool) {
	a.timeMu.Lock()
	defer a.timeMu.Unlock()

	if a.minTime > a.maxTime {
		return 0, 0, false
	}
	return a.minTime, a.maxTime, true
}
