package ingestors

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"

	"loadtest-report/internal/aggregators"
	"loadtest-report/internal/decoders"
	"loadtest-report/internal/models"
	"loadtest-report/internal/rules"
	"loadtest-report/internal/shared/loggers"
	"loadtest-report/internal/shared/metrics"
	"loadtest-report/internal/shared/svcerrors"
	"loadtest-report/internal/streams"
)

const (
	outcomeAccepted = "accepted"
	outcomeRenamed  = "renamed"
	outcomeDropped  = "dropped"
	outcomeFailed   = "failed"
)

// recordParser decodes, filters and classifies the lines of a chunk.
type recordParser struct {
	registry   decoders.Registry
	ruleTable  *rules.RuleTable
	aggregator aggregators.StatisticsAggregator
	from, to   int64
	counters   *runCounters
	logger     loggers.Logger
}

// run takes chunks until the coordinator is closed or ctx is done.
func (p *recordParser) run(ctx context.Context, coordinator *Coordinator) error {
	for {
		chunk, err := coordinator.TakeChunk(ctx)
		if err != nil {
			if errors.Is(err, streams.ErrQueueClosed) {
				return nil
			}
			return err
		}
		p.processChunk(ctx, coordinator, chunk)
	}
}

func (p *recordParser) processChunk(ctx context.Context, coordinator *Coordinator, chunk *models.LineChunk) {
	defer coordinator.FinishBatch()
	defer func() {
		if r := recover(); r != nil {
			svcErr := svcerrors.NewInternalErrorPanic(svcerrors.PanicToError(r))
			p.logger.Error().
				Err(svcErr).
				Str(loggers.FieldFile, chunk.File).
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("parser panic recovered, chunk lost")
		}
	}()

	batch := p.parseChunk(chunk)
	p.aggregator.Aggregate(ctx, batch)
}

// parseChunk returns the records of chunk that survive the time filter and
// the rule table.
func (p *recordParser) parseChunk(chunk *models.LineChunk) *models.PostProcessedBatch {
	batch := models.NewPostProcessedBatch(len(chunk.Lines))
	for i, line := range chunk.Lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		record, err := p.decode(line)
		if err != nil {
			p.counters.decodeErrors.Add(1)
			var code string
			if svcErr, ok := svcerrors.AsServiceError(err); ok {
				code = svcErr.Code
			}
			p.logger.Warn().
				Err(err).
				Str(loggers.FieldFile, chunk.File).
				Int(loggers.FieldLineNumber, chunk.LineNumber(i)).
				Str(loggers.FieldErrorCode, code).
				Msg("skipping undecodable line")
			metricLinesParsedTotal.WithLabelValues("", code).Inc()
			continue
		}
		metricLinesParsedTotal.WithLabelValues(record.TypeCode(), metrics.ValueNoError).Inc()
		p.counters.records.Add(1)

		base := record.Base()
		base.AgentName = chunk.Provenance.AgentName
		base.TransactionName = chunk.Provenance.TestCaseName

		if (p.from > 0 && base.Time < p.from) || (p.to > 0 && base.Time > p.to) {
			p.counters.filtered.Add(1)
			continue
		}

		if chunk.ClientPerformance && chunk.ActionNames != nil {
			resolveActionName(record, chunk.ActionNames)
		}

		if request, ok := record.(*models.RequestRecord); ok {
			if !p.classify(request, chunk, i) {
				continue
			}
		}
		batch.Add(record)
	}
	return batch
}

// decode turns a decoder panic into an error so that only the offending line is lost.
func (p *recordParser) decode(line string) (record models.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = errDecoderPanic(svcerrors.PanicToError(r))
		}
	}()
	return p.registry.Decode(line)
}

// classify runs a request through the rule table and reports whether it is kept.
// A rule failure costs the record, not the batch.
func (p *recordParser) classify(request *models.RequestRecord, chunk *models.LineChunk, i int) (keep bool) {
	defer func() {
		if r := recover(); r != nil {
			keep = false
			p.counters.dropped.Add(1)
			metricRuleDecisionsTotal.WithLabelValues(outcomeFailed).Inc()
			p.logger.Warn().
				Err(svcerrors.PanicToError(r)).
				Str(loggers.FieldFile, chunk.File).
				Int(loggers.FieldLineNumber, chunk.LineNumber(i)).
				Msg("request classification failed, record dropped")
		}
	}()

	if p.ruleTable == nil || p.ruleTable.Len() == 0 {
		return true
	}

	name := request.Name
	if p.ruleTable.Apply(request) == rules.Dropped {
		p.counters.dropped.Add(1)
		metricRuleDecisionsTotal.WithLabelValues(outcomeDropped).Inc()
		return false
	}
	if request.Name != name {
		p.counters.renamed.Add(1)
		metricRuleDecisionsTotal.WithLabelValues(outcomeRenamed).Inc()
	} else {
		metricRuleDecisionsTotal.WithLabelValues(outcomeAccepted).Inc()
	}
	return true
}

// resolveActionName attributes client-performance records to the action
// that started last at or before the record time.
func resolveActionName(record models.Record, actionNames *models.ActionNameMap) {
	switch r := record.(type) {
	case *models.RequestRecord:
		if name, ok := actionNames.Floor(r.Time); ok {
			r.ActionName = name
		}
	case *models.PageLoadTimingRecord:
		if name, ok := actionNames.Floor(r.Time); ok {
			r.ActionName = name
		}
	}
}
