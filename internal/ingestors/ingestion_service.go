package ingestors

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync/atomic"
	"time"

	"loadtest-report/internal/aggregators"
	"loadtest-report/internal/decoders"
	"loadtest-report/internal/models"
	"loadtest-report/internal/rules"
	"loadtest-report/internal/shared/filestorages"
	"loadtest-report/internal/shared/loggers"

	"golang.org/x/sync/errgroup"
)

// Options sizes the pipeline of one run.
type Options struct {
	ReaderThreads                int
	ParserThreads                int
	QueueCapacity                int
	ChunkSize                    int
	RegularFilePattern           string
	ClientPerformanceFilePattern string
	// From and To bound record times in epoch ms; 0 leaves a side open.
	From int64
	To   int64
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// Run reads every user directory below the storage root and returns once
	// all records were parsed, classified and aggregated.
	Run(ctx context.Context, storage filestorages.FileStorage) (*models.RunStatistics, error)
	// Progress describes the current run. It is zero before the first run.
	Progress() Progress
}

type ingestionService struct {
	options      Options
	regularFiles *regexp.Regexp
	cpFiles      *regexp.Regexp
	registry     decoders.Registry
	ruleTable    *rules.RuleTable
	aggregator   aggregators.StatisticsAggregator
	logger       loggers.Logger

	current atomic.Pointer[Coordinator]
}

func NewIngestionService(options Options, registry decoders.Registry, ruleTable *rules.RuleTable, aggregator aggregators.StatisticsAggregator, logger loggers.Logger) (IngestionService, error) {
	regularFiles, err := regexp.Compile(options.RegularFilePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regular file pattern: %w", err)
	}
	cpFiles, err := regexp.Compile(options.ClientPerformanceFilePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid client performance file pattern: %w", err)
	}
	if options.ReaderThreads < 1 || options.ParserThreads < 1 || options.ChunkSize < 1 || options.QueueCapacity < 1 {
		return nil, fmt.Errorf("pool sizes, queue capacity and chunk size must be positive: %+v", options)
	}

	return &ingestionService{
		options:      options,
		regularFiles: regularFiles,
		cpFiles:      cpFiles,
		registry:     registry,
		ruleTable:    ruleTable,
		aggregator:   aggregator,
		logger:       logger,
	}, nil
}

// runCounters are shared by all workers of one run.
type runCounters struct {
	directories  atomic.Int64
	files        atomic.Int64
	fileErrors   atomic.Int64
	lines        atomic.Int64
	decodeErrors atomic.Int64
	records      atomic.Int64
	filtered     atomic.Int64
	dropped      atomic.Int64
	renamed      atomic.Int64
}

func (c *runCounters) snapshot(duration time.Duration) *models.RunStatistics {
	return &models.RunStatistics{
		Directories:    c.directories.Load(),
		Files:          c.files.Load(),
		FileErrors:     c.fileErrors.Load(),
		Lines:          c.lines.Load(),
		DecodeErrors:   c.decodeErrors.Load(),
		Records:        c.records.Load(),
		Filtered:       c.filtered.Load(),
		Dropped:        c.dropped.Load(),
		Renamed:        c.renamed.Load(),
		DurationMillis: duration.Milliseconds(),
	}
}

func (s *ingestionService) Progress() Progress {
	if coordinator := s.current.Load(); coordinator != nil {
		return coordinator.Progress()
	}
	return Progress{}
}

func (s *ingestionService) Run(ctx context.Context, storage filestorages.FileStorage) (*models.RunStatistics, error) {
	start := time.Now()
	logger := s.logger.With().Str(loggers.FieldDirectory, storage.Root()).Logger()

	dirs, err := DiscoverDirectories(ctx, storage)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("directories", len(dirs)).Msg("started ingesting load test results")

	counters := &runCounters{}
	counters.directories.Store(int64(len(dirs)))

	coordinator := NewCoordinator(s.options.QueueCapacity)
	s.current.Store(coordinator)
	// All directories are counted before the first reader starts, so the
	// directory counter cannot reach zero early.
	for range dirs {
		coordinator.BeginDirectory()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	parsers, parserCtx := errgroup.WithContext(runCtx)
	for i := 0; i < s.options.ParserThreads; i++ {
		parser := &recordParser{
			registry:   s.registry,
			ruleTable:  s.ruleTable,
			aggregator: s.aggregator,
			from:       s.options.From,
			to:         s.options.To,
			counters:   counters,
			logger:     logger.With().Str(loggers.FieldComponent, "parser").Int(loggers.FieldWorkerID, i).Logger(),
		}
		parsers.Go(func() error {
			return parser.run(parserCtx, coordinator)
		})
	}

	work := make(chan UserDirectory)
	readers, readerCtx := errgroup.WithContext(runCtx)
	readers.Go(func() error {
		defer close(work)
		for i, dir := range dirs {
			select {
			case work <- dir:
			case <-readerCtx.Done():
				// directories never handed to a reader are finished here
				for range dirs[i:] {
					coordinator.FinishDirectory()
				}
				return readerCtx.Err()
			}
		}
		return nil
	})
	for i := 0; i < s.options.ReaderThreads; i++ {
		reader := &fileReader{
			storage:      storage,
			coordinator:  coordinator,
			registry:     s.registry,
			chunkSize:    s.options.ChunkSize,
			regularFiles: s.regularFiles,
			cpFiles:      s.cpFiles,
			counters:     counters,
		}
		readerLogger := logger.With().Str(loggers.FieldComponent, "reader").Int(loggers.FieldWorkerID, i).Logger()
		readers.Go(func() error {
			for dir := range work {
				if err := reader.ReadDirectory(readerCtx, dir); err != nil {
					if readerCtx.Err() != nil {
						continue
					}
					logDirectoryError(&readerLogger, dir, err)
				}
			}
			return nil
		})
	}

	waitErr := coordinator.AwaitCompletion(runCtx)
	coordinator.Close()
	if waitErr != nil {
		cancel()
	}
	readErr := readers.Wait()
	parseErr := parsers.Wait()

	stats := counters.snapshot(time.Since(start))
	if err := firstRunError(ctx, waitErr, readErr, parseErr); err != nil {
		logger.Warn().Err(err).Msg("ingestion interrupted")
		return stats, err
	}

	logger.Info().
		Int64("files", stats.Files).
		Int64("records", stats.Records).
		Int64("dropped", stats.Dropped).
		Int64("decode_errors", stats.DecodeErrors).
		Int64(loggers.FieldDuration, stats.DurationMillis).
		Msg("finished ingesting load test results")
	return stats, nil
}

// firstRunError prefers the caller's cancellation over errors it caused.
func firstRunError(ctx context.Context, errs ...error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
