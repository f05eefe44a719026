package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"loadtest-report/internal/aggregators"
	"loadtest-report/internal/decoders"
	internalhttp "loadtest-report/internal/http"
	"loadtest-report/internal/ingestors"
	"loadtest-report/internal/models"
	"loadtest-report/internal/rules"
	"loadtest-report/internal/shared/configs"
	"loadtest-report/internal/shared/filestorages"
	"loadtest-report/internal/shared/loggers"
	"loadtest-report/internal/shared/ulid"
	"loadtest-report/internal/stores"
)

const appName = "loadtest-report"

// RunResult describes one finished report run.
type RunResult struct {
	RunID      string
	ReportPath string
	Summary    *models.ReportSummary
}

// App holds the dependencies of one report run and manages its lifecycle.
type App struct {
	config    *configs.Config
	runID     string
	appLogger loggers.Logger
	server    *http.Server

	inputStorage     filestorages.FileStorage
	outputStorage    filestorages.FileStorage
	reportStore      stores.ReportStore
	summaryProvider  aggregators.SummaryProvider
	aggregator       aggregators.StatisticsAggregator
	ingestionService ingestors.IngestionService
}

// LoadConfig reads the config file, or returns the defaults when path is empty.
// Any failure is a configuration error.
func LoadConfig(path string) (*configs.Config, error) {
	var (
		cfg *configs.Config
		err error
	)
	if path == "" {
		cfg, err = configs.DefaultConfig()
	} else {
		cfg, err = configs.LoadConfig(path)
	}
	if err != nil {
		return nil, errInvalidConfig("invalid configuration", err)
	}
	return cfg, nil
}

// LoadRuleTable builds the request merge rule table from a YAML file.
// An empty path yields a table without rules.
func LoadRuleTable(path string) (*rules.RuleTable, error) {
	if path == "" {
		return rules.NewRuleTable(nil)
	}
	defs, err := rules.LoadDefinitionsFile(path)
	if err != nil {
		return nil, err
	}
	return rules.BuildRuleTable(defs)
}

// New wires a report run over the results in inputDir.
// Every configuration problem is reported here, before any file is read.
func New(config *configs.Config, inputDir string) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, errInvalidConfig(fmt.Sprintf("invalid log level %q", config.Log.Level), err)
	}
	return NewWithLogger(config, inputDir, appLogger)
}

// NewWithLogger is New with a caller supplied base logger.
func NewWithLogger(config *configs.Config, inputDir string, baseLogger loggers.Logger) (*App, error) {
	runID := ulid.NewRunID()
	appLogger := baseLogger.With().
		Str(loggers.FieldApp, appName).
		Str(loggers.FieldRunID, runID).
		Logger()

	ruleTable, err := LoadRuleTable(config.Rules.File)
	if err != nil {
		return nil, err
	}
	intervals, err := rules.ParseRuntimeIntervals(config.Report.RuntimeIntervals)
	if err != nil {
		return nil, errInvalidConfig("invalid report.runtime_intervals", err)
	}

	inputStorage, err := filestorages.NewFileStorage(inputDir)
	if err != nil {
		return nil, errInvalidStorage("invalid results directory", err)
	}
	outputStorage, err := filestorages.NewFileStorage(config.Report.OutputDir)
	if err != nil {
		return nil, errInvalidStorage("invalid report directory", err)
	}
	reportStore := stores.NewReportStore(outputStorage, config.Report.Overwrite)

	summaryProvider := aggregators.NewSummaryProvider(intervals)
	aggregatorLogger := appLogger.With().Str(loggers.FieldComponent, "aggregator").Logger()
	aggregator := aggregators.NewStatisticsAggregator([]aggregators.ReportProvider{summaryProvider}, aggregatorLogger)

	ingestionLogger := appLogger.With().Str(loggers.FieldComponent, "ingestion").Logger()
	ingestionService, err := ingestors.NewIngestionService(
		ingestionOptions(config.Ingestion),
		decoders.NewDefaultRegistry(),
		ruleTable,
		aggregator,
		ingestionLogger,
	)
	if err != nil {
		return nil, errInvalidOptions(err)
	}

	app := &App{
		config:           config,
		runID:            runID,
		appLogger:        appLogger,
		inputStorage:     inputStorage,
		outputStorage:    outputStorage,
		reportStore:      reportStore,
		summaryProvider:  summaryProvider,
		aggregator:       aggregator,
		ingestionService: ingestionService,
	}

	if config.StatusServer.Enabled {
		httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
		app.server = &http.Server{
			Addr:              fmt.Sprintf(":%d", config.StatusServer.Port),
			Handler:           internalhttp.NewRouter(ingestionService, httpLogger),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	appLogger.Info().
		Int("rules", ruleTable.Len()).
		Msgf("report run prepared (input=%s, output=%s)", inputStorage.Root(), outputStorage.Root())

	return app, nil
}

func ingestionOptions(cfg configs.IngestionConfig) ingestors.Options {
	return ingestors.Options{
		ReaderThreads:                cfg.ReaderThreads,
		ParserThreads:                cfg.ParserThreads,
		QueueCapacity:                cfg.QueueCapacity,
		ChunkSize:                    cfg.ChunkSize,
		RegularFilePattern:           cfg.RegularFilePattern,
		ClientPerformanceFilePattern: cfg.ClientPerformanceFilePattern,
		From:                         cfg.From,
		To:                           cfg.To,
	}
}

func (app *App) RunID() string {
	return app.runID
}

// Progress reports the state of the running pipeline.
func (app *App) Progress() ingestors.Progress {
	return app.ingestionService.Progress()
}

// Run ingests all results, aggregates them and writes the summary report.
// It blocks until the report is written or ctx is cancelled.
func (app *App) Run(ctx context.Context) (*RunResult, error) {
	if app.server != nil {
		app.startStatusServer()
		defer app.stopStatusServer()
	}

	app.appLogger.Info().Msg("report run started")
	stats, err := app.ingestionService.Run(ctx, app.inputStorage)
	if err != nil {
		return nil, err
	}

	startTime, endTime, ok := app.aggregator.TimeRange()
	if !ok {
		app.appLogger.Warn().Msg("no records survived ingestion, writing an empty report")
	}
	summary := app.summaryProvider.Summary(app.runID, startTime, endTime)
	summary.Statistics = stats

	key, err := app.reportStore.Put(ctx, summary)
	if err != nil {
		return nil, errReportWrite(app.runID, err)
	}
	reportPath := filepath.Join(app.outputStorage.Root(), filepath.FromSlash(key))

	app.appLogger.Info().
		Int64("records", stats.Records).
		Int64("dropped", stats.Dropped).
		Int64("decode_errors", stats.DecodeErrors).
		Int64(loggers.FieldDuration, stats.DurationMillis).
		Msgf("report written to %s", reportPath)

	return &RunResult{RunID: app.runID, ReportPath: reportPath, Summary: summary}, nil
}

func (app *App) startStatusServer() {
	app.appLogger.Info().Msgf("starting status server on %s", app.server.Addr)
	go func() {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.appLogger.Error().Err(err).Msg("status server failed")
		}
	}()
}

func (app *App) stopStatusServer() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.server.Shutdown(ctx); err != nil {
		app.appLogger.Error().Err(err).Msg("status server shutdown failed")
		return
	}
	app.appLogger.Info().Msg("status server stopped")
}
