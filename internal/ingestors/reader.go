package ingestors

import (
	"bufio"
	"context"
	"errors"
	"regexp"
	"strings"

	"loadtest-report/internal/decoders"
	"loadtest-report/internal/models"
	"loadtest-report/internal/shared/filestorages"
	"loadtest-report/internal/shared/loggers"
	"loadtest-report/internal/shared/metrics"
	"loadtest-report/internal/shared/svcerrors"

	"github.com/hashicorp/go-multierror"
)

const maxLineBytes = 1 << 20

// fileReader turns the timer files of one user directory into line chunks.
type fileReader struct {
	storage      filestorages.FileStorage
	coordinator  *Coordinator
	registry     decoders.Registry
	chunkSize    int
	regularFiles *regexp.Regexp
	cpFiles      *regexp.Regexp
	counters     *runCounters
}

// ReadDirectory reads regular timer files before client-performance ones, so
// that the action names of the directory are known when client-performance
// chunks are parsed. File errors do not stop the directory; they are
// returned combined. The directory is always finished on return.
func (r *fileReader) ReadDirectory(ctx context.Context, dir UserDirectory) error {
	defer r.coordinator.FinishDirectory()

	entries, err := r.storage.List(ctx, dir.Key)
	if err != nil {
		return errFileReadFailed(dir.Key, err)
	}

	var regular, clientPerformance []string
	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		switch {
		case r.regularFiles.MatchString(entry.Name):
			regular = append(regular, entry.Key)
		case r.cpFiles.MatchString(entry.Name):
			clientPerformance = append(clientPerformance, entry.Key)
		}
	}

	actionNames := models.NewActionNameMap()
	var result *multierror.Error
	for _, file := range regular {
		if err := r.readFile(ctx, dir, file, false, actionNames); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result = multierror.Append(result, err)
		}
	}
	for _, file := range clientPerformance {
		if err := r.readFile(ctx, dir, file, true, actionNames); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (r *fileReader) readFile(ctx context.Context, dir UserDirectory, file string, clientPerformance bool, actionNames *models.ActionNameMap) (err error) {
	defer func() {
		if err != nil && ctx.Err() != nil {
			// shutdown, not a broken file
			return
		}
		if err == nil {
			r.counters.files.Add(1)
			metricFilesReadTotal.WithLabelValues(metrics.ValueNoError).Inc()
			return
		}
		r.counters.fileErrors.Add(1)
		svcErr := errFileReadFailed(file, err)
		metricFilesReadTotal.WithLabelValues(svcErr.Code).Inc()
		err = svcErr
	}()

	rc, err := r.storage.Open(ctx, file)
	if err != nil {
		return err
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	newChunk := func(baseLine int) *models.LineChunk {
		return &models.LineChunk{
			Lines:             make([]string, 0, r.chunkSize),
			BaseLineNumber:    baseLine,
			File:              file,
			Provenance:        dir.Provenance,
			ClientPerformance: clientPerformance,
			ActionNames:       actionNames,
		}
	}

	lineNumber := 0
	chunk := newChunk(1)
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if !clientPerformance {
			r.recordActionName(line, actionNames)
		}
		chunk.Lines = append(chunk.Lines, line)

		if len(chunk.Lines) == r.chunkSize {
			if err := r.coordinator.SubmitChunk(ctx, chunk); err != nil {
				return err
			}
			r.counters.lines.Add(int64(len(chunk.Lines)))
			chunk = newChunk(lineNumber + 1)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(chunk.Lines) > 0 {
		if err := r.coordinator.SubmitChunk(ctx, chunk); err != nil {
			return err
		}
		r.counters.lines.Add(int64(len(chunk.Lines)))
	}
	return nil
}

// recordActionName remembers when an action started. Lines that fail to
// decode are left to the parser to report.
func (r *fileReader) recordActionName(line string, actionNames *models.ActionNameMap) {
	if !strings.HasPrefix(line, models.TypeCodeAction+",") {
		return
	}
	record, err := r.registry.Decode(line)
	if err != nil {
		return
	}
	if action, ok := record.(*models.ActionRecord); ok {
		actionNames.Put(action.Time, action.Name)
	}
}

// logDirectoryError logs the combined file errors of one directory.
func logDirectoryError(logger *loggers.Logger, dir UserDirectory, err error) {
	event := logger.Error().
		Err(err).
		Str(loggers.FieldDirectory, dir.Key).
		Str(loggers.FieldAgent, dir.Provenance.AgentName).
		Str(loggers.FieldTestCase, dir.Provenance.TestCaseName).
		Str(loggers.FieldUserID, dir.Provenance.UserID)

	var merr *multierror.Error
	if errors.As(err, &merr) {
		event = event.Int("failed_files", merr.Len())
	}
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		event = event.Str(loggers.FieldErrorCode, svcErr.Code)
	}
	event.Msg("timer files of directory could not be read completely")
}
