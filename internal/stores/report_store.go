package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"loadtest-report/internal/models"
	"loadtest-report/internal/shared/filestorages"
)

var (
	ErrReportAlreadyExists = errors.New("report already exists")
	ErrReportNotFound      = errors.New("report not found")
)

const summaryFileName = "summary.json"

// ReportStore persists run summaries under "<run_id>/summary.json" of the
// report output directory.
//
// Without overwrite, Put is a create-if-not-exists: a second report for the
// same run id fails with ErrReportAlreadyExists and the first one is kept.
//
//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	Put(ctx context.Context, summary *models.ReportSummary) (string, error)
	Get(ctx context.Context, runID string) (*models.ReportSummary, error)
}

type reportStore struct {
	fileStorage filestorages.FileStorage
	overwrite   bool
}

func NewReportStore(fileStorage filestorages.FileStorage, overwrite bool) ReportStore {
	return &reportStore{fileStorage: fileStorage, overwrite: overwrite}
}

// Put writes the summary and returns its file key.
func (s *reportStore) Put(ctx context.Context, summary *models.ReportSummary) (string, error) {
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report summary: %w", err)
	}

	key := s.getKey(summary.RunID)
	result, err := s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: s.overwrite})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return "", fmt.Errorf("%w: %s", ErrReportAlreadyExists, key)
		}
		return "", fmt.Errorf("failed to put report summary: %w", err)
	}
	return result.FileKey, nil
}

func (s *reportStore) Get(ctx context.Context, runID string) (*models.ReportSummary, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.getKey(runID))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report summary: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read report summary: %w", err)
	}
	var summary models.ReportSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report summary: %w", err)
	}
	return &summary, nil
}

func (s *reportStore) getKey(runID string) string {
	return fmt.Sprintf("%s/%s", runID, summaryFileName)
}
