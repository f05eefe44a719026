package aggregators

import (
	"context"

	"loadtest-report/internal/models"
)

//go:generate mockgen -source=report_provider.go -destination=./mocks/report_provider_mock.go -package=mocks
type ReportProvider interface {
	Name() string
	// WantsRecords reports whether the provider consumes per-record data.
	// Providers returning false never see a batch.
	WantsRecords() bool
	// ProcessAll folds one batch into the provider state. It is called
	// repeatedly but never concurrently for the same provider.
	ProcessAll(ctx context.Context, batch *models.PostProcessedBatch) error
}
