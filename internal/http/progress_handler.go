package http

import (
	"encoding/json"
	"net/http"

	"loadtest-report/internal/ingestors"
	"loadtest-report/internal/shared/svcerrors"
)

const errCodeProgressEncoding = "HTTP_9000"

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// ProgressReporter is the part of the ingestion service the status server reads.
type ProgressReporter interface {
	Progress() ingestors.Progress
}

type progressHandler struct {
	progress ProgressReporter
}

func NewProgressHandler(progress ProgressReporter) AppHttpHandler {
	return &progressHandler{progress: progress}
}

// Handle serves GET /progress.
func (h *progressHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body, err := json.Marshal(h.progress.Progress())
	if err != nil {
		return svcerrors.NewInternalError(errCodeProgressEncoding, err)
	}

	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
	return nil
}
