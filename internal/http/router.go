package http

import (
	"net/http"

	"loadtest-report/internal/shared/loggers"
	"loadtest-report/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates the router of the status server.
func NewRouter(progress ProgressReporter, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	progressHandler := NewProgressHandler(progress)

	router.Get("/progress", errorHandlingAdapter(progressHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
