package http

import (
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"loadtest-report/internal/shared/loggers"
	"loadtest-report/internal/shared/svcerrors"
	"loadtest-report/internal/shared/ulid"

	"github.com/go-chi/chi/v5"
)

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwObserve)
	router.Use(mwRecoverer)
}

// mwRequestID reuses or generates a request id and puts a logger carrying it into the context.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestID(r)
			if id == "" {
				id = ulid.NewULID()
				setRequestID(r, id)
			}
			ctx := httpLogger.With().
				Str(loggers.FieldRequestID, id).
				Logger().WithContext(r.Context())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(newAppResponseWriter(w, r.ProtoMajor), r)
	})
}

// mwObserve counts the request by route pattern and logs its completion.
func mwObserve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			elapsed := time.Since(start)
			status, errorCode := responseOutcome(w)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			labels := []string{r.Method, route, strconv.Itoa(status), errorCode}
			metricHTTPRequestsTotal.WithLabelValues(labels...).Inc()
			metricHTTPRequestDuration.WithLabelValues(labels...).Observe(elapsed.Seconds())

			loggers.Ctx(r.Context()).Info().
				Str(loggers.FieldHttpMethod, r.Method).
				Str(loggers.FieldHttpPath, r.URL.Path).
				Int(loggers.FieldHttpStatus, status).
				Int64(loggers.FieldDuration, elapsed.Milliseconds()).
				Msg("request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

// mwRecoverer turns a handler panic into a SYS_9000 error response.
func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				loggers.Ctx(r.Context()).Error().
					Bytes(loggers.FieldErrorStack, debug.Stack()).
					Msgf("http panic recovered: %v", p)

				writeErrorResponse(w, r, svcerrors.NewInternalErrorPanic(svcerrors.PanicToError(p)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
