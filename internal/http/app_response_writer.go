package http

import (
	"net/http"

	"loadtest-report/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter records the response status and the ServiceError of a
// failed request for the observing middlewares.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError == nil {
		return ""
	}
	return w.svcError.Code
}

// responseOutcome returns the status written to w, 200 when the handler
// wrote nothing, and the error code of a failed request.
func responseOutcome(w http.ResponseWriter) (int, string) {
	status, errorCode := 0, ""
	if appWriter, ok := w.(*appResponseWriter); ok {
		status, errorCode = appWriter.Status(), appWriter.ErrorCode()
	}
	if status == 0 {
		status = http.StatusOK
	}
	return status, errorCode
}
