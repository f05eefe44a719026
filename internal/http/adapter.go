package http

import (
	"encoding/json"
	"net/http"

	"loadtest-report/internal/shared/loggers"
	"loadtest-report/internal/shared/svcerrors"
)

// ErrorResponse is the body of every failed status server request.
type ErrorResponse struct {
	RequestID        string `json:"requestId"`
	ErrorCategory    string `json:"errorCategory"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

// errorHandlingAdapter turns an AppHttpHandler into a http.HandlerFunc.
// Errors that are not ServiceErrors are reported as SYS_9001.
func errorHandlingAdapter(httpHandler AppHttpHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := httpHandler.Handle(w, r)
		if err == nil {
			return
		}

		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}
		if svcErr.IsInternalError() {
			loggers.Ctx(r.Context()).Error().
				Err(svcErr.Cause).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Msg("internal error in status handler")
		}

		writeErrorResponse(w, r, svcErr)
	}
}

func httpStatusOf(svcErr *svcerrors.ServiceError) int {
	switch {
	case svcErr.IsConfigurationError():
		return http.StatusBadRequest
	case svcErr.IsInternalError():
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetServiceError(svcErr)
	}

	status := httpStatusOf(svcErr)
	loggers.Ctx(r.Context()).Debug().
		Str(loggers.FieldErrorCode, svcErr.Code).
		Int(loggers.FieldHttpStatus, status).
		Msgf("error response: %s", svcErr.Message)

	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		RequestID:        requestID(r),
		ErrorCategory:    svcErr.Category,
		ErrorCode:        svcErr.Code,
		ErrorDescription: svcErr.Message,
	})
}
