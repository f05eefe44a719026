package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"loadtest-report/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appHandlerFunc func(w http.ResponseWriter, r *http.Request) error

func (f appHandlerFunc) Handle(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

func TestErrorHandlingAdapter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		err              error
		expectedStatus   int
		expectedCategory string
		expectedCode     string
	}{
		{
			name:             "configuration error",
			err:              svcerrors.NewConfigurationError("RUL_1000", "invalid pattern", nil),
			expectedStatus:   http.StatusBadRequest,
			expectedCategory: "configuration",
			expectedCode:     "RUL_1000",
		},
		{
			name:             "io error",
			err:              svcerrors.NewIOError("ING_9000", "file read failed", nil),
			expectedStatus:   http.StatusServiceUnavailable,
			expectedCategory: "io",
			expectedCode:     "ING_9000",
		},
		{
			name:             "wrapped service error",
			err:              fmt.Errorf("progress: %w", svcerrors.NewProviderError("AGG_9000", "provider failed", nil)),
			expectedStatus:   http.StatusServiceUnavailable,
			expectedCategory: "provider",
			expectedCode:     "AGG_9000",
		},
		{
			name:             "internal error",
			err:              svcerrors.NewInternalError("HTTP_9000", nil),
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "HTTP_9000",
		},
		{
			name:             "plain error",
			err:              assert.AnError,
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "SYS_9001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := mwAppResponseWriter(errorHandlingAdapter(appHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
				return tt.err
			})))

			req := httptest.NewRequest(http.MethodGet, "/progress", nil)
			req.Header.Set(headerRequestID, "req-"+tt.expectedCode)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var errorResponse ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
			assert.Equal(t, "req-"+tt.expectedCode, errorResponse.RequestID)
			assert.Equal(t, tt.expectedCategory, errorResponse.ErrorCategory)
			assert.Equal(t, tt.expectedCode, errorResponse.ErrorCode)
		})
	}
}

func TestErrorHandlingAdapter_NoError(t *testing.T) {
	t.Parallel()

	handler := errorHandlingAdapter(appHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
		return nil
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/progress", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Body.String())
}
