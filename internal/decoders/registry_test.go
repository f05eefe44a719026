package decoders_test

import (
	"testing"

	"loadtest-report/internal/decoders"
	"loadtest-report/internal/models"
	"loadtest-report/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_AllRecordTypes(t *testing.T) {
	t.Parallel()

	registry := decoders.NewDefaultRegistry()

	tests := []struct {
		name     string
		line     string
		expected models.Record
	}{
		{
			name: "request",
			line: `R,Homepage.1,1700000000123,250,false,512,20480,200,"https://shop.example.com/?q=a,b",text/html,GET`,
			expected: &models.RequestRecord{
				BaseRecord:    models.BaseRecord{Name: "Homepage.1", Time: 1700000000123},
				Runtime:       250,
				BytesSent:     512,
				BytesReceived: 20480,
				ResponseCode:  200,
				URL:           "https://shop.example.com/?q=a,b",
				ContentType:   "text/html",
				HTTPMethod:    "GET",
			},
		},
		{
			name: "transaction with failure message",
			line: "T,TOrder,1700000001000,9000,true,Timeout waiting for element",
			expected: &models.TransactionRecord{
				BaseRecord:     models.BaseRecord{Name: "TOrder", Time: 1700000001000},
				Runtime:        9000,
				Failed:         true,
				FailureMessage: "Timeout waiting for element",
			},
		},
		{
			name: "transaction without failure message",
			line: "T,TOrder,1700000001000,900,false",
			expected: &models.TransactionRecord{
				BaseRecord: models.BaseRecord{Name: "TOrder", Time: 1700000001000},
				Runtime:    900,
			},
		},
		{
			name: "action",
			line: "A,Homepage,1700000000000,1200,false",
			expected: &models.ActionRecord{
				BaseRecord: models.BaseRecord{Name: "Homepage", Time: 1700000000000},
				Runtime:    1200,
			},
		},
		{
			name: "event",
			line: "E,Retry,1700000000500,TOrder,Element not found",
			expected: &models.EventRecord{
				BaseRecord:   models.BaseRecord{Name: "Retry", Time: 1700000000500},
				TestCaseName: "TOrder",
				Message:      "Element not found",
			},
		},
		{
			name: "custom timer",
			line: "C,PaymentCheck,1700000000600,35,true",
			expected: &models.CustomTimerRecord{
				BaseRecord: models.BaseRecord{Name: "PaymentCheck", Time: 1700000000600},
				Runtime:    35,
				Failed:     true,
			},
		},
		{
			name: "custom value",
			line: "V,CartSize,1700000000700,3.5",
			expected: &models.CustomValueRecord{
				BaseRecord: models.BaseRecord{Name: "CartSize", Time: 1700000000700},
				Value:      3.5,
			},
		},
		{
			name: "page load timing",
			line: "P,DomContentLoaded,1700000000800,410,false",
			expected: &models.PageLoadTimingRecord{
				BaseRecord: models.BaseRecord{Name: "DomContentLoaded", Time: 1700000000800},
				Runtime:    410,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			record, err := registry.Decode(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, record)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	registry := decoders.NewDefaultRegistry()

	tests := []struct {
		name string
		line string
		code string
	}{
		{name: "unknown type code", line: "X,foo,1,2", code: "DEC_1000"},
		{name: "missing type code", line: ",foo,1", code: "DEC_1001"},
		{name: "too few fields", line: "R,foo,1700000000000,250", code: "DEC_1001"},
		{name: "time not a number", line: "A,foo,yesterday,1,false", code: "DEC_1001"},
		{name: "failed not a bool", line: "A,foo,1,1,maybe", code: "DEC_1001"},
		{name: "value not a number", line: "V,foo,1,lots", code: "DEC_1001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			record, err := registry.Decode(tt.line)
			require.Error(t, err)
			assert.Nil(t, record)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, tt.code, svcErr.Code)
			assert.False(t, svcErr.IsConfigurationError())
		})
	}
}

func TestRegistry_CustomDecoders(t *testing.T) {
	t.Parallel()

	registry := decoders.NewRegistry(map[string]decoders.DecodeFunc{
		"Z": func(fields []string) (models.Record, error) {
			return &models.CustomValueRecord{BaseRecord: models.BaseRecord{Name: fields[1]}}, nil
		},
	})

	record, err := registry.Decode("Z,custom")
	require.NoError(t, err)
	assert.Equal(t, "custom", record.Base().Name)
	assert.Equal(t, []string{"Z"}, registry.TypeCodes())

	_, err = registry.Decode("R,x,1,1,false,0,0,200,u,c,GET")
	assert.Error(t, err)
}

func TestDefaultRegistry_TypeCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"A", "C", "E", "P", "R", "T", "V"}, decoders.NewDefaultRegistry().TypeCodes())
}
