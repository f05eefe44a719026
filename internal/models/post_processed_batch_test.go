package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostProcessedBatch_TracksTimeRange(t *testing.T) {
	t.Parallel()

	batch := NewPostProcessedBatch(3)
	assert.True(t, batch.IsEmpty())
	assert.Equal(t, int64(math.MaxInt64), batch.MinTime)
	assert.Equal(t, int64(math.MinInt64), batch.MaxTime)

	batch.Add(&RequestRecord{BaseRecord: BaseRecord{Name: "a", Time: 2000}})
	batch.Add(&EventRecord{BaseRecord: BaseRecord{Name: "b", Time: 1500}})
	batch.Add(&TransactionRecord{BaseRecord: BaseRecord{Name: "c", Time: 4000}})

	assert.False(t, batch.IsEmpty())
	assert.Len(t, batch.Records, 3)
	assert.Equal(t, int64(1500), batch.MinTime)
	assert.Equal(t, int64(4000), batch.MaxTime)
}

func TestSeriesResult_AddRuntime(t *testing.T) {
	t.Parallel()

	series := NewSeriesResult(SeriesKey{TypeCode: TypeCodeRequest, Name: "Homepage"})
	assert.Equal(t, float64(0), series.MeanRuntime())

	series.AddRuntime(100, false)
	series.AddRuntime(300, true)
	series.AddRuntime(50, false)

	assert.Equal(t, int64(3), series.Count)
	assert.Equal(t, int64(1), series.Errors)
	assert.Equal(t, int64(50), series.MinRuntime)
	assert.Equal(t, int64(300), series.MaxRuntime)
	assert.Equal(t, int64(450), series.TotalRuntime)
	assert.Equal(t, float64(150), series.MeanRuntime())
}

func TestLineChunk_LineNumber(t *testing.T) {
	t.Parallel()

	chunk := &LineChunk{Lines: []string{"a", "b", "c"}, BaseLineNumber: 1001}
	assert.Equal(t, 1001, chunk.LineNumber(0))
	assert.Equal(t, 1003, chunk.LineNumber(2))
}
