package aggregators

import (
	"context"
	"testing"

	"loadtest-report/internal/models"
	"loadtest-report/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(name string, runtime int64, failed bool) *models.RequestRecord {
	return &models.RequestRecord{
		BaseRecord: models.BaseRecord{Name: name, Time: 1000},
		Runtime:    runtime,
		Failed:     failed,
	}
}

func TestSummaryProvider_AccumulatesSeries(t *testing.T) {
	t.Parallel()

	provider := NewSummaryProvider(rules.NewRuntimeIntervals([]int64{100, 1000}))
	ctx := context.Background()

	first := models.NewPostProcessedBatch(4)
	first.Add(request("Homepage", 50, false))
	first.Add(request("Homepage", 400, true))
	first.Add(&models.TransactionRecord{BaseRecord: models.BaseRecord{Name: "TOrder", Time: 1000}, Runtime: 5000})
	first.Add(&models.CustomValueRecord{BaseRecord: models.BaseRecord{Name: "CartSize", Time: 1000}, Value: 2.5})
	require.NoError(t, provider.ProcessAll(ctx, first))

	second := models.NewPostProcessedBatch(2)
	second.Add(request("Homepage", 1500, false))
	second.Add(&models.CustomValueRecord{BaseRecord: models.BaseRecord{Name: "CartSize", Time: 2000}, Value: 1.5})
	require.NoError(t, provider.ProcessAll(ctx, second))

	summary := provider.Summary("run-1", 1000, 2000)

	assert.Equal(t, "run-1", summary.RunID)
	require.Len(t, summary.Series, 3)

	homepage := summary.Series[0]
	assert.Equal(t, "R", homepage.TypeCode)
	assert.Equal(t, "Homepage", homepage.Name)
	assert.Equal(t, int64(3), homepage.Count)
	assert.Equal(t, int64(1), homepage.Errors)
	assert.Equal(t, int64(50), homepage.MinRuntime)
	assert.Equal(t, int64(1500), homepage.MaxRuntime)
	assert.Equal(t, int64(1950), homepage.TotalRuntime)
	assert.Equal(t, map[string]int64{"0..99": 1, "100..999": 1, ">=1000": 1}, homepage.RuntimeBuckets)

	order := summary.Series[1]
	assert.Equal(t, "T", order.TypeCode)
	assert.Equal(t, int64(5000), order.MinRuntime)
	assert.Nil(t, order.RuntimeBuckets)

	cartSize := summary.Series[2]
	assert.Equal(t, "V", cartSize.TypeCode)
	assert.Equal(t, int64(2), cartSize.Count)
	assert.InDelta(t, 4.0, cartSize.ValueSum, 1e-9)
	assert.Equal(t, int64(0), cartSize.MinRuntime)
	assert.Equal(t, int64(0), cartSize.MaxRuntime)
}

func TestSummaryProvider_SnapshotIsDetached(t *testing.T) {
	t.Parallel()

	provider := NewSummaryProvider(nil)
	batch := models.NewPostProcessedBatch(1)
	batch.Add(request("Homepage", 50, false))
	require.NoError(t, provider.ProcessAll(context.Background(), batch))

	summary := provider.Summary("run-1", 0, 0)
	summary.Series[0].Count = 99

	assert.Equal(t, int64(1), provider.Summary("run-1", 0, 0).Series[0].Count)
	assert.Nil(t, summary.Series[0].RuntimeBuckets)
	assert.Equal(t, SummaryProviderName, provider.Name())
	assert.True(t, provider.WantsRecords())
}
