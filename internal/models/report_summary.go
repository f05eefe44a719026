package models

import "math"

// ReportSummary is the per-run statistics document written to the report directory.
//
// Example JSON:
//
//	{
//	  "runId": "run-01JAB3NDEKTSV4RRFFQ69G5FAV",
//	  "startTime": 1700000000000,
//	  "endTime": 1700000360000,
//	  "series": [
//	    {
//	      "typeCode": "R",
//	      "name": "Homepage [200]",
//	      "count": 120,
//	      "errors": 2,
//	      "minRuntime": 35,
//	      "maxRuntime": 4120,
//	      "totalRuntime": 48211,
//	      "runtimeBuckets": {"0..99": 80, "100..2999": 38, ">=3000": 2}
//	    }
//	  ]
//	}
type ReportSummary struct {
	RunID      string          `json:"runId"`
	StartTime  int64           `json:"startTime"`
	EndTime    int64           `json:"endTime"`
	Statistics *RunStatistics  `json:"statistics,omitempty"`
	Series     []*SeriesResult `json:"series"`
}

// RunStatistics describes what the ingestion pipeline saw during one run.
type RunStatistics struct {
	Directories    int64 `json:"directories"`
	Files          int64 `json:"files"`
	FileErrors     int64 `json:"fileErrors"`
	Lines          int64 `json:"lines"`
	DecodeErrors   int64 `json:"decodeErrors"`
	Records        int64 `json:"records"`
	Filtered       int64 `json:"filtered"`
	Dropped        int64 `json:"dropped"`
	Renamed        int64 `json:"renamed"`
	DurationMillis int64 `json:"durationMillis"`
}

// SeriesKey identifies one statistics series: a record type and a (possibly renamed) name.
type SeriesKey struct {
	TypeCode string
	Name     string
}

// SeriesResult accumulates the statistics of one series.
type SeriesResult struct {
	TypeCode       string           `json:"typeCode"`
	Name           string           `json:"name"`
	Count          int64            `json:"count"`
	Errors         int64            `json:"errors"`
	MinRuntime     int64            `json:"minRuntime"`
	MaxRuntime     int64            `json:"maxRuntime"`
	TotalRuntime   int64            `json:"totalRuntime"`
	ValueSum       float64          `json:"valueSum,omitempty"`
	RuntimeBuckets map[string]int64 `json:"runtimeBuckets,omitempty"`
}

func NewSeriesResult(key SeriesKey) *SeriesResult {
	return &SeriesResult{
		TypeCode:   key.TypeCode,
		Name:       key.Name,
		MinRuntime: math.MaxInt64,
		MaxRuntime: math.MinInt64,
	}
}

// AddRuntime folds one timer measurement into the series.
func (s *SeriesResult) AddRuntime(runtime int64, failed bool) {
	s.Count++
	if failed {
		s.Errors++
	}
	s.TotalRuntime += runtime
	if runtime < s.MinRuntime {
		s.MinRuntime = runtime
	}
	if runtime > s.MaxRuntime {
		s.MaxRuntime = runtime
	}
}

// MeanRuntime returns the average runtime, or 0 for an empty series.
func (s *SeriesResult) MeanRuntime() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.TotalRuntime) / float64(s.Count)
}
