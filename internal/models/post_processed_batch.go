package models

import "math"

// PostProcessedBatch holds the records of one chunk that survived decoding
// and classification. The aggregator consumes it exactly once.
type PostProcessedBatch struct {
	Records []Record
	MinTime int64
	MaxTime int64
}

func NewPostProcessedBatch(capacity int) *PostProcessedBatch {
	return &PostProcessedBatch{
		Records: make([]Record, 0, capacity),
		MinTime: math.MaxInt64,
		MaxTime: math.MinInt64,
	}
}

// Add appends a record and widens the batch time range.
func (b *PostProcessedBatch) Add(r Record) {
	b.Records = append(b.Records, r)
	t := r.Base().Time
	if t < b.MinTime {
		b.MinTime = t
	}
	if t > b.MaxTime {
		b.MaxTime = t
	}
}

func (b *PostProcessedBatch) IsEmpty() bool {
	return len(b.Records) == 0
}
