package rules

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

var intervalSeparator = regexp.MustCompile(`[\s,;]+`)

// RuntimeIntervals partitions runtimes into labelled buckets.
// Boundaries b1 < b2 < ... < bn yield the labels
// "0..b1-1", "b1..b2-1", ..., ">=bn". Without boundaries the only label is ">=0".
type RuntimeIntervals struct {
	boundaries []int64
	labels     []string
}

// ParseRuntimeIntervals parses a list of boundaries separated by commas,
// semicolons or whitespace, e.g. "100, 3000, 5000".
func ParseRuntimeIntervals(s string) (*RuntimeIntervals, error) {
	var boundaries []int64
	for _, token := range intervalSeparator.Split(s, -1) {
		if token == "" {
			continue
		}
		v, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("boundary %q is not an integer", token)
		}
		if v <= 0 {
			return nil, fmt.Errorf("boundary %d must be positive", v)
		}
		if n := len(boundaries); n > 0 && boundaries[n-1] >= v {
			return nil, errors.New("boundaries must be strictly ascending")
		}
		boundaries = append(boundaries, v)
	}
	return NewRuntimeIntervals(boundaries), nil
}

// NewRuntimeIntervals builds the buckets for already validated ascending boundaries.
func NewRuntimeIntervals(boundaries []int64) *RuntimeIntervals {
	labels := make([]string, 0, len(boundaries)+1)
	lower := int64(0)
	for _, b := range boundaries {
		labels = append(labels, fmt.Sprintf("%d..%d", lower, b-1))
		lower = b
	}
	labels = append(labels, fmt.Sprintf(">=%d", lower))

	return &RuntimeIntervals{boundaries: boundaries, labels: labels}
}

// Label returns the bucket label of a runtime value.
func (ri *RuntimeIntervals) Label(runtime int64) string {
	// number of boundaries <= runtime
	i := sort.Search(len(ri.boundaries), func(i int) bool { return ri.boundaries[i] > runtime })
	return ri.labels[i]
}

// Labels returns all bucket labels in ascending order.
func (ri *RuntimeIntervals) Labels() []string {
	return append([]string(nil), ri.labels...)
}
