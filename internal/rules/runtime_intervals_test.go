package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntimeIntervals_Label(t *testing.T) {
	t.Parallel()

	intervals, err := ParseRuntimeIntervals("100,3000,5000")
	require.NoError(t, err)

	tests := []struct {
		runtime  int64
		expected string
	}{
		{runtime: 0, expected: "0..99"},
		{runtime: 99, expected: "0..99"},
		{runtime: 100, expected: "100..2999"},
		{runtime: 2999, expected: "100..2999"},
		{runtime: 3000, expected: "3000..4999"},
		{runtime: 5000, expected: ">=5000"},
		{runtime: 50701, expected: ">=5000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, intervals.Label(tt.runtime), "runtime %d", tt.runtime)
	}
	assert.Equal(t, []string{"0..99", "100..2999", "3000..4999", ">=5000"}, intervals.Labels())
}

func TestParseRuntimeIntervals_Separators(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"100,3000,5000", "100; 3000; 5000", " 100 3000\t5000 ", "100,,3000 ,5000"} {
		intervals, err := ParseRuntimeIntervals(input)
		require.NoError(t, err, input)
		assert.Equal(t, []string{"0..99", "100..2999", "3000..4999", ">=5000"}, intervals.Labels(), input)
	}
}

func TestParseRuntimeIntervals_NoBoundaries(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", ","} {
		intervals, err := ParseRuntimeIntervals(input)
		require.NoError(t, err)
		assert.Equal(t, ">=0", intervals.Label(0))
		assert.Equal(t, ">=0", intervals.Label(123456))
	}
}

func TestParseRuntimeIntervals_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "not a number", input: "100,abc"},
		{name: "zero", input: "0,100"},
		{name: "negative", input: "-5"},
		{name: "descending", input: "300,200"},
		{name: "duplicate", input: "100,100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRuntimeIntervals(tt.input)
			assert.Error(t, err)
		})
	}
}
