package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCAGR(t *testing.T) {
	tests := []struct {
		name  string
		days  int
		start float64
		end   float64
		want  float64
		isNaN bool
	}{
		{name: "ten percent over one trading year", days: 252, start: 10000, end: 11000, want: 10.0},
		{name: "flat balance", days: 252, start: 10000, end: 10000, want: 0.0},
		{name: "zero days is degenerate", days: 0, start: 10000, end: 11000, isNaN: true},
		{name: "negative days is degenerate", days: -3, start: 10000, end: 11000, isNaN: true},
		{name: "zero start balance is degenerate", days: 100, start: 0, end: 11000, isNaN: true},
		{name: "zero end balance is degenerate", days: 100, start: 10000, end: 0, isNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CAGR(tt.days, tt.start, tt.end, 252)
			if tt.isNaN {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCAGRAnnualization(t *testing.T) {
	// Doubling over two trading years compounds to sqrt(2)-1 per year.
	got := CAGR(504, 10000, 20000, 252)
	assert.InDelta(t, (math.Sqrt2-1)*100, got, 1e-9)
}

func TestSummarizeBatch(t *testing.T) {
	batch := [][]float64{
		{100, 110},
		{100, 90},
		{100, 105},
		{100, 95},
	}

	stats, err := SummarizeBatch(batch)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Paths)
	assert.InDelta(t, 100.0, stats.TerminalMean, 1e-9)

	wantStd := sampleStd([]float64{110, 90, 105, 95}, 100)
	assert.InDelta(t, wantStd, stats.TerminalStd, 1e-9)
	assert.InDelta(t, 100-1.96*wantStd, stats.CI95Low, 1e-9)
	assert.InDelta(t, 100+1.96*wantStd, stats.CI95High, 1e-9)

	// 110 and 105 finish above the mean of 100.
	assert.InDelta(t, 0.5, stats.WinFraction, 1e-9)
}

func TestSummarizeBatchEmpty(t *testing.T) {
	_, err := SummarizeBatch(nil)
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = SummarizeBatch([][]float64{{}})
	require.ErrorIs(t, err, ErrInsufficientData)
}
