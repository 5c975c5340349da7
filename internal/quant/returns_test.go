package quant

import (
	"math"
	"testing"

	"golang-quant/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsFromCloses(closes []float64) []dto.StockOHLCV {
	bars := make([]dto.StockOHLCV, len(closes))
	for i, c := range closes {
		bars[i] = dto.StockOHLCV{
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
			Timestamp: int64(1700000000 + i*86400),
		}
	}
	return bars
}

func TestLogReturns(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   []float64
	}{
		{
			name:   "consecutive positive closes",
			closes: []float64{100, 110, 99},
			want:   []float64{math.Log(110.0 / 100.0), math.Log(99.0 / 110.0)},
		},
		{
			name:   "non-positive closes dropped before pairing",
			closes: []float64{100, 0, 110},
			want:   []float64{math.Log(110.0 / 100.0)},
		},
		{
			name:   "single close yields nothing",
			closes: []float64{100},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogReturns(barsFromCloses(tt.closes))
			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.InDelta(t, want, got[i].LogReturn, 1e-12)
			}
		})
	}
}

func TestEstimateReturnStats(t *testing.T) {
	t.Run("constant prices give zero drift and volatility", func(t *testing.T) {
		stats, err := EstimateReturnStats(barsFromCloses([]float64{50, 50, 50, 50}), 252)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, stats.MuAnnual, 1e-12)
		assert.InDelta(t, 0.0, stats.SigmaAnnual, 1e-12)
		assert.Equal(t, 3, stats.Observations)
	})

	t.Run("annualization scales mean and std", func(t *testing.T) {
		// Alternating +1%/-1% log steps around 100.
		closes := []float64{100}
		for i := 0; i < 20; i++ {
			factor := math.Exp(0.01)
			if i%2 == 1 {
				factor = math.Exp(-0.01)
			}
			closes = append(closes, closes[len(closes)-1]*factor)
		}
		stats, err := EstimateReturnStats(barsFromCloses(closes), 252)
		require.NoError(t, err)

		returns := LogReturns(barsFromCloses(closes))
		values := make([]float64, len(returns))
		for i, r := range returns {
			values[i] = r.LogReturn
		}
		m := mean(values)
		assert.InDelta(t, m*252, stats.MuAnnual, 1e-9)
		assert.InDelta(t, sampleStd(values, m)*math.Sqrt(252), stats.SigmaAnnual, 1e-9)
	})

	t.Run("fewer than two valid closes fails", func(t *testing.T) {
		_, err := EstimateReturnStats(barsFromCloses([]float64{100, -5, 0}), 252)
		require.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("invalid day count rejected", func(t *testing.T) {
		_, err := EstimateReturnStats(barsFromCloses([]float64{100, 101}), 0)
		require.Error(t, err)
	})
}
