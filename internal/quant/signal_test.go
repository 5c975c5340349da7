package quant

import (
	"testing"
	"time"

	"golang-quant/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsFromOpens(opens []float64) []dto.StockOHLCV {
	bars := make([]dto.StockOHLCV, len(opens))
	for i, o := range opens {
		bars[i] = dto.StockOHLCV{
			Open:      o,
			High:      o + 1,
			Low:       o - 1,
			Close:     o,
			Volume:    1000,
			Timestamp: int64(1700000000 + i*86400),
		}
	}
	return bars
}

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)

	// warmup rows are NaN
	assert.True(t, out[0] != out[0])
	assert.True(t, out[1] != out[1])

	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, 3.0, out[3], 1e-12)
	assert.InDelta(t, 4.0, out[4], 1e-12)
}

func TestDetectCrossovers(t *testing.T) {
	// Spread widens negative, flips positive at index 4, flips back negative
	// at index 8.
	opens := []float64{10, 9, 8, 7, 10, 13, 14, 15, 9, 3}
	events, err := DetectCrossovers(barsFromOpens(opens), 2, 3)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, GoldenCross, events[0].Direction)
	assert.Equal(t, 4, events[0].Index)
	assert.InDelta(t, 10.0, events[0].Price, 1e-12)

	assert.Equal(t, DeathCross, events[1].Direction)
	assert.Equal(t, 8, events[1].Index)
	assert.InDelta(t, 9.0, events[1].Price, 1e-12)
}

func TestDetectCrossoversZeroSpread(t *testing.T) {
	t.Run("zero spread alone never flags", func(t *testing.T) {
		// Spread is 0 at the first defined bar, then turns positive without
		// ever having a non-zero prior sign.
		events, err := DetectCrossovers(barsFromOpens([]float64{5, 5, 6}), 1, 2)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("sign carries through zero spread", func(t *testing.T) {
		// -, +, 0, - : the event lands on the bar where the sign becomes
		// negative again, not on the zero-spread bar.
		events, err := DetectCrossovers(barsFromOpens([]float64{7, 5, 6, 6, 4}), 1, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, GoldenCross, events[0].Direction)
		assert.Equal(t, 2, events[0].Index)
		assert.Equal(t, DeathCross, events[1].Direction)
		assert.Equal(t, 4, events[1].Index)
	})
}

func TestDetectCrossoversErrors(t *testing.T) {
	t.Run("too few bars", func(t *testing.T) {
		_, err := DetectCrossovers(barsFromOpens([]float64{1, 2, 3}), 2, 3)
		require.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("short window must be below long window", func(t *testing.T) {
		_, err := DetectCrossovers(barsFromOpens([]float64{1, 2, 3, 4}), 3, 3)
		require.Error(t, err)
	})
}

func TestFilterCooldown(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mkEvent := func(day int, dir CrossDirection) Crossover {
		return Crossover{Index: day, Time: base.AddDate(0, 0, day), Direction: dir}
	}

	events := []Crossover{
		mkEvent(0, GoldenCross),
		mkEvent(10, DeathCross),
		mkEvent(40, DeathCross),
		mkEvent(60, GoldenCross),
	}

	got := FilterCooldown(events, 30)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 40, got[1].Index)

	// Original slice untouched.
	assert.Len(t, events, 4)
	assert.Equal(t, 10, events[1].Index)

	// No cooldown keeps everything.
	assert.Len(t, FilterCooldown(events, 0), 4)
}
