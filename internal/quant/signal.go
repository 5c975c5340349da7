package quant

import (
	"fmt"
	"math"
	"time"

	"golang-quant/internal/dto"
)

type CrossDirection string

const (
	// GoldenCross is the short SMA crossing above the long SMA (buy).
	GoldenCross CrossDirection = "golden"
	// DeathCross is the short SMA crossing below the long SMA (sell).
	DeathCross CrossDirection = "death"
)

// Crossover is one detected signal event, anchored to the bar where the
// spread sign changed.
type Crossover struct {
	Index     int
	Time      time.Time
	Price     float64
	Direction CrossDirection
}

// SMA over the last `p` points; returns a slice aligned to input length
// with NaNs for warmup.
func SMA(x []float64, p int) []float64 {
	if p <= 0 {
		return nil
	}
	out := make([]float64, len(x))
	var sum float64
	for i := range x {
		sum += x[i]
		if i < p-1 {
			out[i] = math.NaN()
			continue
		}
		if i >= p {
			sum -= x[i-p]
		}
		out[i] = sum / float64(p)
	}
	return out
}

// DetectCrossovers computes the dual-SMA crossover events of a bar series.
// Both averages run over open prices. A zero spread carries the previous
// non-zero sign forward, so an exact touch never flags an event on its own.
// Event prices are the open of the bar where the sign flipped.
func DetectCrossovers(bars []dto.StockOHLCV, shortWindow, longWindow int) ([]Crossover, error) {
	if shortWindow <= 0 || longWindow <= 0 || shortWindow >= longWindow {
		return nil, fmt.Errorf("invalid SMA windows short=%d long=%d", shortWindow, longWindow)
	}
	// Need one defined spread plus at least one more bar to observe a flip.
	if len(bars) <= longWindow {
		return nil, fmt.Errorf("need more than %d bars for SMA windows, got %d: %w", longWindow, len(bars), ErrInsufficientData)
	}

	opens := make([]float64, len(bars))
	for i, b := range bars {
		opens[i] = b.Open
	}
	smaShort := SMA(opens, shortWindow)
	smaLong := SMA(opens, longWindow)

	var events []Crossover
	prevSign := 0
	for i := longWindow - 1; i < len(bars); i++ {
		spread := smaShort[i] - smaLong[i]
		sign := 0
		switch {
		case spread > 0:
			sign = 1
		case spread < 0:
			sign = -1
		}
		if sign == 0 {
			continue // ambiguous, keep prior sign
		}
		if prevSign != 0 && sign != prevSign {
			dir := GoldenCross
			if sign < 0 {
				dir = DeathCross
			}
			events = append(events, Crossover{
				Index:     i,
				Time:      bars[i].Time(),
				Price:     bars[i].Open,
				Direction: dir,
			})
		}
		prevSign = sign
	}
	return events, nil
}

// FilterCooldown drops events closer than cooldownDays calendar days to the
// last accepted event. The first event is always kept; the first event after
// a cooldown elapses is the next one acted on.
func FilterCooldown(events []Crossover, cooldownDays int) []Crossover {
	if cooldownDays <= 0 || len(events) == 0 {
		return events
	}
	cooldown := time.Duration(cooldownDays) * 24 * time.Hour
	kept := []Crossover{events[0]}
	lastAccepted := events[0].Time
	for _, ev := range events[1:] {
		if ev.Time.Sub(lastAccepted) < cooldown {
			continue
		}
		kept = append(kept, ev)
		lastAccepted = ev.Time
	}
	return kept
}
