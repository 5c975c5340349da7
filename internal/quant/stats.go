package quant

import (
	"fmt"
	"math"
)

// CAGR computes the compound annual growth rate in percent. Degenerate
// windows (non-positive elapsed days or balances) yield NaN, not an error;
// callers exclude NaN from aggregates.
func CAGR(days int, startBalance, endBalance float64, tradingDaysPerYear int) float64 {
	if days <= 0 || startBalance <= 0 || endBalance <= 0 {
		return math.NaN()
	}
	return (math.Pow(endBalance/startBalance, float64(tradingDaysPerYear)/float64(days)) - 1) * 100
}

// BatchStats summarizes the terminal price distribution of a simulation
// batch.
type BatchStats struct {
	Paths        int
	TerminalMean float64
	TerminalStd  float64
	CI95Low      float64
	CI95High     float64
	WinFraction  float64
}

// SummarizeBatch computes terminal mean, sample standard deviation, the 95%
// confidence band mean ± 1.96*std and the fraction of paths finishing above
// the mean.
func SummarizeBatch(batch [][]float64) (BatchStats, error) {
	if len(batch) == 0 {
		return BatchStats{}, fmt.Errorf("empty simulation batch: %w", ErrInsufficientData)
	}

	terminals := make([]float64, len(batch))
	for i, path := range batch {
		if len(path) == 0 {
			return BatchStats{}, fmt.Errorf("empty path at index %d: %w", i, ErrInsufficientData)
		}
		terminals[i] = path[len(path)-1]
	}

	m := mean(terminals)
	std := 0.0
	if len(terminals) > 1 {
		std = sampleStd(terminals, m)
	}

	wins := 0
	for _, t := range terminals {
		if t > m {
			wins++
		}
	}

	return BatchStats{
		Paths:        len(batch),
		TerminalMean: m,
		TerminalStd:  std,
		CI95Low:      m - 1.96*std,
		CI95High:     m + 1.96*std,
		WinFraction:  float64(wins) / float64(len(terminals)),
	}, nil
}

// Mean of a non-empty slice.
func Mean(values []float64) float64 {
	return mean(values)
}

// SampleStd is the n-1 standard deviation; zero for fewer than two values.
func SampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return sampleStd(values, mean(values))
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStd(values []float64, mean float64) float64 {
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
