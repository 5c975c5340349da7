package quant

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang-quant/internal/dto"
)

// ErrInsufficientData indicates a price series too short for the requested
// estimation or indicator window.
var ErrInsufficientData = errors.New("insufficient data")

// ReturnPoint is one daily log-return observation.
type ReturnPoint struct {
	Time      time.Time
	LogReturn float64
}

// ReturnStats holds annualized drift and volatility estimated from daily
// log-returns.
type ReturnStats struct {
	MuAnnual     float64
	SigmaAnnual  float64
	Observations int
}

// LogReturns converts a bar series into daily log-returns over consecutive
// positive closes. Bars with non-positive closes are discarded before
// pairing, so a single bad row does not produce two bad returns.
func LogReturns(bars []dto.StockOHLCV) []ReturnPoint {
	var returns []ReturnPoint
	prevClose := 0.0
	for _, bar := range bars {
		if bar.Close <= 0 {
			continue
		}
		if prevClose > 0 {
			returns = append(returns, ReturnPoint{
				Time:      bar.Time(),
				LogReturn: math.Log(bar.Close / prevClose),
			})
		}
		prevClose = bar.Close
	}
	return returns
}

// EstimateReturnStats annualizes the mean and sample standard deviation of
// the daily log-returns: mu = mean * tradingDaysPerYear, sigma = std *
// sqrt(tradingDaysPerYear). Returns ErrInsufficientData when fewer than two
// valid closes remain after filtering.
func EstimateReturnStats(bars []dto.StockOHLCV, tradingDaysPerYear int) (ReturnStats, error) {
	if tradingDaysPerYear <= 0 {
		return ReturnStats{}, fmt.Errorf("invalid trading days per year: %d", tradingDaysPerYear)
	}

	returns := LogReturns(bars)
	if len(returns) == 0 {
		return ReturnStats{}, fmt.Errorf("need at least 2 valid closes: %w", ErrInsufficientData)
	}

	values := make([]float64, len(returns))
	for i, r := range returns {
		values[i] = r.LogReturn
	}

	muDaily := mean(values)
	// Sample std needs two observations; with exactly one return the
	// volatility estimate degenerates to zero.
	sigmaDaily := 0.0
	if len(values) > 1 {
		sigmaDaily = sampleStd(values, muDaily)
	}

	return ReturnStats{
		MuAnnual:     muDaily * float64(tradingDaysPerYear),
		SigmaAnnual:  sigmaDaily * math.Sqrt(float64(tradingDaysPerYear)),
		Observations: len(values),
	}, nil
}
