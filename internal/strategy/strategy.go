package strategy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"golang-quant/internal/dto"
	"golang-quant/internal/investor"
)

// ErrInsufficientHistory indicates a price history too short for the
// minimum sampling window.
var ErrInsufficientHistory = errors.New("insufficient history")

// Config carries the signal tunables shared by the drivers.
type Config struct {
	SMAShortWindow int
	SMALongWindow  int
	CooldownDays   int
}

// Runner replays a trading strategy over one contiguous window of bars,
// mutating the investor only through its order contract. Implementations
// must leave the investor FLAT when they return.
type Runner interface {
	Name() string
	Run(inv *investor.Investor, bars []dto.StockOHLCV) error
}

// NewRunner builds the driver for a strategy tag.
func NewRunner(strategyName string, cfg Config) (Runner, error) {
	switch strategyName {
	case dto.StrategyBuyHold:
		return &BuyHold{}, nil
	case dto.StrategySMACrossover:
		return &SMACrossover{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategyName)
	}
}

// SampleWindow draws a random contiguous sub-window [start, end) of an
// n-bar history: start uniform in [0, n-minWindow), end uniform in
// [start+minWindow, n). The window always spans at least minWindow bars.
func SampleWindow(n, minWindow int, rng *rand.Rand) (start, end int, err error) {
	if minWindow <= 0 {
		return 0, 0, fmt.Errorf("min window must be positive, got %d", minWindow)
	}
	if n <= minWindow {
		return 0, 0, fmt.Errorf("history of %d bars with min window %d: %w", n, minWindow, ErrInsufficientHistory)
	}

	start = rng.Intn(n - minWindow)
	end = start + minWindow + rng.Intn(n-start-minWindow)
	return start, end, nil
}

// maxAffordableShares is the largest whole-share quantity the cash buys.
func maxAffordableShares(cash, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return math.Floor(cash / price)
}

// forceClose liquidates any open position at the final bar's close. This is
// mandatory at window end so realized performance never mixes with
// unrealized value.
func forceClose(inv *investor.Investor, bars []dto.StockOHLCV) {
	if !inv.PositionOpen() || len(bars) == 0 {
		return
	}
	last := bars[len(bars)-1]
	inv.Sell(last.Time(), last.Close)
}
