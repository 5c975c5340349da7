package quant

import (
	"context"
	"math"
	"testing"

	"golang-quant/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestSimulateDegenerateZeroVolatility(t *testing.T) {
	sim := NewSimulator(testLogger(t))

	batch, err := sim.Simulate(context.Background(), SimulationConfig{
		MuAnnual:           0,
		SigmaAnnual:        0,
		SeedPrice:          100,
		Paths:              5,
		Steps:              30,
		TradingDaysPerYear: 252,
		Workers:            2,
		Seed:               1,
	})
	require.NoError(t, err)
	require.Len(t, batch, 5)

	for _, path := range batch {
		require.Len(t, path, 31)
		for _, p := range path {
			assert.Equal(t, 100.0, p)
		}
	}
}

func TestSimulateReproducible(t *testing.T) {
	sim := NewSimulator(testLogger(t))
	cfg := SimulationConfig{
		MuAnnual:           0.08,
		SigmaAnnual:        0.25,
		SeedPrice:          142.37,
		Paths:              16,
		Steps:              64,
		TradingDaysPerYear: 252,
		Seed:               42,
	}

	cfg.Workers = 1
	first, err := sim.Simulate(context.Background(), cfg)
	require.NoError(t, err)

	// Same seed must give bit-identical output even with a different worker
	// count, since RNG streams are derived per path.
	cfg.Workers = 7
	second, err := sim.Simulate(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulateTerminalDistribution(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	sim := NewSimulator(testLogger(t))
	cfg := SimulationConfig{
		MuAnnual:           0,
		SigmaAnnual:        0.2,
		SeedPrice:          100,
		Paths:              10000,
		Steps:              252,
		TradingDaysPerYear: 252,
		Workers:            8,
		Seed:               7,
	}
	batch, err := sim.Simulate(context.Background(), cfg)
	require.NoError(t, err)

	// log(S_T / S_0) should approach Normal((mu - sigma^2/2)*T, sigma^2*T)
	// with T = 1 year.
	logRatios := make([]float64, len(batch))
	for i, path := range batch {
		logRatios[i] = math.Log(path[len(path)-1] / cfg.SeedPrice)
	}
	m := mean(logRatios)
	sd := sampleStd(logRatios, m)

	wantMean := -0.5 * 0.2 * 0.2
	assert.InDelta(t, wantMean, m, 0.01)
	assert.InDelta(t, 0.2, sd, 0.01)

	stats, err := SummarizeBatch(batch)
	require.NoError(t, err)
	// Drift is zero after the Itô correction, terminal mean stays near the
	// seed price.
	assert.InDelta(t, 100.0, stats.TerminalMean, 3.0)
	assert.InDelta(t, 1.96*stats.TerminalStd, stats.CI95High-stats.TerminalMean, 1e-9)
	assert.InDelta(t, 1.96*stats.TerminalStd, stats.TerminalMean-stats.CI95Low, 1e-9)
}

func TestSimulateRejectsInvalidConfig(t *testing.T) {
	sim := NewSimulator(testLogger(t))

	tests := []struct {
		name string
		cfg  SimulationConfig
	}{
		{"zero seed price", SimulationConfig{Paths: 1, Steps: 1, TradingDaysPerYear: 252}},
		{"zero paths", SimulationConfig{SeedPrice: 100, Steps: 1, TradingDaysPerYear: 252}},
		{"zero steps", SimulationConfig{SeedPrice: 100, Paths: 1, TradingDaysPerYear: 252}},
		{"zero trading days", SimulationConfig{SeedPrice: 100, Paths: 1, Steps: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Simulate(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestSimulateCancelled(t *testing.T) {
	sim := NewSimulator(testLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Simulate(ctx, SimulationConfig{
		MuAnnual:           0.05,
		SigmaAnnual:        0.3,
		SeedPrice:          100,
		Paths:              1000,
		Steps:              252,
		TradingDaysPerYear: 252,
		Workers:            4,
		Seed:               1,
	})
	require.ErrorIs(t, err, context.Canceled)
}
