package quant

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"golang-quant/pkg/logger"
	"golang-quant/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// SimulationConfig parameterizes one GBM batch. Steps is always an explicit
// caller-supplied trading-day count; the simulator never infers it from
// dates.
type SimulationConfig struct {
	MuAnnual           float64
	SigmaAnnual        float64
	SeedPrice          float64
	Paths              int
	Steps              int
	TradingDaysPerYear int
	Workers            int
	// Seed derives one independent RNG stream per path (Seed + path index),
	// so output is bit-identical for any worker count.
	Seed int64
}

// Simulator generates geometric Brownian motion price paths.
type Simulator struct {
	log *logger.Logger
}

func NewSimulator(log *logger.Logger) *Simulator {
	return &Simulator{log: log}
}

// Simulate produces cfg.Paths independent paths of cfg.Steps daily steps
// each. Row i is path i; index 0 holds the seed price. Prices are rounded
// to 2 decimals at every step. Paths are partitioned across workers; each
// path owns its private RNG, so no generator state is shared.
func (s *Simulator) Simulate(ctx context.Context, cfg SimulationConfig) ([][]float64, error) {
	if cfg.SeedPrice <= 0 {
		return nil, fmt.Errorf("seed price must be positive, got %f", cfg.SeedPrice)
	}
	if cfg.Paths <= 0 || cfg.Steps <= 0 {
		return nil, fmt.Errorf("paths and steps must be positive, got paths=%d steps=%d", cfg.Paths, cfg.Steps)
	}
	if cfg.TradingDaysPerYear <= 0 {
		return nil, fmt.Errorf("invalid trading days per year: %d", cfg.TradingDaysPerYear)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > cfg.Paths {
		workers = cfg.Paths
	}

	// Daily drift and volatility with dt = 1 trading day, including the Itô
	// correction on the log-price.
	muDaily := cfg.MuAnnual / float64(cfg.TradingDaysPerYear)
	sigmaDaily := cfg.SigmaAnnual / math.Sqrt(float64(cfg.TradingDaysPerYear))
	drift := muDaily - 0.5*sigmaDaily*sigmaDaily

	batch := make([][]float64, cfg.Paths)

	g, gCtx := errgroup.WithContext(ctx)
	chunk := (cfg.Paths + workers - 1) / workers

	for w := 0; w < workers; w++ {
		first := w * chunk
		last := first + chunk
		if last > cfg.Paths {
			last = cfg.Paths
		}
		if first >= last {
			break
		}

		g.Go(func() error {
			for p := first; p < last; p++ {
				if err := gCtx.Err(); err != nil {
					return err
				}
				batch[p] = simulatePath(cfg, drift, sigmaDaily, rand.New(rand.NewSource(cfg.Seed+int64(p))))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Debug("Simulation batch complete",
		logger.IntField("paths", cfg.Paths),
		logger.IntField("steps", cfg.Steps),
		logger.IntField("workers", workers),
	)
	return batch, nil
}

func simulatePath(cfg SimulationConfig, drift, sigmaDaily float64, rng *rand.Rand) []float64 {
	path := make([]float64, cfg.Steps+1)
	path[0] = utils.RoundPrice(cfg.SeedPrice)
	for t := 1; t <= cfg.Steps; t++ {
		eps := rng.NormFloat64()
		path[t] = utils.RoundPrice(path[t-1] * math.Exp(drift+sigmaDaily*eps))
	}
	return path
}
