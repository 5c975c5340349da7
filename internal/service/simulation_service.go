package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-quant/config"
	"golang-quant/internal/dto"
	"golang-quant/internal/model"
	"golang-quant/internal/quant"
	"golang-quant/internal/repository"
	"golang-quant/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
)

// SimulationService runs GBM price forecasts calibrated from historical
// log-returns.
type SimulationService interface {
	Run(ctx context.Context, req dto.SimulationRequest) (*dto.SimulationResult, error)
}

type simulationService struct {
	cfg        *config.Config
	log        *logger.Logger
	validate   *goValidator.Validate
	candleRepo repository.CandleRepository
	runRepo    repository.RunRepository
	simulator  *quant.Simulator
}

// NewSimulationService creates a new instance of simulationService.
func NewSimulationService(
	cfg *config.Config,
	log *logger.Logger,
	validate *goValidator.Validate,
	candleRepo repository.CandleRepository,
	runRepo repository.RunRepository,
) SimulationService {
	return &simulationService{
		cfg:        cfg,
		log:        log,
		validate:   validate,
		candleRepo: candleRepo,
		runRepo:    runRepo,
		simulator:  quant.NewSimulator(log),
	}
}

func (s *simulationService) Run(ctx context.Context, req dto.SimulationRequest) (*dto.SimulationResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid simulation request: %w", err)
	}

	paths := req.Paths
	if paths == 0 {
		paths = s.cfg.Simulation.DefaultPaths
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	data, err := s.candleRepo.Get(ctx, dto.GetStockDataParam{
		Ticker:   req.Ticker,
		Range:    "max",
		Interval: "1d",
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch history for simulation",
			logger.StringField("ticker", req.Ticker),
			logger.ErrorField(err),
		)
		return nil, err
	}

	bars := data.OHLCV

	// The holdout withholds the tail from calibration; the step count
	// defaults to the holdout length so the forecast horizon matches the
	// withheld window. Otherwise the step count is taken from the request,
	// never inferred from dates.
	train := bars
	days := req.Days
	if req.Holdout > 0 {
		if len(bars) <= req.Holdout+1 {
			return nil, fmt.Errorf("history of %d bars cannot hold out %d: %w",
				len(bars), req.Holdout, quant.ErrInsufficientData)
		}
		train = bars[:len(bars)-req.Holdout]
		if days == 0 {
			days = req.Holdout
		}
	}
	if days == 0 {
		days = s.cfg.Simulation.DefaultDays
	}

	stats, err := quant.EstimateReturnStats(train, s.cfg.Market.TradingDaysPerYear)
	if err != nil {
		return nil, fmt.Errorf("calibration failed for %s: %w", req.Ticker, err)
	}

	seedPrice := lastPositiveClose(train)
	if seedPrice <= 0 {
		return nil, fmt.Errorf("no positive close to seed simulation for %s: %w", req.Ticker, quant.ErrInsufficientData)
	}

	batch, err := s.simulator.Simulate(ctx, quant.SimulationConfig{
		MuAnnual:           stats.MuAnnual,
		SigmaAnnual:        stats.SigmaAnnual,
		SeedPrice:          seedPrice,
		Paths:              paths,
		Steps:              days,
		TradingDaysPerYear: s.cfg.Market.TradingDaysPerYear,
		Workers:            s.cfg.Simulation.Workers,
		Seed:               seed,
	})
	if err != nil {
		return nil, err
	}

	batchStats, err := quant.SummarizeBatch(batch)
	if err != nil {
		return nil, err
	}

	result := &dto.SimulationResult{
		Ticker:      req.Ticker,
		Days:        days,
		Paths:       paths,
		Seed:        seed,
		SeedPrice:   seedPrice,
		MuAnnual:    stats.MuAnnual,
		SigmaAnnual: stats.SigmaAnnual,
		Stats: dto.SimulationStats{
			TerminalMean: batchStats.TerminalMean,
			TerminalStd:  batchStats.TerminalStd,
			CI95Low:      batchStats.CI95Low,
			CI95High:     batchStats.CI95High,
			WinFraction:  batchStats.WinFraction,
		},
		GeneratedAt: time.Now().UTC(),
	}
	if req.KeepPaths {
		result.PathMatrix = batch
	}

	s.persist(ctx, result)

	s.log.InfoContext(ctx, "Simulation completed",
		logger.StringField("ticker", req.Ticker),
		logger.IntField("paths", paths),
		logger.IntField("days", days),
		logger.Float64Field("terminal_mean", batchStats.TerminalMean),
	)
	return result, nil
}

// persist stores the run when a database is configured. Persistence
// failures are logged, not propagated; the computed result stands on its
// own.
func (s *simulationService) persist(ctx context.Context, result *dto.SimulationResult) {
	if s.runRepo == nil {
		return
	}

	statsJSON, err := json.Marshal(result.Stats)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal simulation stats", logger.ErrorField(err))
		return
	}

	run := &model.SimulationRun{
		Ticker:      result.Ticker,
		Days:        result.Days,
		Paths:       result.Paths,
		Seed:        result.Seed,
		SeedPrice:   result.SeedPrice,
		MuAnnual:    result.MuAnnual,
		SigmaAnnual: result.SigmaAnnual,
		Stats:       statsJSON,
	}
	if err := s.runRepo.SaveSimulationRun(ctx, run); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist simulation run", logger.ErrorField(err))
	}
}

func lastPositiveClose(bars []dto.StockOHLCV) float64 {
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Close > 0 {
			return bars[i].Close
		}
	}
	return 0
}
