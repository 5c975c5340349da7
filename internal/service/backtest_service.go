package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"golang-quant/config"
	"golang-quant/internal/dto"
	"golang-quant/internal/investor"
	"golang-quant/internal/model"
	"golang-quant/internal/quant"
	"golang-quant/internal/repository"
	"golang-quant/internal/strategy"
	"golang-quant/pkg/logger"
	"golang-quant/pkg/utils"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/schollz/progressbar/v3"
)

// BacktestService replays a strategy over many random (ticker, window)
// draws and aggregates the outcome distribution.
type BacktestService interface {
	Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestSummary, error)
}

type backtestService struct {
	cfg         *config.Config
	log         *logger.Logger
	validate    *goValidator.Validate
	candleRepo  repository.CandleRepository
	runRepo     repository.RunRepository
	insightRepo repository.InsightRepository
}

// NewBacktestService creates a new instance of backtestService.
func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	validate *goValidator.Validate,
	candleRepo repository.CandleRepository,
	runRepo repository.RunRepository,
	insightRepo repository.InsightRepository,
) BacktestService {
	return &backtestService{
		cfg:         cfg,
		log:         log,
		validate:    validate,
		candleRepo:  candleRepo,
		runRepo:     runRepo,
		insightRepo: insightRepo,
	}
}

func (s *backtestService) Run(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestSummary, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid backtest request: %w", err)
	}

	tickers := req.Tickers
	if len(tickers) == 0 {
		tickers = s.cfg.Backtest.Tickers
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers configured for backtest")
	}

	startingCash := req.StartingCash
	if startingCash == 0 {
		startingCash = s.cfg.Backtest.StartingCash
	}
	epochs := req.Epochs
	if epochs == 0 {
		epochs = s.cfg.Backtest.DefaultEpochs
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runner, err := strategy.NewRunner(req.Strategy, strategy.Config{
		SMAShortWindow: s.cfg.Backtest.SMAShortWindow,
		SMALongWindow:  s.cfg.Backtest.SMALongWindow,
		CooldownDays:   s.cfg.Backtest.CooldownDays,
	})
	if err != nil {
		return nil, err
	}

	// One RNG drives both the ticker draw and the window draw so a seed
	// pins the entire epoch sequence.
	rng := rand.New(rand.NewSource(seed))

	var bar *progressbar.ProgressBar
	if req.Progress {
		bar = progressbar.Default(int64(epochs), runner.Name())
	}

	summary := &dto.BacktestSummary{
		Strategy:     req.Strategy,
		StartingCash: startingCash,
		Epochs:       epochs,
		Seed:         seed,
		Results:      make([]dto.EpochResult, 0, epochs),
	}

	for epoch := 0; epoch < epochs; epoch++ {
		if !utils.ShouldContinue(ctx, s.log) {
			return nil, ctx.Err()
		}

		ticker := tickers[rng.Intn(len(tickers))]

		result, err := s.runEpoch(ctx, runner, rng, epoch, ticker, startingCash)
		if err != nil {
			// One bad draw never aborts the batch.
			s.log.WarnContext(ctx, "Skipping epoch",
				logger.IntField("epoch", epoch),
				logger.StringField("ticker", ticker),
				logger.ErrorField(err),
			)
			summary.Skipped++
		} else {
			summary.Results = append(summary.Results, *result)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	s.aggregate(summary)
	summary.GeneratedAt = time.Now().UTC()

	if req.WithInsight && s.insightRepo != nil {
		insight, err := s.insightRepo.SummarizeBacktest(ctx, summary)
		if err != nil {
			s.log.WarnContext(ctx, "Failed to generate backtest insight", logger.ErrorField(err))
		} else {
			summary.Insight = insight
		}
	}

	s.persist(ctx, summary)

	s.log.InfoContext(ctx, "Backtest completed",
		logger.StringField("strategy", req.Strategy),
		logger.IntField("completed", summary.Completed),
		logger.IntField("skipped", summary.Skipped),
	)
	return summary, nil
}

func (s *backtestService) runEpoch(
	ctx context.Context,
	runner strategy.Runner,
	rng *rand.Rand,
	epoch int,
	ticker string,
	startingCash float64,
) (*dto.EpochResult, error) {
	data, err := s.candleRepo.Get(ctx, dto.GetStockDataParam{
		Ticker:   ticker,
		Range:    "max",
		Interval: "1d",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}

	start, end, err := strategy.SampleWindow(len(data.OHLCV), s.cfg.Backtest.MinWindow, rng)
	if err != nil {
		return nil, fmt.Errorf("sample window for %s: %w", ticker, err)
	}
	window := data.OHLCV[start:end]

	inv := investor.New(startingCash)
	if err := runner.Run(inv, window); err != nil {
		return nil, fmt.Errorf("run %s on %s: %w", runner.Name(), ticker, err)
	}

	first := window[0].Time()
	last := window[len(window)-1].Time()
	days := utils.CalendarDays(first, last)

	result := &dto.EpochResult{
		Epoch:        epoch,
		Ticker:       ticker,
		WindowStart:  first,
		WindowEnd:    last,
		WindowBars:   len(window),
		CalendarDays: days,
		NumTrades:    inv.NumTrades(),
		EndCash:      inv.Cash(),
		Trades:       toTradeLogs(inv.Trades()),
	}

	cagr := quant.CAGR(days, startingCash, inv.Cash(), s.cfg.Market.TradingDaysPerYear)
	if !math.IsNaN(cagr) {
		result.CAGR = &cagr
	}
	return result, nil
}

// aggregate fills the distribution fields from the completed epochs. NaN
// CAGRs arrive as nil and are excluded from the mean and std, not zeroed.
func (s *backtestService) aggregate(summary *dto.BacktestSummary) {
	summary.Completed = len(summary.Results)
	if summary.Completed == 0 {
		return
	}

	cagrs := make([]float64, 0, summary.Completed)
	totalTrades := 0
	for _, r := range summary.Results {
		if r.CAGR != nil {
			cagrs = append(cagrs, *r.CAGR)
		}
		totalTrades += r.NumTrades
		switch r.NumTrades {
		case 0:
			summary.ZeroTradeEpochs++
		case 1:
			summary.OneTradeEpochs++
		case 2:
			summary.TwoTradeEpochs++
		}
	}

	summary.MeanTrades = float64(totalTrades) / float64(summary.Completed)
	if len(cagrs) > 0 {
		summary.MeanCAGR = utils.ToPointer(quant.Mean(cagrs))
		summary.StdCAGR = utils.ToPointer(quant.SampleStd(cagrs))
	}
}

func (s *backtestService) persist(ctx context.Context, summary *dto.BacktestSummary) {
	if s.runRepo == nil {
		return
	}

	detail, err := json.Marshal(summary.Results)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal epoch detail", logger.ErrorField(err))
		return
	}

	run := &model.BacktestRun{
		Strategy:        summary.Strategy,
		StartingCash:    summary.StartingCash,
		Epochs:          summary.Epochs,
		Completed:       summary.Completed,
		Skipped:         summary.Skipped,
		Seed:            summary.Seed,
		MeanCAGR:        summary.MeanCAGR,
		StdCAGR:         summary.StdCAGR,
		MeanTrades:      summary.MeanTrades,
		ZeroTradeEpochs: summary.ZeroTradeEpochs,
		EpochDetail:     detail,
	}
	if err := s.runRepo.SaveBacktestRun(ctx, run); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist backtest run", logger.ErrorField(err))
	}
}

func toTradeLogs(trades []investor.Trade) []dto.TradeLog {
	logs := make([]dto.TradeLog, len(trades))
	for i, t := range trades {
		logs[i] = dto.TradeLog{
			Type:   string(t.Type),
			Date:   t.Date,
			Price:  t.Price,
			Shares: t.Shares,
			Total:  t.Total,
		}
	}
	return logs
}
