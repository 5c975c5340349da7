package service

import (
	"context"
	"fmt"
	"strings"

	"golang-quant/config"
	"golang-quant/internal/dto"
	"golang-quant/pkg/logger"
	"golang-quant/pkg/telegram"
	"golang-quant/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs the configured simulations on a cron schedule and
// pushes the terminal distribution to Telegram when a notifier is wired.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg        *config.Config
	log        *logger.Logger
	cron       *cron.Cron
	simulation SimulationService
	notifier   *telegram.Notifier
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	simulation SimulationService,
	notifier *telegram.Notifier,
) SchedulerService {
	return &schedulerService{
		cfg:        cfg,
		log:        log,
		cron:       cron.New(),
		simulation: simulation,
		notifier:   notifier,
	}
}

func (s *schedulerService) Start(ctx context.Context) error {
	tickers := s.cfg.Scheduler.Tickers
	if len(tickers) == 0 {
		tickers = s.cfg.Backtest.Tickers
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.CronSpec, func() {
		s.runAll(ctx, tickers)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule simulations: %w", err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started",
		logger.StringField("cron_spec", s.cfg.Scheduler.CronSpec),
		logger.IntField("tickers", len(tickers)),
	)
	return nil
}

func (s *schedulerService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}

func (s *schedulerService) runAll(ctx context.Context, tickers []string) {
	for _, ticker := range tickers {
		if !utils.ShouldContinue(ctx, s.log) {
			return
		}

		result, err := s.simulation.Run(ctx, dto.SimulationRequest{Ticker: ticker})
		if err != nil {
			s.log.ErrorContext(ctx, "Scheduled simulation failed",
				logger.StringField("ticker", ticker),
				logger.ErrorField(err),
			)
			continue
		}

		if s.notifier == nil {
			continue
		}
		if err := s.notifier.Send(ctx, formatSimulationMessage(result)); err != nil {
			s.log.ErrorContext(ctx, "Failed to send simulation notification",
				logger.StringField("ticker", ticker),
				logger.ErrorField(err),
			)
		}
	}
}

func formatSimulationMessage(result *dto.SimulationResult) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("<b>%s</b> forecast, %d days, %d paths\n", result.Ticker, result.Days, result.Paths))
	sb.WriteString(fmt.Sprintf("Last close: %.2f\n", result.SeedPrice))
	sb.WriteString(fmt.Sprintf("Terminal mean: %.2f (95%% CI %.2f .. %.2f)\n",
		result.Stats.TerminalMean, result.Stats.CI95Low, result.Stats.CI95High))
	sb.WriteString(fmt.Sprintf("Paths above mean: %.0f%%", result.Stats.WinFraction*100))
	return sb.String()
}
