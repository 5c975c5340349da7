package service

import (
	"golang-quant/config"
	"golang-quant/internal/repository"
	"golang-quant/pkg/logger"
	"golang-quant/pkg/telegram"

	goValidator "github.com/go-playground/validator/v10"
)

type Service struct {
	SimulationService SimulationService
	BacktestService   BacktestService
	SchedulerService  SchedulerService
}

// NewService wires the service layer on top of the repositories. The
// validator is shared so custom registrations happen once.
func NewService(
	cfg *config.Config,
	log *logger.Logger,
	validate *goValidator.Validate,
	repo *repository.Repository,
	notifier *telegram.Notifier,
) *Service {
	simulationService := NewSimulationService(cfg, log, validate, repo.CandleRepo, repo.RunRepo)
	backtestService := NewBacktestService(cfg, log, validate, repo.CandleRepo, repo.RunRepo, repo.InsightRepo)
	schedulerService := NewSchedulerService(cfg, log, simulationService, notifier)

	return &Service{
		SimulationService: simulationService,
		BacktestService:   backtestService,
		SchedulerService:  schedulerService,
	}
}
