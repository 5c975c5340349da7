package repository

import (
	"context"

	"golang-quant/internal/model"

	"gorm.io/gorm"
)

// RunRepository persists completed simulation and backtest runs.
type RunRepository interface {
	SaveSimulationRun(ctx context.Context, run *model.SimulationRun) error
	SaveBacktestRun(ctx context.Context, run *model.BacktestRun) error
	LatestSimulationRuns(ctx context.Context, ticker string, limit int) ([]model.SimulationRun, error)
}

type runRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) SaveSimulationRun(ctx context.Context, run *model.SimulationRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *runRepository) SaveBacktestRun(ctx context.Context, run *model.BacktestRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *runRepository) LatestSimulationRuns(ctx context.Context, ticker string, limit int) ([]model.SimulationRun, error) {
	var runs []model.SimulationRun
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
