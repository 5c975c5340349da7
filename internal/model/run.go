package model

import (
	"time"

	"gorm.io/datatypes"
)

// SimulationRun is one persisted Monte Carlo forecast.
type SimulationRun struct {
	ID          uint   `gorm:"primarykey"`
	Ticker      string `gorm:"index"`
	Days        int
	Paths       int
	Seed        int64
	SeedPrice   float64
	MuAnnual    float64
	SigmaAnnual float64
	// Stats holds the terminal distribution summary as JSON.
	Stats     datatypes.JSON
	CreatedAt time.Time
}

func (SimulationRun) TableName() string {
	return "simulation_runs"
}

// BacktestRun is one persisted multi-epoch backtest with its aggregate
// distribution and the per-epoch detail blob.
type BacktestRun struct {
	ID              uint   `gorm:"primarykey"`
	Strategy        string `gorm:"index"`
	StartingCash    float64
	Epochs          int
	Completed       int
	Skipped         int
	Seed            int64
	MeanCAGR        *float64
	StdCAGR         *float64
	MeanTrades      float64
	ZeroTradeEpochs int
	// EpochDetail holds the per-epoch results (window, ledger, CAGR) as JSON.
	EpochDetail datatypes.JSON
	CreatedAt   time.Time
}

func (BacktestRun) TableName() string {
	return "backtest_runs"
}
