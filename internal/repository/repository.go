package repository

import (
	"golang-quant/config"
	"golang-quant/pkg/cache"
	"golang-quant/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	YahooFinanceRepo YahooFinanceRepository
	CandleRepo       CandleRepository
	// RunRepo is nil when no database is configured; callers skip
	// persistence in that case.
	RunRepo RunRepository
	// InsightRepo is nil when no AI key is configured.
	InsightRepo InsightRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	yahooRepo := NewYahooFinanceRepository(cfg, log)

	repo := &Repository{
		YahooFinanceRepo: yahooRepo,
		CandleRepo:       NewCandleRepository(cfg, yahooRepo, inmemoryCache),
	}

	if db != nil {
		repo.RunRepo = NewRunRepository(db)
	}

	if cfg.Gemini.Enabled() {
		insightRepo, err := NewGeminiInsightRepository(cfg, log)
		if err != nil {
			return nil, err
		}
		repo.InsightRepo = insightRepo
	}

	return repo, nil
}
