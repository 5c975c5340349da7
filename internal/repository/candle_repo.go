package repository

import (
	"context"
	"fmt"

	"golang-quant/config"
	"golang-quant/internal/dto"
	"golang-quant/pkg/cache"
)

// CandleRepository is the market data source the services depend on.
type CandleRepository interface {
	Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
}

// cachedCandleRepository fronts the provider with the in-memory cache, so a
// multi-epoch backtest fetches each ticker's history once instead of once
// per epoch.
type cachedCandleRepository struct {
	cfg       *config.Config
	yahooRepo YahooFinanceRepository
	cache     cache.Cache
}

func NewCandleRepository(cfg *config.Config, yahooRepo YahooFinanceRepository, inmemoryCache cache.Cache) CandleRepository {
	return &cachedCandleRepository{
		cfg:       cfg,
		yahooRepo: yahooRepo,
		cache:     inmemoryCache,
	}
}

func (r *cachedCandleRepository) Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	key := fmt.Sprintf("candles:%s:%s:%s", param.Ticker, param.Range, param.Interval)
	if data, found := cache.GetTyped[*dto.StockData](r.cache, key); found {
		return data, nil
	}

	data, err := r.yahooRepo.Get(ctx, param)
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, data, r.cfg.Cache.DefaultExpiration)
	return data, nil
}
