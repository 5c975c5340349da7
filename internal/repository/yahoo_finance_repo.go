package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang-quant/config"
	"golang-quant/internal/dto"
	"golang-quant/pkg/httpclient"
	"golang-quant/pkg/logger"

	"golang.org/x/time/rate"
)

// ErrEmptyDataset indicates the provider returned no usable rows for the
// requested ticker and period. Fatal for that run only, never for a batch.
var ErrEmptyDataset = errors.New("empty dataset")

type YahooFinanceRepository interface {
	Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a new instance of yahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFinanceRepository{
		httpClient:     httpclient.New(cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *yahooFinanceRepository) Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	period1, period2 := r.mapRangeToUnix(param.Range)
	if period1 == 0 || period2 == 0 {
		return nil, fmt.Errorf("invalid range %q", param.Range)
	}

	endpoint := "/" + param.Ticker
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", period1),
		"period2":        fmt.Sprintf("%d", period2),
		"interval":       param.Interval,
		"includePrePost": "false",
		"events":         "div,split",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("unknown ticker %s: %w", param.Ticker, ErrEmptyDataset)
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Yahoo Finance API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error: %v", yahooResp.Chart.Error)
	}

	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned for ticker %s: %w", param.Ticker, ErrEmptyDataset)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for ticker %s: %w", param.Ticker, ErrEmptyDataset)
	}

	quote := result.Indicators.Quote[0]

	var ohlcvData []dto.StockOHLCV
	for i, timestamp := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue
		}

		// Skip rows with any zero value (missing data).
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 ||
			quote.Close[i] == 0 || quote.Volume[i] == 0 {
			continue
		}

		ohlcvData = append(ohlcvData, dto.StockOHLCV{
			Timestamp: timestamp,
			Open:      quote.Open[i],
			High:      quote.High[i],
			Low:       quote.Low[i],
			Close:     quote.Close[i],
			Volume:    quote.Volume[i],
		})
	}

	if len(ohlcvData) == 0 {
		return nil, fmt.Errorf("no valid OHLCV data for ticker %s: %w", param.Ticker, ErrEmptyDataset)
	}

	marketPrice := 0.0
	if result.Meta.RegularMarketPrice > 0 {
		marketPrice = result.Meta.RegularMarketPrice
	}

	return &dto.StockData{
		Ticker:      param.Ticker,
		MarketPrice: marketPrice,
		OHLCV:       ohlcvData,
		Range:       param.Range,
		Interval:    param.Interval,
	}, nil
}

// mapRangeToUnix converts a named range to a unix period pair.
func (r *yahooFinanceRepository) mapRangeToUnix(rangeName string) (int64, int64) {
	now := time.Now().UTC()
	switch rangeName {
	case "1m":
		return now.AddDate(0, -1, 0).Unix(), now.Unix()
	case "6m":
		return now.AddDate(0, -6, 0).Unix(), now.Unix()
	case "1y":
		return now.AddDate(-1, 0, 0).Unix(), now.Unix()
	case "2y":
		return now.AddDate(-2, 0, 0).Unix(), now.Unix()
	case "5y":
		return now.AddDate(-5, 0, 0).Unix(), now.Unix()
	case "10y":
		return now.AddDate(-10, 0, 0).Unix(), now.Unix()
	case "max":
		// Epoch start covers the whole listed history.
		return time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC).Unix(), now.Unix()
	default:
		return 0, 0
	}
}
