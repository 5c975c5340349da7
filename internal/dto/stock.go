package dto

import "time"

// StockOHLCV is a single immutable price bar. Timestamps are unix seconds
// and strictly increasing within a series.
type StockOHLCV struct {
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
	Timestamp int64   `json:"timestamp"`
}

// Time returns the bar timestamp as time.Time in UTC.
func (b StockOHLCV) Time() time.Time {
	return time.Unix(b.Timestamp, 0).UTC()
}

type StockData struct {
	Ticker      string       `json:"ticker"`
	MarketPrice float64      `json:"market_price"`
	Range       string       `json:"range"`
	Interval    string       `json:"interval"`
	OHLCV       []StockOHLCV `json:"ohlcv"`
}

type GetStockDataParam struct {
	Ticker   string `json:"ticker"`
	Range    string `json:"range"`
	Interval string `json:"interval"`
}

// Yahoo Finance chart API response
type YahooFinanceResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}
