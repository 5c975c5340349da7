package dto

import "time"

const (
	StrategyBuyHold      = "buy_hold"
	StrategySMACrossover = "sma"
)

// BacktestRequest describes a multi-epoch strategy backtest. Each epoch
// replays the strategy over a random ticker and a random history window.
type BacktestRequest struct {
	Strategy     string   `json:"strategy" validate:"required,oneof=buy_hold sma"`
	Tickers      []string `json:"tickers"`
	StartingCash float64  `json:"starting_cash" validate:"gte=0"`
	Epochs       int      `json:"epochs" validate:"gte=0"`
	Seed         int64    `json:"seed"`
	WithInsight  bool     `json:"with_insight"`
	// Progress draws a terminal progress bar over the epoch loop.
	Progress bool `json:"-"`
}

// TradeLog is one executed order in an epoch's ledger.
type TradeLog struct {
	Type   string    `json:"type"`
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	Shares float64   `json:"shares"`
	Total  float64   `json:"total"`
}

// EpochResult is the outcome of a single backtest epoch. CAGR is nil for
// degenerate windows (zero elapsed days or non-positive balances); those
// epochs are excluded from the aggregates, not counted as zero.
type EpochResult struct {
	Epoch        int        `json:"epoch"`
	Ticker       string     `json:"ticker"`
	WindowStart  time.Time  `json:"window_start"`
	WindowEnd    time.Time  `json:"window_end"`
	WindowBars   int        `json:"window_bars"`
	CalendarDays int        `json:"calendar_days"`
	NumTrades    int        `json:"num_trades"`
	CAGR         *float64   `json:"cagr"`
	EndCash      float64    `json:"end_cash"`
	Trades       []TradeLog `json:"trades"`
}

// BacktestSummary aggregates the CAGR and trade-count distributions across
// all completed epochs.
type BacktestSummary struct {
	Strategy        string        `json:"strategy"`
	StartingCash    float64       `json:"starting_cash"`
	Epochs          int           `json:"epochs"`
	Completed       int           `json:"completed"`
	Skipped         int           `json:"skipped"`
	Seed            int64         `json:"seed"`
	MeanCAGR        *float64      `json:"mean_cagr"`
	StdCAGR         *float64      `json:"std_cagr"`
	MeanTrades      float64       `json:"mean_trades"`
	ZeroTradeEpochs int           `json:"zero_trade_epochs"`
	OneTradeEpochs  int           `json:"one_trade_epochs"`
	TwoTradeEpochs  int           `json:"two_trade_epochs"`
	Insight         string        `json:"insight,omitempty"`
	Results         []EpochResult `json:"results"`
	GeneratedAt     time.Time     `json:"generated_at"`
}
