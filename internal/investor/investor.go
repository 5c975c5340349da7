package investor

import "time"

type TradeType string

const (
	TradeBuy  TradeType = "buy"
	TradeSell TradeType = "sell"
)

// Trade is one executed order. Ledger entries are immutable once recorded.
type Trade struct {
	Type   TradeType
	Date   time.Time
	Price  float64
	Shares float64
	Total  float64
}

// OrderStatus is the outcome of an order attempt. Rejections are reported,
// never raised: strategy drivers skip illegal signals and keep scanning.
type OrderStatus string

const (
	OrderFilled                   OrderStatus = "filled"
	OrderRejectedPositionOpen     OrderStatus = "rejected_position_open"
	OrderRejectedNoPosition       OrderStatus = "rejected_no_position"
	OrderRejectedBadQuantity      OrderStatus = "rejected_bad_quantity"
	OrderRejectedInsufficientCash OrderStatus = "rejected_insufficient_cash"
	OrderRejectedUnknownAction    OrderStatus = "rejected_unknown_action"
)

// Filled reports whether the order executed.
func (s OrderStatus) Filled() bool {
	return s == OrderFilled
}

// Investor is a single-position portfolio state machine: FLAT holds no
// shares, LONG holds exactly one open position. All fields are private so
// the invariants (cash >= 0, positionOpen == shares > 0, append-only ledger)
// can only be maintained through Buy, Sell and PlaceOrder.
type Investor struct {
	cash         float64
	shares       float64
	startCash    float64
	positionOpen bool
	trades       []Trade
}

// New creates a FLAT investor with the given starting cash.
func New(startingCash float64) *Investor {
	return &Investor{
		cash:      startingCash,
		startCash: startingCash,
	}
}

// Buy opens a position. Legal only when FLAT, with a positive share count
// the current cash can afford. A rejected buy changes nothing.
func (inv *Investor) Buy(date time.Time, price, shares float64) OrderStatus {
	if inv.positionOpen {
		return OrderRejectedPositionOpen
	}
	if shares <= 0 {
		return OrderRejectedBadQuantity
	}

	cost := shares * price
	if cost > inv.cash {
		return OrderRejectedInsufficientCash
	}

	inv.cash -= cost
	inv.shares = shares
	inv.positionOpen = true
	inv.trades = append(inv.trades, Trade{
		Type:   TradeBuy,
		Date:   date,
		Price:  price,
		Shares: shares,
		Total:  cost,
	})
	return OrderFilled
}

// Sell closes the open position in full. Legal only when LONG.
func (inv *Investor) Sell(date time.Time, price float64) OrderStatus {
	if !inv.positionOpen || inv.shares <= 0 {
		return OrderRejectedNoPosition
	}

	proceeds := inv.shares * price
	inv.cash += proceeds
	inv.trades = append(inv.trades, Trade{
		Type:   TradeSell,
		Date:   date,
		Price:  price,
		Shares: inv.shares,
		Total:  proceeds,
	})
	inv.shares = 0
	inv.positionOpen = false
	return OrderFilled
}

// PlaceOrder dispatches by action tag; shares is ignored for sells.
func (inv *Investor) PlaceOrder(action TradeType, date time.Time, price, shares float64) OrderStatus {
	switch action {
	case TradeBuy:
		return inv.Buy(date, price, shares)
	case TradeSell:
		return inv.Sell(date, price)
	default:
		return OrderRejectedUnknownAction
	}
}

func (inv *Investor) Cash() float64 {
	return inv.cash
}

func (inv *Investor) Shares() float64 {
	return inv.shares
}

func (inv *Investor) StartCash() float64 {
	return inv.startCash
}

func (inv *Investor) PositionOpen() bool {
	return inv.positionOpen
}

func (inv *Investor) NumTrades() int {
	return len(inv.trades)
}

// Trades returns a copy of the ledger in execution order.
func (inv *Investor) Trades() []Trade {
	out := make([]Trade, len(inv.trades))
	copy(out, inv.trades)
	return out
}
