package investor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)

func TestBuySellRoundTrip(t *testing.T) {
	inv := New(10000)

	status := inv.Buy(day, 100, 50)
	require.True(t, status.Filled())
	assert.Equal(t, 5000.0, inv.Cash())
	assert.Equal(t, 50.0, inv.Shares())
	assert.True(t, inv.PositionOpen())

	status = inv.Sell(day.AddDate(0, 0, 2), 110)
	require.True(t, status.Filled())
	assert.Equal(t, 10500.0, inv.Cash())
	assert.Equal(t, 0.0, inv.Shares())
	assert.False(t, inv.PositionOpen())

	trades := inv.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, TradeBuy, trades[0].Type)
	assert.Equal(t, 5000.0, trades[0].Total)
	assert.Equal(t, TradeSell, trades[1].Type)
	assert.Equal(t, 5500.0, trades[1].Total)
}

func TestIllegalOrdersAreNoOps(t *testing.T) {
	tests := []struct {
		name string
		run  func(inv *Investor) OrderStatus
		want OrderStatus
	}{
		{
			name: "buy while long",
			run: func(inv *Investor) OrderStatus {
				inv.Buy(day, 100, 50)
				return inv.Buy(day.AddDate(0, 0, 1), 101, 10)
			},
			want: OrderRejectedPositionOpen,
		},
		{
			name: "sell while flat",
			run: func(inv *Investor) OrderStatus {
				return inv.Sell(day, 110)
			},
			want: OrderRejectedNoPosition,
		},
		{
			name: "buy zero shares",
			run: func(inv *Investor) OrderStatus {
				return inv.Buy(day, 100, 0)
			},
			want: OrderRejectedBadQuantity,
		},
		{
			name: "buy negative shares",
			run: func(inv *Investor) OrderStatus {
				return inv.Buy(day, 100, -5)
			},
			want: OrderRejectedBadQuantity,
		},
		{
			name: "buy beyond cash",
			run: func(inv *Investor) OrderStatus {
				return inv.Buy(day, 100, 101)
			},
			want: OrderRejectedInsufficientCash,
		},
		{
			name: "unknown action",
			run: func(inv *Investor) OrderStatus {
				return inv.PlaceOrder("hold", day, 100, 1)
			},
			want: OrderRejectedUnknownAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := New(10000)
			ledgerBefore := inv.NumTrades()
			cashBefore := inv.Cash()
			sharesBefore := inv.Shares()

			status := tt.run(inv)
			assert.Equal(t, tt.want, status)
			assert.False(t, status.Filled())

			// A rejected order leaves nothing behind beyond what the setup
			// trades recorded.
			if inv.NumTrades() == ledgerBefore {
				assert.Equal(t, cashBefore, inv.Cash())
				assert.Equal(t, sharesBefore, inv.Shares())
			}
		})
	}
}

func TestInvariantsUnderOrderSequences(t *testing.T) {
	inv := New(10000)

	sequence := []struct {
		action TradeType
		price  float64
		shares float64
	}{
		{TradeBuy, 100, 50},
		{TradeBuy, 101, 10},  // rejected, already long
		{TradeSell, 110, 0},  // fills
		{TradeSell, 111, 0},  // rejected, flat
		{TradeBuy, 50, 1000}, // rejected, unaffordable
		{TradeBuy, 50, 100},  // fills
		{TradeSell, 55, 0},   // fills
	}

	for i, step := range sequence {
		inv.PlaceOrder(step.action, day.AddDate(0, 0, i), step.price, step.shares)
		assert.GreaterOrEqual(t, inv.Cash(), 0.0)
		assert.Equal(t, inv.Shares() > 0, inv.PositionOpen())
	}

	require.Equal(t, 4, inv.NumTrades())

	// Ledger is time ordered and alternates buy/sell for a single-position
	// account.
	trades := inv.Trades()
	for i := 1; i < len(trades); i++ {
		assert.False(t, trades[i].Date.Before(trades[i-1].Date))
		assert.NotEqual(t, trades[i-1].Type, trades[i].Type)
	}
}

func TestTradesReturnsCopy(t *testing.T) {
	inv := New(10000)
	inv.Buy(day, 100, 10)

	trades := inv.Trades()
	trades[0].Price = 1

	assert.Equal(t, 100.0, inv.Trades()[0].Price)
}
