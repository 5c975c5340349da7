package strategy

import (
	"fmt"

	"golang-quant/internal/dto"
	"golang-quant/internal/investor"
)

// BuyHold buys the maximum whole-share quantity at the window's first open
// and liquidates at the window's last close.
type BuyHold struct{}

func (b *BuyHold) Name() string {
	return dto.StrategyBuyHold
}

func (b *BuyHold) Run(inv *investor.Investor, bars []dto.StockOHLCV) error {
	if len(bars) < 2 {
		return fmt.Errorf("buy and hold needs at least 2 bars, got %d: %w", len(bars), ErrInsufficientHistory)
	}

	first := bars[0]
	shares := maxAffordableShares(inv.Cash(), first.Open)
	if shares > 0 {
		inv.Buy(first.Time(), first.Open, shares)
	}

	forceClose(inv, bars)
	return nil
}
