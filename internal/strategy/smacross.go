package strategy

import (
	"golang-quant/internal/dto"
	"golang-quant/internal/investor"
	"golang-quant/internal/quant"
)

// SMACrossover trades dual moving-average crossovers: buy the maximum
// affordable whole shares on a golden cross while flat, sell on a death
// cross while long. Signals inside the cooldown window are skipped, and any
// position still open at window end is force-closed. Zero trades is a valid
// outcome.
type SMACrossover struct {
	cfg Config
}

func (s *SMACrossover) Name() string {
	return dto.StrategySMACrossover
}

func (s *SMACrossover) Run(inv *investor.Investor, bars []dto.StockOHLCV) error {
	events, err := quant.DetectCrossovers(bars, s.cfg.SMAShortWindow, s.cfg.SMALongWindow)
	if err != nil {
		return err
	}

	for _, ev := range quant.FilterCooldown(events, s.cfg.CooldownDays) {
		switch ev.Direction {
		case quant.GoldenCross:
			if inv.PositionOpen() {
				continue
			}
			shares := maxAffordableShares(inv.Cash(), ev.Price)
			// Rejections are skipped, not fatal: an unaffordable buy just
			// means the scan moves on to the next signal.
			inv.Buy(ev.Time, ev.Price, shares)
		case quant.DeathCross:
			inv.Sell(ev.Time, ev.Price)
		}
	}

	forceClose(inv, bars)
	return nil
}
