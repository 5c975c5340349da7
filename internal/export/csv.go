package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang-quant/internal/dto"
)

// WritePathsCSV writes a simulated path matrix as one row per day with a
// column per path. Day 0 is the seed price.
func WritePathsCSV(w io.Writer, paths [][]float64) error {
	if len(paths) == 0 {
		return fmt.Errorf("no paths to export")
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(paths)+1)
	header = append(header, "day")
	for i := range paths {
		header = append(header, fmt.Sprintf("path_%d", i+1))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	steps := len(paths[0])
	row := make([]string, len(paths)+1)
	for day := 0; day < steps; day++ {
		row[0] = strconv.Itoa(day)
		for i, path := range paths {
			if len(path) != steps {
				return fmt.Errorf("ragged path matrix: path %d has %d steps, want %d", i+1, len(path), steps)
			}
			row[i+1] = strconv.FormatFloat(path[day], 'f', 2, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteEpochsCSV writes one row per completed backtest epoch. Degenerate
// CAGRs export as empty cells.
func WriteEpochsCSV(w io.Writer, results []dto.EpochResult) error {
	cw := csv.NewWriter(w)

	header := []string{"epoch", "ticker", "window_start", "window_end", "window_bars", "calendar_days", "num_trades", "cagr", "end_cash"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		cagr := ""
		if r.CAGR != nil {
			cagr = strconv.FormatFloat(*r.CAGR, 'f', 4, 64)
		}
		row := []string{
			strconv.Itoa(r.Epoch),
			r.Ticker,
			r.WindowStart.Format("2006-01-02"),
			r.WindowEnd.Format("2006-01-02"),
			strconv.Itoa(r.WindowBars),
			strconv.Itoa(r.CalendarDays),
			strconv.Itoa(r.NumTrades),
			cagr,
			strconv.FormatFloat(r.EndCash, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTradesCSV writes the flattened trade ledgers of a batch, one row per
// executed order.
func WriteTradesCSV(w io.Writer, results []dto.EpochResult) error {
	cw := csv.NewWriter(w)

	header := []string{"epoch", "ticker", "type", "date", "price", "shares", "total"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		for _, t := range r.Trades {
			row := []string{
				strconv.Itoa(r.Epoch),
				r.Ticker,
				t.Type,
				t.Date.Format("2006-01-02"),
				strconv.FormatFloat(t.Price, 'f', 2, 64),
				strconv.FormatFloat(t.Shares, 'f', 0, 64),
				strconv.FormatFloat(t.Total, 'f', 2, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
