package export

import (
	"strings"
	"testing"
	"time"

	"golang-quant/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePathsCSV(t *testing.T) {
	var sb strings.Builder
	paths := [][]float64{
		{100, 101.5, 102.25},
		{100, 99.1, 98.7},
	}

	require.NoError(t, WritePathsCSV(&sb, paths))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "day,path_1,path_2", lines[0])
	assert.Equal(t, "0,100.00,100.00", lines[1])
	assert.Equal(t, "2,102.25,98.70", lines[3])
}

func TestWritePathsCSVRejectsRaggedMatrix(t *testing.T) {
	var sb strings.Builder
	err := WritePathsCSV(&sb, [][]float64{{100, 101}, {100}})
	require.Error(t, err)
}

func TestWritePathsCSVRejectsEmpty(t *testing.T) {
	var sb strings.Builder
	require.Error(t, WritePathsCSV(&sb, nil))
}

func TestWriteEpochsCSV(t *testing.T) {
	var sb strings.Builder
	cagr := 12.3456
	results := []dto.EpochResult{
		{
			Epoch:        0,
			Ticker:       "AAPL",
			WindowStart:  time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
			WindowEnd:    time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC),
			WindowBars:   375,
			CalendarDays: 545,
			NumTrades:    2,
			CAGR:         &cagr,
			EndCash:      11234.56,
		},
		{
			Epoch:   1,
			Ticker:  "MSFT",
			EndCash: 10000,
			// nil CAGR marks a degenerate window.
		},
	}

	require.NoError(t, WriteEpochsCSV(&sb, results))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "AAPL")
	assert.Contains(t, lines[1], "12.3456")
	assert.Contains(t, lines[2], ",,")
}

func TestWriteTradesCSV(t *testing.T) {
	var sb strings.Builder
	results := []dto.EpochResult{
		{
			Epoch:  3,
			Ticker: "KO",
			Trades: []dto.TradeLog{
				{Type: "buy", Date: time.Date(2019, 5, 6, 0, 0, 0, 0, time.UTC), Price: 48.5, Shares: 206, Total: 9991},
				{Type: "sell", Date: time.Date(2019, 11, 12, 0, 0, 0, 0, time.UTC), Price: 52.1, Shares: 206, Total: 10732.6},
			},
		},
	}

	require.NoError(t, WriteTradesCSV(&sb, results))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "3,KO,buy,2019-05-06,48.50,206,9991.00", lines[1])
	assert.Equal(t, "3,KO,sell,2019-11-12,52.10,206,10732.60", lines[2])
}
