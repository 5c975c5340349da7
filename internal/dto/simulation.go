package dto

import "time"

// SimulationRequest describes one Monte Carlo forecast run.
type SimulationRequest struct {
	Ticker string `json:"ticker" validate:"required"`
	// Days is the explicit number of trading days to simulate. When zero and
	// Holdout is set, the holdout length is used instead.
	Days  int `json:"days" validate:"gte=0"`
	Paths int `json:"paths" validate:"gte=0"`
	// Holdout withholds the last N bars from calibration; the seed price
	// becomes the last training close.
	Holdout int   `json:"holdout" validate:"gte=0"`
	Seed    int64 `json:"seed"`
	// KeepPaths retains the full path matrix on the result for export.
	KeepPaths bool `json:"keep_paths"`
}

// SimulationStats aggregates the terminal price distribution of a batch.
type SimulationStats struct {
	TerminalMean float64 `json:"terminal_mean"`
	TerminalStd  float64 `json:"terminal_std"`
	CI95Low      float64 `json:"ci95_low"`
	CI95High     float64 `json:"ci95_high"`
	WinFraction  float64 `json:"win_fraction"`
}

type SimulationResult struct {
	Ticker      string          `json:"ticker"`
	Days        int             `json:"days"`
	Paths       int             `json:"paths"`
	Seed        int64           `json:"seed"`
	SeedPrice   float64         `json:"seed_price"`
	MuAnnual    float64         `json:"mu_annual"`
	SigmaAnnual float64         `json:"sigma_annual"`
	Stats       SimulationStats `json:"stats"`
	GeneratedAt time.Time       `json:"generated_at"`
	// PathMatrix is populated only when the request asked to keep paths.
	PathMatrix [][]float64 `json:"path_matrix,omitempty"`
}
