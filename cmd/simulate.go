package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-quant/internal/dto"
	"golang-quant/internal/export"

	"github.com/spf13/cobra"
)

var simulateFlags struct {
	ticker  string
	days    int
	paths   int
	holdout int
	seed    int64
	csvPath string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Monte Carlo price forecast for one ticker",
	Run:   Simulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateFlags.ticker, "ticker", "", "ticker symbol to simulate (required)")
	simulateCmd.Flags().IntVar(&simulateFlags.days, "days", 0, "trading days to simulate (default from config)")
	simulateCmd.Flags().IntVar(&simulateFlags.paths, "paths", 0, "number of paths (default from config)")
	simulateCmd.Flags().IntVar(&simulateFlags.holdout, "holdout", 0, "bars withheld from calibration")
	simulateCmd.Flags().Int64Var(&simulateFlags.seed, "seed", 0, "RNG seed (0 picks a random seed)")
	simulateCmd.Flags().StringVar(&simulateFlags.csvPath, "csv", "", "write the path matrix to this CSV file")
	_ = simulateCmd.MarkFlagRequired("ticker")
}

func Simulate(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer func() {
		if err := appDep.Close(); err != nil {
			log.Printf("Failed to close app dependency: %v", err)
		}
	}()

	services, err := appDep.NewServices()
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}

	result, err := services.SimulationService.Run(ctx, dto.SimulationRequest{
		Ticker:    simulateFlags.ticker,
		Days:      simulateFlags.days,
		Paths:     simulateFlags.paths,
		Holdout:   simulateFlags.holdout,
		Seed:      simulateFlags.seed,
		KeepPaths: simulateFlags.csvPath != "",
	})
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	fmt.Printf("%s: %d paths over %d trading days (seed %d)\n", result.Ticker, result.Paths, result.Days, result.Seed)
	fmt.Printf("  calibration: mu %.4f, sigma %.4f (annualized)\n", result.MuAnnual, result.SigmaAnnual)
	fmt.Printf("  seed price:  %.2f\n", result.SeedPrice)
	fmt.Printf("  terminal:    mean %.2f, std %.2f\n", result.Stats.TerminalMean, result.Stats.TerminalStd)
	fmt.Printf("  95%% CI:      %.2f .. %.2f\n", result.Stats.CI95Low, result.Stats.CI95High)
	fmt.Printf("  above mean:  %.1f%% of paths\n", result.Stats.WinFraction*100)

	if simulateFlags.csvPath != "" {
		f, err := os.Create(simulateFlags.csvPath)
		if err != nil {
			log.Fatalf("Failed to create CSV file: %v", err)
		}
		defer f.Close()
		if err := export.WritePathsCSV(f, result.PathMatrix); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		fmt.Printf("  paths written to %s\n", simulateFlags.csvPath)
	}
}
