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
	"golang-quant/pkg/utils"

	"github.com/spf13/cobra"
)

var backtestFlags struct {
	strategy  string
	tickers   []string
	cash      float64
	epochs    int
	seed      int64
	csvPath   string
	tradesCSV string
	ai        bool
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay a strategy over random history windows",
	Run:   Backtest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestFlags.strategy, "strategy", dto.StrategyBuyHold, "strategy to replay (buy_hold or sma)")
	backtestCmd.Flags().StringSliceVar(&backtestFlags.tickers, "ticker", nil, "tickers to sample from (default from config)")
	backtestCmd.Flags().Float64Var(&backtestFlags.cash, "cash", 0, "starting cash per epoch (default from config)")
	backtestCmd.Flags().IntVar(&backtestFlags.epochs, "epochs", 0, "number of epochs (default from config)")
	backtestCmd.Flags().Int64Var(&backtestFlags.seed, "seed", 0, "RNG seed (0 picks a random seed)")
	backtestCmd.Flags().StringVar(&backtestFlags.csvPath, "csv", "", "write per-epoch results to this CSV file")
	backtestCmd.Flags().StringVar(&backtestFlags.tradesCSV, "trades-csv", "", "write the flattened trade ledgers to this CSV file")
	backtestCmd.Flags().BoolVar(&backtestFlags.ai, "ai", false, "generate an AI commentary on the result")
}

func Backtest(cmd *cobra.Command, args []string) {
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

	summary, err := services.BacktestService.Run(ctx, dto.BacktestRequest{
		Strategy:     backtestFlags.strategy,
		Tickers:      backtestFlags.tickers,
		StartingCash: backtestFlags.cash,
		Epochs:       backtestFlags.epochs,
		Seed:         backtestFlags.seed,
		WithInsight:  backtestFlags.ai,
		Progress:     true,
	})
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	fmt.Printf("%s: %d epochs, %d completed, %d skipped (seed %d)\n",
		summary.Strategy, summary.Epochs, summary.Completed, summary.Skipped, summary.Seed)
	if summary.MeanCAGR != nil {
		fmt.Printf("  CAGR: mean %s", utils.FormatPercentage(*summary.MeanCAGR))
		if summary.StdCAGR != nil {
			fmt.Printf(", std %.2f%%", *summary.StdCAGR)
		}
		fmt.Println()
	} else {
		fmt.Println("  CAGR: no defined values")
	}
	fmt.Printf("  trades per epoch: %.2f mean (%d zero, %d one, %d two)\n",
		summary.MeanTrades, summary.ZeroTradeEpochs, summary.OneTradeEpochs, summary.TwoTradeEpochs)
	if summary.Insight != "" {
		fmt.Printf("\n%s\n", summary.Insight)
	}

	if backtestFlags.csvPath != "" {
		f, err := os.Create(backtestFlags.csvPath)
		if err != nil {
			log.Fatalf("Failed to create CSV file: %v", err)
		}
		defer f.Close()
		if err := export.WriteEpochsCSV(f, summary.Results); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		fmt.Printf("  epochs written to %s\n", backtestFlags.csvPath)
	}

	if backtestFlags.tradesCSV != "" {
		f, err := os.Create(backtestFlags.tradesCSV)
		if err != nil {
			log.Fatalf("Failed to create CSV file: %v", err)
		}
		defer f.Close()
		if err := export.WriteTradesCSV(f, summary.Results); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		fmt.Printf("  trades written to %s\n", backtestFlags.tradesCSV)
	}
}
