package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "golang-quant",
	Short: "Monte Carlo price simulation and strategy backtesting",
}

func Execute() error {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(migrateCmd)
	return rootCmd.Execute()
}
