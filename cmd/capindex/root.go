package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vadiminshakov/capindex/config"
)

var (
	configPath string
	verbose    bool
)

// Execute runs the CLI.
func Execute() error {
	root := &cobra.Command{
		Use:           "capindex",
		Short:         "market-cap-weighted crypto index backtester",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to yaml config")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	root.AddCommand(backtestCmd())
	root.AddCommand(sweepCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(normalizeCmd())
	root.AddCommand(chartCmd())
	return root.Execute()
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}
