package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vadiminshakov/capindex/internal/services/marketdata"
	"github.com/vadiminshakov/capindex/internal/services/report"
	"github.com/vadiminshakov/capindex/internal/services/simulator"
	"github.com/vadiminshakov/capindex/internal/storage/rebalances"
)

func backtestCmd() *cobra.Command {
	var journalDir string

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "run a single simulation and print the performance comparison",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateBacktest(); err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			series, err := marketdata.NewLoader(cfg.DataDir, logger).Load(cfg.Assets)
			if err != nil {
				return err
			}

			sim, err := simulator.New(series, simulator.Config{
				Start:          cfg.StartDate,
				End:            cfg.EndDate,
				RebalanceEvery: cfg.RebalanceDays,
				InitialCash:    cfg.InitialCash,
				WeightingMode:  cfg.Weighting,
				MinAllocation:  cfg.MinAllocation,
			}, logger)
			if err != nil {
				return err
			}

			if journalDir != "" {
				journal, err := rebalances.NewWALStore(journalDir)
				if err != nil {
					return errors.Wrap(err, "open rebalance journal")
				}
				defer journal.Close()
				sim.WithJournal(journal)
			}

			result, err := sim.Run()
			if err != nil {
				return err
			}
			logger.Info("backtest finished",
				zap.Int("rebalances", len(result.Rebalances)),
				zap.String("final_value", result.Final.StringFixed(2)))

			return report.Write(os.Stdout, result, cfg.Assets)
		},
	}
	cmd.Flags().StringVar(&journalDir, "journal-dir", "", "persist rebalance events to a WAL in this directory")
	return cmd
}
