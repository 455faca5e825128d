package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vadiminshakov/capindex/internal/services/marketdata"
	"github.com/vadiminshakov/capindex/internal/services/sweep"
)

func sweepCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "simulate once per entry date and write the return matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateSweep(); err != nil {
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

			driver, err := sweep.NewDriver(series, sweep.Config{
				EntryFrom:      cfg.EntryFrom,
				EntryTo:        cfg.EntryTo,
				ExitDate:       cfg.EndDate,
				RebalanceEvery: cfg.RebalanceDays,
				InitialCash:    cfg.InitialCash,
				WeightingMode:  cfg.Weighting,
				MinAllocation:  cfg.MinAllocation,
				Workers:        cfg.Workers,
			}, logger)
			if err != nil {
				return err
			}

			matrix, err := driver.Run()
			if err != nil {
				return err
			}

			if output == "" {
				output = cfg.Output
			}
			f, err := os.Create(output)
			if err != nil {
				return errors.Wrap(err, "create output file")
			}
			defer f.Close()
			if err := sweep.WriteCSV(f, matrix); err != nil {
				return err
			}
			logger.Info("sweep finished",
				zap.Int("rows", len(matrix.Rows)),
				zap.String("output", output))
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output csv path (defaults to the configured one)")
	return cmd
}
