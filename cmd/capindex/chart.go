package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vadiminshakov/capindex/internal/services/chart"
	"github.com/vadiminshakov/capindex/internal/services/marketdata"
	"github.com/vadiminshakov/capindex/internal/services/simulator"
)

func chartCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "render the index-vs-constituents comparison as a png",
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
			result, err := sim.Run()
			if err != nil {
				return err
			}

			if err := chart.RenderToFile(result, cfg.Assets, output); err != nil {
				return err
			}
			logger.Info("chart rendered", zap.String("output", output))
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "comparison.png", "png output path")
	return cmd
}
