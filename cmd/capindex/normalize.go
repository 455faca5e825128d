package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vadiminshakov/capindex/internal/domain"
	"github.com/vadiminshakov/capindex/internal/services/normalize"
)

func normalizeCmd() *cobra.Command {
	var rawDir, normalizedDir, startDate string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "pad raw csv exports with zero rows so all series share a start date",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(domain.DateFormat, startDate)
			if err != nil {
				return errors.Wrapf(err, "invalid --start-date %q, want %s", startDate, domain.DateFormat)
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			return normalize.New(rawDir, normalizedDir, logger).Run(start)
		},
	}
	cmd.Flags().StringVar(&rawDir, "raw-dir", "data/raw", "directory with raw csv exports")
	cmd.Flags().StringVar(&normalizedDir, "normalized-dir", "data/normalized", "output directory")
	cmd.Flags().StringVar(&startDate, "start-date", "", "common series start date (YYYY-MM-DD)")
	cobra.CheckErr(cmd.MarkFlagRequired("start-date"))
	return cmd
}
