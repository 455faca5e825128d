package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vadiminshakov/capindex/internal/services/stats"
)

func statsCmd() *cobra.Command {
	var input, output string
	var markdown bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "summarize a return matrix produced by sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return errors.Wrap(err, "open return matrix")
			}
			defer f.Close()

			report, err := stats.Compute(f)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				out, err = os.Create(output)
				if err != nil {
					return errors.Wrap(err, "create output file")
				}
				defer out.Close()
			}
			if markdown {
				return stats.WriteMarkdown(out, report)
			}
			return stats.WriteText(out, report)
		},
	}
	cmd.Flags().StringVar(&input, "input", "returns.csv", "return matrix csv")
	cmd.Flags().StringVar(&output, "output", "", "write the summary to a file instead of stdout")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render a markdown table")
	return cmd
}
