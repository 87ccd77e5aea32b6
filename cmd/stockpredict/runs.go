package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"StockPredict/internal/report"
)

var (
	runsLimit int

	runsCmd = &cobra.Command{
		Use:   "runs",
		Short: "Show recent sampling batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runsLimit < 1 {
				return fmt.Errorf("--limit must be at least 1")
			}
			rec := openRecorder(cfg)
			defer rec.Close()

			runs, err := rec.RecentBatches(runsLimit)
			if err != nil {
				return fmt.Errorf("read run history: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatRuns(runs))
			return nil
		},
	}
)

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "number of runs to show")
}
