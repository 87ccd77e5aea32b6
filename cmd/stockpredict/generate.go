package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"StockPredict/internal/pipeline"
	"StockPredict/internal/report"
)

var (
	genMaxFiles  int
	genPredict   int
	genAlgorithm string

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Run one sampling batch and publish it",
		Example: `  stockpredict generate --max-files 2
  stockpredict generate --max-files 1 --predict 5 --algorithm linear
  stockpredict generate --algorithm primitive`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
)

func init() {
	generateCmd.Flags().IntVarP(&genMaxFiles, "max-files", "n", 0,
		"files to sample per exchange (default server.default_max_files_per_exchange)")
	generateCmd.Flags().IntVar(&genPredict, "predict", 0, "points to predict after each sample (0 = sample only)")
	generateCmd.Flags().StringVar(&genAlgorithm, "algorithm", "", "prediction algorithm: linear or primitive")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	rec := openRecorder(cfg)
	defer rec.Close()

	maxFiles := cfg.Server.DefaultMaxFiles
	if cmd.Flags().Changed("max-files") {
		maxFiles = genMaxFiles
	}
	prediction, err := predictionFor(genAlgorithm, genPredict)
	if err != nil {
		return err
	}

	batch, err := newService(cfg, rec, nil).GenerateSample(pipeline.GenerateRequest{
		MaxFilesPerExchange: maxFiles,
		Prediction:          prediction,
	})
	if err != nil {
		return fmt.Errorf("generate sample: %w", err)
	}
	log.Printf("[INFO] published %d files", len(batch.Files))
	fmt.Fprint(cmd.OutOrStdout(), report.FormatBatchSummary(batch, cfg.StockFiles.OutputPath))
	return nil
}
