package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"StockPredict/internal/config"
	"StockPredict/internal/filestore"
	"StockPredict/internal/metrics"
	"StockPredict/internal/model"
	"StockPredict/internal/pipeline"
	"StockPredict/internal/predictor"
	"StockPredict/internal/recorder"
)

var (
	configPath string
	cfg        *config.Config

	rootCmd = &cobra.Command{
		Use:   "stockpredict",
		Short: "Sample stock price files and extrapolate future values",
		Long: `stockpredict draws a random window of consecutive records from every
stock file under each exchange directory, optionally extends it with a
prediction, and publishes the result under a timestamped output folder.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			cfg = loaded
			return nil
		},
	}
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultPath, "path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(runsCmd)
}

// openRecorder opens the SQLite run history, falling back to a no-op recorder.
func openRecorder(c *config.Config) recorder.Recorder {
	if c.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(c.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func newService(c *config.Config, rec recorder.Recorder, m *metrics.Metrics) *pipeline.Service {
	return pipeline.NewService(filestore.NewLocalFS(), pipeline.Settings{
		RootPath:           c.StockFiles.RootPath,
		OutputPath:         c.StockFiles.OutputPath,
		SmallFileThreshold: c.StockFiles.SmallFileThreshold,
		WindowLength:       c.StockFiles.WindowLength,
	}, pipeline.WithRecorder(rec), pipeline.WithMetrics(m))
}

// predictionFor builds the prediction part of a request. A zero count with
// no algorithm means sample only; the primitive algorithm defaults to its
// fixed point count. Out-of-range counts are rejected up front.
func predictionFor(algorithm string, count int) (*model.PredictionRequest, error) {
	if algorithm == "" && count == 0 {
		return nil, nil
	}
	if algorithm == "" {
		algorithm = model.AlgorithmLinearRegression.String()
	}
	alg, err := model.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	if alg == model.AlgorithmPrimitive && count == 0 {
		count = predictor.PrimitivePoints
	}
	req := &model.PredictionRequest{Algorithm: alg, Count: count}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
