package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"StockPredict/internal/api"
	"StockPredict/internal/metrics"
	"StockPredict/internal/pipeline"
	"StockPredict/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stock sampling HTTP API",
	Long: `Serves /api/v1/stock/* plus /health and /metrics. When
schedule.generate_cron is set a batch also runs on that schedule.
Set RUN_ON_START=true to run one scheduled batch immediately.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Println("[INFO] StockPredict starting...")

	rec := openRecorder(cfg)
	defer rec.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	svc := newService(cfg, rec, metrics.New(reg))

	if cfg.Schedule.GenerateCron != "" {
		prediction, err := predictionFor(cfg.Schedule.Algorithm, cfg.Schedule.PredictionCount)
		if err != nil {
			return fmt.Errorf("schedule prediction: %w", err)
		}
		req := pipeline.GenerateRequest{MaxFilesPerExchange: cfg.Schedule.MaxFiles, Prediction: prediction}

		sched := scheduler.NewScheduler(svc)
		if err := sched.RegisterGenerate(cfg.Schedule.GenerateCron, req); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, executing generate task now")
			go sched.RunNow(req)
		}
	}

	router := gin.Default()
	api.SetupRoutes(router, api.NewHandler(svc, rec, cfg.Server.DefaultMaxFiles),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] listening on %s (input %s, output %s)", cfg.Server.Addr, cfg.StockFiles.RootPath, cfg.StockFiles.OutputPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Println("[INFO] shutdown signal received, stopping...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] StockPredict stopped")
	return nil
}
