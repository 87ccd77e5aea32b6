// Package api serves sample generation over HTTP with gin.
package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"StockPredict/internal/codec"
	"StockPredict/internal/model"
	"StockPredict/internal/pipeline"
	"StockPredict/internal/predictor"
	"StockPredict/internal/recorder"
)

// Query parameter names.
const (
	paramMaxFiles        = "maxStockFilesPerExchange"
	paramPredictionCount = "predictionCount"
	paramLimit           = "limit"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 500
)

// Generator runs one sample generation batch.
type Generator interface {
	GenerateSample(req pipeline.GenerateRequest) (*pipeline.Batch, error)
}

// RecordResponse is one stock record as returned to clients.
type RecordResponse struct {
	Ticker string  `json:"ticker"`
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
}

// FileResponse is one published stock file.
type FileResponse struct {
	Exchange string           `json:"exchange"`
	File     string           `json:"file"`
	Path     string           `json:"path"`
	Records  []RecordResponse `json:"records"`
}

// RunResponse is one run history entry.
type RunResponse struct {
	ID              string  `json:"id"`
	StartedAt       string  `json:"started_at"`
	DurationSeconds float64 `json:"duration_seconds"`
	Folder          string  `json:"folder"`
	MaxFiles        int     `json:"max_files"`
	Algorithm       string  `json:"algorithm,omitempty"`
	PredictionCount int     `json:"prediction_count,omitempty"`
	Files           int     `json:"files"`
	Status          string  `json:"status"`
	ErrorKind       string  `json:"error_kind,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// Handler holds the dependencies of the stock endpoints.
type Handler struct {
	gen             Generator
	runs            recorder.Recorder
	defaultMaxFiles int
}

// NewHandler creates a Handler. defaultMaxFiles applies when a request omits
// maxStockFilesPerExchange.
func NewHandler(gen Generator, runs recorder.Recorder, defaultMaxFiles int) *Handler {
	return &Handler{gen: gen, runs: runs, defaultMaxFiles: defaultMaxFiles}
}

// GetSampleStockData samples every exchange without predicting.
func (h *Handler) GetSampleStockData(c *gin.Context) {
	maxFiles, ok := h.maxFiles(c)
	if !ok {
		return
	}
	h.generate(c, pipeline.GenerateRequest{MaxFilesPerExchange: maxFiles})
}

// PredictStockDataLinear samples and extends each file with a linear fit.
// Without predictionCount the samples are returned unextended.
func (h *Handler) PredictStockDataLinear(c *gin.Context) {
	maxFiles, ok := h.maxFiles(c)
	if !ok {
		return
	}
	req := pipeline.GenerateRequest{MaxFilesPerExchange: maxFiles}

	if raw, present := c.GetQuery(paramPredictionCount); present {
		count, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, badParam(paramPredictionCount, raw))
			return
		}
		req.Prediction = &model.PredictionRequest{Algorithm: model.AlgorithmLinearRegression, Count: count}
	}
	h.generate(c, req)
}

// PredictStockDataPrimitive samples and extends each file with the primitive heuristic.
func (h *Handler) PredictStockDataPrimitive(c *gin.Context) {
	maxFiles, ok := h.maxFiles(c)
	if !ok {
		return
	}
	h.generate(c, pipeline.GenerateRequest{
		MaxFilesPerExchange: maxFiles,
		Prediction:          &model.PredictionRequest{Algorithm: model.AlgorithmPrimitive, Count: predictor.PrimitivePoints},
	})
}

// ListRuns returns the most recent batch runs, newest first.
func (h *Handler) ListRuns(c *gin.Context) {
	limit := defaultRunsLimit
	if raw, present := c.GetQuery(paramLimit); present {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRunsLimit {
			abortWithError(c, badParam(paramLimit, raw))
			return
		}
		limit = n
	}

	runs, err := h.runs.RecentBatches(limit)
	if err != nil {
		log.Printf("[ERROR] list runs: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not read run history", Kind: string(model.ErrIOFailure)})
		return
	}

	out := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunResponse{
			ID:              r.ID,
			StartedAt:       r.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
			DurationSeconds: r.Duration.Seconds(),
			Folder:          r.Folder,
			MaxFiles:        r.MaxFiles,
			Algorithm:       r.Algorithm,
			PredictionCount: r.PredictionCount,
			Files:           r.Files,
			Status:          r.Status,
			ErrorKind:       r.ErrorKind,
			Error:           r.Error,
		})
	}
	c.JSON(http.StatusOK, out)
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) maxFiles(c *gin.Context) (int, bool) {
	raw, present := c.GetQuery(paramMaxFiles)
	if !present {
		return h.defaultMaxFiles, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		abortWithError(c, badParam(paramMaxFiles, raw))
		return 0, false
	}
	return n, true
}

func (h *Handler) generate(c *gin.Context, req pipeline.GenerateRequest) {
	batch, err := h.gen.GenerateSample(req)
	if err != nil {
		log.Printf("[ERROR] %s: %v", c.FullPath(), err)
		abortWithError(c, err)
		return
	}
	log.Printf("[INFO] %s: published %d files to %s", c.FullPath(), len(batch.Files), batch.Folder)
	c.JSON(http.StatusOK, toFileResponses(batch))
}

func toFileResponses(batch *pipeline.Batch) []FileResponse {
	out := make([]FileResponse, 0, len(batch.Files))
	for _, f := range batch.Files {
		records := make([]RecordResponse, len(f.Records))
		for i, r := range f.Records {
			records[i] = RecordResponse{
				Ticker: r.Ticker,
				Date:   r.Date.Format(codec.DateLayout),
				Value:  codec.RoundValue(r.Value),
			}
		}
		out = append(out, FileResponse{
			Exchange: f.Exchange,
			File:     f.FileName,
			Path:     f.RelativePath(),
			Records:  records,
		})
	}
	return out
}
