package pipeline

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"StockPredict/internal/filestore"
	"StockPredict/internal/metrics"
	"StockPredict/internal/model"
	"StockPredict/internal/recorder"
	"StockPredict/internal/sampler"
)

// FolderLayout names the batch output folder from its UTC start time.
const FolderLayout = "20060102T150405"

// Settings carries the configuration values the service consumes.
type Settings struct {
	RootPath           string
	OutputPath         string
	SmallFileThreshold int64
	WindowLength       int
}

// GenerateRequest is the input of GenerateSample. A nil Prediction means sample only.
type GenerateRequest struct {
	MaxFilesPerExchange int
	Prediction          *model.PredictionRequest
}

// Service discovers exchanges, runs the orchestrator and publishes the batch.
type Service struct {
	fs       filestore.FileSystem
	settings Settings
	recorder recorder.Recorder
	metrics  *metrics.Metrics
	now      func() time.Time
	newRand  func() sampler.RandomSource
}

// Option customises a Service.
type Option func(*Service)

// WithRecorder stores a history entry for every batch.
func WithRecorder(r recorder.Recorder) Option { return func(s *Service) { s.recorder = r } }

// WithMetrics reports batch outcomes to m.
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithRandom replaces the per-batch random source factory.
func WithRandom(f func() sampler.RandomSource) Option { return func(s *Service) { s.newRand = f } }

// NewService creates a Service over fsys.
func NewService(fsys filestore.FileSystem, settings Settings, opts ...Option) *Service {
	s := &Service{
		fs:       fsys,
		settings: settings,
		recorder: recorder.NewNoopRecorder(),
		now:      time.Now,
		newRand: func() sampler.RandomSource {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateSample samples every exchange under the root path, optionally
// predicts, and writes the batch under a new timestamped output folder.
// Nothing is written unless every file succeeds.
func (s *Service) GenerateSample(req GenerateRequest) (*Batch, error) {
	started := s.now()
	batch, err := s.generate(req, started)
	s.observe(req, started, batch, err)
	return batch, err
}

func (s *Service) generate(req GenerateRequest, started time.Time) (*Batch, error) {
	if req.MaxFilesPerExchange < 1 {
		return nil, invalidMaxFiles(req.MaxFilesPerExchange)
	}
	if req.Prediction != nil {
		if err := req.Prediction.Validate(); err != nil {
			return nil, err
		}
	}

	exchanges, err := filestore.DiscoverExchanges(s.fs, s.settings.RootPath)
	if err != nil {
		return nil, err
	}

	smp, err := sampler.New(s.fs, s.newRand(), s.settings.WindowLength, s.settings.SmallFileThreshold)
	if err != nil {
		return nil, err
	}

	folder := started.UTC().Format(FolderLayout)
	batch, err := NewOrchestrator(smp).Run(exchanges, req.MaxFilesPerExchange, req.Prediction, folder)
	if err != nil {
		return nil, err
	}

	if err := filestore.Publish(s.fs, s.settings.OutputPath, batch.Manifest()); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *Service) observe(req GenerateRequest, started time.Time, batch *Batch, err error) {
	elapsed := s.now().Sub(started)
	run := &recorder.BatchRun{
		ID:        uuid.NewString(),
		StartedAt: started.UTC(),
		Duration:  elapsed,
		Folder:    started.UTC().Format(FolderLayout),
		MaxFiles:  req.MaxFilesPerExchange,
		Status:    recorder.StatusSucceeded,
	}
	if req.Prediction != nil {
		run.Algorithm = req.Prediction.Algorithm.String()
		run.PredictionCount = req.Prediction.Count
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
		run.Status = recorder.StatusFailed
		run.ErrorKind = string(model.KindOf(err))
		run.Error = err.Error()
	} else {
		run.Files = len(batch.Files)
	}

	s.metrics.ObserveBatch(outcome, run.Files, elapsed)
	if rerr := s.recorder.RecordBatch(run); rerr != nil {
		log.Printf("[WARN] record batch run %s: %v", run.ID, rerr)
	}
}
