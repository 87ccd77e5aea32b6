package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"StockPredict/internal/pipeline"
)

// Generator runs one sample generation batch.
type Generator interface {
	GenerateSample(req pipeline.GenerateRequest) (*pipeline.Batch, error)
}

// Scheduler runs sample generation on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Generator Generator

	// running is set while a batch is in progress; overlapping triggers are skipped.
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a new Scheduler. Cron expressions include a seconds field.
func NewScheduler(gen Generator) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Generator: gen,
	}
}

// RegisterGenerate schedules req under the cron expression spec.
func (s *Scheduler) RegisterGenerate(spec string, req pipeline.GenerateRequest) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.generate(req) }); err != nil {
		return fmt.Errorf("register generate task: %w", err)
	}
	log.Printf("[INFO] generate task scheduled: %q (max files %d)", spec, req.MaxFilesPerExchange)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running batch to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes one batch immediately (for manual trigger / RUN_ON_START).
// It reports false when a batch was already running.
func (s *Scheduler) RunNow(req pipeline.GenerateRequest) bool {
	return s.generate(req)
}

func (s *Scheduler) generate(req pipeline.GenerateRequest) bool {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[WARN] generate task skipped: previous batch still running")
		return false
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log.Println("[INFO] running generate task")
	batch, err := s.Generator.GenerateSample(req)
	if err != nil {
		log.Printf("[ERROR] generate task: %v", err)
		return true
	}
	log.Printf("[INFO] generate task published %d files to %s", len(batch.Files), batch.Folder)
	return true
}
