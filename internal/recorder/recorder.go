package recorder

import "time"

// Batch run statuses.
const (
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
)

// BatchRun holds the outcome of one sample generation request.
type BatchRun struct {
	ID              string
	StartedAt       time.Time
	Duration        time.Duration
	Folder          string
	MaxFiles        int
	Algorithm       string // empty when no prediction was requested
	PredictionCount int
	Files           int
	Status          string
	ErrorKind       string
	Error           string
}

// Recorder persists the history of batch runs.
type Recorder interface {
	RecordBatch(run *BatchRun) error
	RecentBatches(limit int) ([]BatchRun, error)
	Close() error
}
