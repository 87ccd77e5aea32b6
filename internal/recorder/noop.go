package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordBatch(_ *BatchRun) error           { return nil }
func (n *NoopRecorder) RecentBatches(_ int) ([]BatchRun, error) { return nil, nil }
func (n *NoopRecorder) Close() error                            { return nil }
