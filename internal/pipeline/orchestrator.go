// Package pipeline drives sampling and prediction across exchanges and
// stages the results for output.
package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"

	"StockPredict/internal/codec"
	"StockPredict/internal/filestore"
	"StockPredict/internal/model"
	"StockPredict/internal/predictor"
)

// WindowSampler returns a random window of records from one file.
type WindowSampler interface {
	Sample(path string) ([]model.StockRecord, error)
}

// StagedFile is the final record sequence for one input file.
type StagedFile struct {
	Exchange   string
	FileName   string
	SourcePath string
	Records    []model.StockRecord
}

// RelativePath is where the file lands inside the batch folder.
func (f StagedFile) RelativePath() string {
	return filepath.Join(f.Exchange, f.FileName)
}

// Batch is the output of one orchestrator run.
type Batch struct {
	Folder string
	Files  []StagedFile
}

// Manifest renders the batch into formatted lines keyed by relative path.
func (b *Batch) Manifest() filestore.Manifest {
	m := filestore.Manifest{Folder: b.Folder, Entries: make([]filestore.Entry, len(b.Files))}
	for i, f := range b.Files {
		m.Entries[i] = filestore.Entry{Path: f.RelativePath(), Lines: codec.FormatLines(f.Records)}
	}
	return m
}

// Orchestrator samples, and optionally predicts, every selected file in turn.
type Orchestrator struct {
	sampler WindowSampler
}

// NewOrchestrator creates an Orchestrator around a sampler.
func NewOrchestrator(s WindowSampler) *Orchestrator {
	return &Orchestrator{sampler: s}
}

// Run processes up to maxFiles files per exchange. Exchanges and files are
// visited in lexicographic order.
// The first failure aborts the run and nothing is staged.
func (o *Orchestrator) Run(exchanges []model.ExchangeDirectory, maxFiles int, req *model.PredictionRequest, folder string) (*Batch, error) {
	if maxFiles < 1 {
		return nil, invalidMaxFiles(maxFiles)
	}
	if req != nil {
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}
	exchanges = nonEmpty(exchanges)
	if len(exchanges) == 0 {
		return nil, &model.Error{Kind: model.ErrInvalidRequest, Message: "no exchange directory contains stock files"}
	}

	batch := &Batch{Folder: folder}
	for _, ex := range exchanges {
		for _, name := range selectFiles(ex.FileNames, maxFiles) {
			path := filepath.Join(ex.Dir, name)
			records, err := o.sampler.Sample(path)
			if err != nil {
				return nil, err
			}
			if req != nil {
				records, err = predictor.Predict(records, *req)
				if err != nil {
					return nil, err
				}
			}
			batch.Files = append(batch.Files, StagedFile{
				Exchange:   ex.Name,
				FileName:   name,
				SourcePath: path,
				Records:    records,
			})
		}
	}
	return batch, nil
}

func selectFiles(names []string, max int) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	if len(sorted) > max {
		sorted = sorted[:max]
	}
	return sorted
}

func nonEmpty(exchanges []model.ExchangeDirectory) []model.ExchangeDirectory {
	var out []model.ExchangeDirectory
	for _, ex := range exchanges {
		if len(ex.FileNames) > 0 {
			out = append(out, ex)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func invalidMaxFiles(n int) error {
	return &model.Error{Kind: model.ErrInvalidRequest, Message: fmt.Sprintf("maxStockFilesPerExchange must be 1 or more, got %d", n)}
}
