// Package sampler draws a random contiguous window of records from a stock file.
//
// Small files are parsed whole and sliced in memory. Files above the size
// threshold are read twice: once to count lines, once to parse only the lines
// that fall inside the chosen window. Both strategies draw the start index
// uniformly from [0, lines-window], so the choice only changes the cost.
package sampler

import (
	"fmt"
	"iter"

	"StockPredict/internal/codec"
	"StockPredict/internal/model"
)

// Reader is the part of the file-system capability the sampler needs.
type Reader interface {
	FileExists(path string) bool
	FileSize(path string) (int64, error)
	ReadLines(path string) iter.Seq2[string, error]
}

// RandomSource draws integers in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Strategy names the sampling approach chosen for a file.
type Strategy string

const (
	StrategySmall Strategy = "small"
	StrategyLarge Strategy = "large"
)

// Sampler extracts windows of a fixed length.
type Sampler struct {
	reader    Reader
	rng       RandomSource
	window    int
	threshold int64
}

// New creates a Sampler. window must be positive; files larger than
// threshold bytes use the two-pass strategy.
func New(reader Reader, rng RandomSource, window int, threshold int64) (*Sampler, error) {
	if window <= 0 {
		return nil, &model.Error{Kind: model.ErrInvalidRequest, Message: fmt.Sprintf("window length must be positive, got %d", window)}
	}
	if threshold < 0 {
		return nil, &model.Error{Kind: model.ErrInvalidRequest, Message: fmt.Sprintf("size threshold must not be negative, got %d", threshold)}
	}
	return &Sampler{reader: reader, rng: rng, window: window, threshold: threshold}, nil
}

// Window returns the configured window length.
func (s *Sampler) Window() int { return s.window }

// StrategyFor picks the strategy for a file of size bytes.
func (s *Sampler) StrategyFor(size int64) Strategy {
	if size > s.threshold {
		return StrategyLarge
	}
	return StrategySmall
}

// Sample returns a random window from path, choosing the strategy by file size.
func (s *Sampler) Sample(path string) ([]model.StockRecord, error) {
	if !s.reader.FileExists(path) {
		return nil, &model.Error{Kind: model.ErrFileUnavailable, Path: path, Message: "file was moved during processing"}
	}
	size, err := s.reader.FileSize(path)
	if err != nil {
		return nil, err
	}
	if s.StrategyFor(size) == StrategyLarge {
		return s.SampleLarge(path)
	}
	return s.SampleSmall(path)
}

// SampleSmall parses every line of path, then slices a random window.
// The first malformed line fails the whole file.
func (s *Sampler) SampleSmall(path string) ([]model.StockRecord, error) {
	var records []model.StockRecord
	for line, err := range s.reader.ReadLines(path) {
		if err != nil {
			return nil, err
		}
		rec, err := codec.ParseLine(line, path)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	start, err := s.drawStart(path, len(records))
	if err != nil {
		return nil, err
	}
	window := make([]model.StockRecord, s.window)
	copy(window, records[start:start+s.window])
	return window, nil
}

// SampleLarge counts the lines of path, draws a start index, then re-reads
// the file keeping only the window. Reading stops once the window is full.
func (s *Sampler) SampleLarge(path string) ([]model.StockRecord, error) {
	count, err := s.countLines(path)
	if err != nil {
		return nil, err
	}
	start, err := s.drawStart(path, count)
	if err != nil {
		return nil, err
	}
	return s.slice(path, start)
}

func (s *Sampler) countLines(path string) (int, error) {
	n := 0
	for _, err := range s.reader.ReadLines(path) {
		if err != nil {
			return 0, err
		}
		n++
	}
	return n, nil
}

// slice parses lines [start, start+window) of path, indexes 0-based.
func (s *Sampler) slice(path string, start int) ([]model.StockRecord, error) {
	end := start + s.window
	window := make([]model.StockRecord, 0, s.window)
	idx := 0
	for line, err := range s.reader.ReadLines(path) {
		if err != nil {
			return nil, err
		}
		if idx >= start {
			rec, err := codec.ParseLine(line, path)
			if err != nil {
				return nil, err
			}
			window = append(window, rec)
		}
		idx++
		if idx >= end {
			break
		}
	}
	if len(window) < s.window {
		return nil, insufficient(path, s.window)
	}
	return window, nil
}

func (s *Sampler) drawStart(path string, total int) (int, error) {
	if total < s.window {
		return 0, insufficient(path, s.window)
	}
	return s.rng.IntN(total - s.window + 1), nil
}

func insufficient(path string, window int) error {
	return &model.Error{
		Kind:    model.ErrInsufficientData,
		Path:    path,
		Message: fmt.Sprintf("file has less than %d lines required for prediction", window),
	}
}
