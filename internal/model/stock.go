package model

import (
	"fmt"
	"strings"
	"time"
)

// StockRecord is one parsed line of a stock file.
// Records are values: derive a new one with the With* helpers instead of mutating.
type StockRecord struct {
	Ticker string
	Date   time.Time
	Value  float64
}

// WithDate returns a copy of r dated d.
func (r StockRecord) WithDate(d time.Time) StockRecord {
	r.Date = d
	return r
}

// WithValue returns a copy of r carrying v.
func (r StockRecord) WithValue(v float64) StockRecord {
	r.Value = v
	return r
}

// NextDay returns the calendar day after r.Date.
func (r StockRecord) NextDay() time.Time {
	return r.Date.AddDate(0, 0, 1)
}

// ExchangeDirectory groups the CSV files of one exchange.
// Name is the directory path relative to the input root ("" for the root itself).
type ExchangeDirectory struct {
	Name      string
	Dir       string
	FileNames []string
}

// Algorithm selects a prediction strategy.
type Algorithm int

const (
	AlgorithmPrimitive Algorithm = iota
	AlgorithmLinearRegression
)

// MaxPredictionCount bounds PredictionRequest.Count.
const MaxPredictionCount = 100000

func (a Algorithm) String() string {
	switch a {
	case AlgorithmPrimitive:
		return "primitive"
	case AlgorithmLinearRegression:
		return "linear"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a user-facing name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primitive":
		return AlgorithmPrimitive, nil
	case "linear", "linearregression", "linear_regression", "linear-regression":
		return AlgorithmLinearRegression, nil
	default:
		return 0, &Error{Kind: ErrUnsupportedAlgorithm, Message: fmt.Sprintf("algorithm %q not supported", s)}
	}
}

// PredictionRequest asks the predictor to append Count points using Algorithm.
type PredictionRequest struct {
	Algorithm Algorithm
	Count     int
}

// Validate checks the request bounds without looking at any series.
func (p PredictionRequest) Validate() error {
	if p.Count <= 0 || p.Count > MaxPredictionCount {
		return &Error{Kind: ErrInvalidRequest, Message: fmt.Sprintf("prediction count %d is not valid (1-%d)", p.Count, MaxPredictionCount)}
	}
	switch p.Algorithm {
	case AlgorithmPrimitive, AlgorithmLinearRegression:
		return nil
	default:
		return &Error{Kind: ErrUnsupportedAlgorithm, Message: fmt.Sprintf("%s not supported", p.Algorithm)}
	}
}
