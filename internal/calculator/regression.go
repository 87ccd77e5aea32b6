package calculator

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	"StockPredict/internal/model"
)

// FitLine fits value ≈ slope*index + intercept by ordinary least squares,
// using index 0..n-1 as the independent variable.
// A single point yields a flat line through it.
func FitLine(records []model.StockRecord) (slope, intercept float64, err error) {
	if len(records) == 0 {
		return 0, 0, errors.New("no records to fit")
	}
	values := extractValues(records)
	if len(values) == 1 {
		return 0, values[0], nil
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	intercept, slope = stat.LinearRegression(xs, values, nil, false)
	return slope, intercept, nil
}

func extractValues(records []model.StockRecord) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Value
	}
	return values
}
