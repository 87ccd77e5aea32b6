// Package predictor extends a stock series with extrapolated future points.
package predictor

import (
	"fmt"
	"math"

	"StockPredict/internal/calculator"
	"StockPredict/internal/codec"
	"StockPredict/internal/model"
)

// PrimitivePoints is the fixed number of points the primitive algorithm appends.
const PrimitivePoints = 3

// Predict returns input followed by the predicted points. input is not modified.
// The primitive algorithm always appends PrimitivePoints records and ignores
// req.Count beyond validating it.
func Predict(input []model.StockRecord, req model.PredictionRequest) ([]model.StockRecord, error) {
	if len(input) == 0 {
		return nil, &model.Error{Kind: model.ErrInvalidRequest, Message: "training input is empty"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Algorithm {
	case model.AlgorithmPrimitive:
		return predictPrimitive(input)
	case model.AlgorithmLinearRegression:
		return predictLinear(input, req.Count)
	default:
		return nil, &model.Error{Kind: model.ErrUnsupportedAlgorithm, Message: fmt.Sprintf("%s not supported", req.Algorithm)}
	}
}

// predictPrimitive appends:
//  1. the second-highest record, dated the day after the last record;
//  2. the mean of point 1 and the record before it;
//  3. the lower of the last two values plus a quarter of their spread.
func predictPrimitive(input []model.StockRecord) ([]model.StockRecord, error) {
	second, err := calculator.SecondHighest(input)
	if err != nil {
		return nil, &model.Error{Kind: model.ErrInsufficientData, Message: "not enough training points", Err: err}
	}

	out := make([]model.StockRecord, len(input), len(input)+PrimitivePoints)
	copy(out, input)

	last := out[len(out)-1]
	out = append(out, second.WithDate(last.NextDay()))

	last, prev := out[len(out)-1], out[len(out)-2]
	out = append(out, last.WithDate(last.NextDay()).WithValue(codec.RoundValue((last.Value+prev.Value)/2)))

	last, prev = out[len(out)-1], out[len(out)-2]
	low := math.Min(last.Value, prev.Value)
	spread := math.Abs(last.Value-prev.Value) / 4
	out = append(out, last.WithDate(last.NextDay()).WithValue(codec.RoundValue(low+spread)))

	return out, nil
}

// predictLinear fits a least-squares line over index 0..n-1 and appends count
// points, one day apart, at indexes n..n+count-1.
func predictLinear(input []model.StockRecord, count int) ([]model.StockRecord, error) {
	slope, intercept, err := calculator.FitLine(input)
	if err != nil {
		return nil, &model.Error{Kind: model.ErrInsufficientData, Message: "cannot fit series", Err: err}
	}

	n := len(input)
	out := make([]model.StockRecord, n, n+count)
	copy(out, input)
	for i := n; i < n+count; i++ {
		prev := out[i-1]
		out = append(out, prev.WithDate(prev.NextDay()).WithValue(codec.RoundValue(slope*float64(i)+intercept)))
	}
	return out, nil
}
