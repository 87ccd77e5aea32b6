// Package codec converts between stock file lines and StockRecord values.
//
// The wire format is TICKER,DD-MM-YYYY,FLOAT with no header, quoting or
// escaping. Tokens past the third are ignored.
package codec

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"StockPredict/internal/model"
)

// DateLayout is the day-month-year layout used on both input and output.
const DateLayout = "02-01-2006"

// decimalValue accepts plain decimal notation with an optional exponent.
// strconv.ParseFloat alone would also take hex floats and digit separators.
var decimalValue = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseLine parses one raw line. path is only used to give failures context.
func ParseLine(raw, path string) (model.StockRecord, error) {
	tokens := strings.Split(raw, ",")
	if len(tokens) < 3 {
		return model.StockRecord{}, malformed(raw, path, "expected ticker,date,value")
	}

	ticker := tokens[0]
	if strings.TrimSpace(ticker) == "" {
		return model.StockRecord{}, malformed(raw, path, "empty ticker")
	}

	date, err := time.Parse(DateLayout, tokens[1])
	if err != nil {
		return model.StockRecord{}, malformed(raw, path, "invalid date")
	}

	if !decimalValue.MatchString(tokens[2]) {
		return model.StockRecord{}, malformed(raw, path, "invalid value")
	}
	value, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return model.StockRecord{}, malformed(raw, path, "invalid value")
	}

	return model.StockRecord{Ticker: ticker, Date: date, Value: value}, nil
}

// FormatLine renders r in the wire format with the value rounded to 2 decimals.
func FormatLine(r model.StockRecord) string {
	var b strings.Builder
	b.WriteString(r.Ticker)
	b.WriteByte(',')
	b.WriteString(r.Date.Format(DateLayout))
	b.WriteByte(',')
	b.WriteString(FormatValue(r.Value))
	return b.String()
}

// FormatValue renders v rounded to 2 decimals without trailing zeros.
func FormatValue(v float64) string {
	return decimal.NewFromFloat(v).RoundBank(2).String()
}

// FormatLines renders every record of a series.
func FormatLines(records []model.StockRecord) []string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = FormatLine(r)
	}
	return lines
}

// RoundValue rounds v to 2 decimals, half to even.
func RoundValue(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).RoundBank(2).Float64()
	return f
}

func malformed(raw, path, reason string) error {
	return &model.Error{Kind: model.ErrMalformed, Path: path, Line: raw, Message: reason}
}
