package calculator

import (
	"errors"
	"sort"

	"StockPredict/internal/model"
)

// SecondHighest returns the record with the second-highest value.
// Equal values keep their original order, so with a tie for the highest
// value the later of the tied records is returned.
func SecondHighest(records []model.StockRecord) (model.StockRecord, error) {
	if len(records) < 2 {
		return model.StockRecord{}, errors.New("need at least 2 records")
	}
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return records[idx[a]].Value > records[idx[b]].Value
	})
	return records[idx[1]], nil
}
