package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPredict/internal/model"
	"StockPredict/internal/pipeline"
	"StockPredict/internal/recorder"
)

func TestFormatBatchSummary(t *testing.T) {
	d := time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)
	batch := &pipeline.Batch{
		Folder: "20240501T093015",
		Files: []pipeline.StagedFile{
			{Exchange: "NYSE", FileName: "ASH.csv", Records: []model.StockRecord{
				{Ticker: "ASH", Date: d, Value: 10},
				{Ticker: "ASH", Date: d.AddDate(0, 0, 1), Value: 11.456},
			}},
			{Exchange: "", FileName: "ROOT.csv"},
			{Exchange: "LSE", FileName: "FLTR.csv", Records: []model.StockRecord{
				{Ticker: "FLTR", Date: d, Value: 16340},
			}},
		},
	}

	out := FormatBatchSummary(batch, "/data/out/")
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Equal(t, "Batch 20240501T093015 | 3 files", lines[0])
	assert.Equal(t, "Output: /data/out/20240501T093015", lines[1])

	rootAt := strings.Index(out, "(root)")
	lseAt := strings.Index(out, "LSE")
	nyseAt := strings.Index(out, "NYSE")
	require.True(t, rootAt > 0 && lseAt > 0 && nyseAt > 0)
	assert.Less(t, rootAt, lseAt)
	assert.Less(t, lseAt, nyseAt)

	assert.Contains(t, out, "ROOT.csv         (no records)")
	assert.Contains(t, out, "ASH.csv          2 records 01-09-2023 .. 02-09-2023 last 11.46")
	assert.Contains(t, out, "FLTR.csv         1 records 01-09-2023 .. 01-09-2023 last 16340")
}

func TestFormatRuns(t *testing.T) {
	assert.Equal(t, "No runs recorded.\n", FormatRuns(nil))

	out := FormatRuns([]recorder.BatchRun{
		{
			StartedAt: time.Date(2024, time.May, 1, 9, 30, 15, 0, time.UTC), Duration: 1234567 * time.Microsecond,
			Folder: "20240501T093015", MaxFiles: 2, Files: 4, Status: recorder.StatusSucceeded,
			Algorithm: "linear", PredictionCount: 5,
		},
		{
			StartedAt: time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC),
			MaxFiles:  0, Status: recorder.StatusFailed, ErrorKind: "invalid request",
		},
	})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "STARTED (UTC)"))
	assert.Contains(t, lines[1], "2024-05-01 09:30:15")
	assert.Contains(t, lines[1], "linear/5")
	assert.Contains(t, lines[1], "1.235s")
	assert.True(t, strings.HasSuffix(lines[1], "20240501T093015"))
	assert.Contains(t, lines[2], "FAILED")
	assert.True(t, strings.HasSuffix(lines[2], "invalid request"))
}
