package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPredict/internal/model"
)

func TestPredictionFor(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		count     int
		want      *model.PredictionRequest
		wantErr   error
	}{
		{"sample only", "", 0, nil, nil},
		{"count implies linear", "", 4, &model.PredictionRequest{Algorithm: model.AlgorithmLinearRegression, Count: 4}, nil},
		{"linear", "linear", 2, &model.PredictionRequest{Algorithm: model.AlgorithmLinearRegression, Count: 2}, nil},
		{"primitive default count", "primitive", 0, &model.PredictionRequest{Algorithm: model.AlgorithmPrimitive, Count: 3}, nil},
		{"unknown", "cubic", 1, nil, model.ErrUnsupportedAlgorithm},
		{"linear without count", "linear", 0, nil, model.ErrInvalidRequest},
		{"negative count", "", -2, nil, model.ErrInvalidRequest},
		{"count too large", "primitive", model.MaxPredictionCount + 1, nil, model.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := predictionFor(tt.algorithm, tt.count)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in", "LSE")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(in, 0o755))
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "FLTR.csv"),
		[]byte("FLTR,01-09-2023,16340\nFLTR,02-09-2023,16356.5\nFLTR,03-09-2023,16300\n"), 0o644))

	t.Setenv("STOCK_ROOT_PATH", filepath.Join(dir, "in"))
	t.Setenv("STOCK_OUTPUT_PATH", out)
	t.Setenv("PREVIOUS_LINE_COUNT", "3")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "runs.db"))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"--config", filepath.Join(dir, "absent.yaml"), "generate", "--predict", "2"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "| 1 files")
	assert.Contains(t, stdout.String(), "FLTR.csv")

	batches, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	data, err := os.ReadFile(filepath.Join(out, batches[0].Name(), "LSE", "FLTR.csv"))
	require.NoError(t, err)
	assert.Equal(t, "FLTR,01-09-2023,16340\nFLTR,02-09-2023,16356.5\nFLTR,03-09-2023,16300\n"+
		"FLTR,04-09-2023,16292.17\nFLTR,05-09-2023,16272.17\n", string(data))

	stdout.Reset()
	rootCmd.SetArgs([]string{"--config", filepath.Join(dir, "absent.yaml"), "runs", "--limit", "5"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), "SUCCEEDED")
	assert.Contains(t, stdout.String(), "linear/2")
}
