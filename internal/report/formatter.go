// Package report renders batches and run history as plain text for the CLI.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"StockPredict/internal/codec"
	"StockPredict/internal/pipeline"
	"StockPredict/internal/recorder"
)

// FormatBatchSummary formats a published batch: one block per exchange with
// the file name, the sampled date range and the last value of each file.
func FormatBatchSummary(batch *pipeline.Batch, outputRoot string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Batch %s | %d files\n", batch.Folder, len(batch.Files)))
	b.WriteString(fmt.Sprintf("Output: %s\n", strings.TrimSuffix(outputRoot, "/")+"/"+batch.Folder))

	byExchange := make(map[string][]pipeline.StagedFile)
	var names []string
	for _, f := range batch.Files {
		if _, ok := byExchange[f.Exchange]; !ok {
			names = append(names, f.Exchange)
		}
		byExchange[f.Exchange] = append(byExchange[f.Exchange], f)
	}
	sort.Strings(names)

	for _, name := range names {
		label := name
		if label == "" {
			label = "(root)"
		}
		b.WriteString(fmt.Sprintf("\n%s\n", label))
		for _, f := range byExchange[name] {
			b.WriteString("  " + formatFile(f) + "\n")
		}
	}
	return b.String()
}

func formatFile(f pipeline.StagedFile) string {
	if len(f.Records) == 0 {
		return fmt.Sprintf("%-16s (no records)", f.FileName)
	}
	first, last := f.Records[0], f.Records[len(f.Records)-1]
	return fmt.Sprintf("%-16s %d records %s .. %s last %s",
		f.FileName, len(f.Records),
		first.Date.Format(codec.DateLayout), last.Date.Format(codec.DateLayout),
		codec.FormatValue(last.Value))
}

// FormatRuns formats run history as a fixed-width table, newest first as given.
func FormatRuns(runs []recorder.BatchRun) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-20s %-9s %5s %5s %-12s %8s  %s\n",
		"STARTED (UTC)", "STATUS", "MAX", "FILES", "PREDICTION", "TIME", "DETAIL"))
	for _, r := range runs {
		prediction := "-"
		if r.Algorithm != "" {
			prediction = fmt.Sprintf("%s/%d", r.Algorithm, r.PredictionCount)
		}
		detail := r.Folder
		if r.Status == recorder.StatusFailed {
			detail = r.ErrorKind
		}
		b.WriteString(fmt.Sprintf("%-20s %-9s %5d %5d %-12s %8s  %s\n",
			r.StartedAt.UTC().Format("2006-01-02 15:04:05"), r.Status, r.MaxFiles, r.Files,
			prediction, r.Duration.Round(time.Millisecond), detail))
	}
	return b.String()
}
