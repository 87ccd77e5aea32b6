// Package filestore provides the file-system capability used by the pipeline:
// exchange discovery, line-oriented reads and writes, and output publishing.
package filestore

import (
	"iter"
	"path/filepath"
	"strings"
)

// FileSystem defines the file operations the pipeline relies on.
type FileSystem interface {
	// ListDirectories returns root and every directory below it.
	ListDirectories(root string) ([]string, error)
	// ListCSVFiles returns the names of the *.csv files directly inside dir, sorted.
	ListCSVFiles(dir string) ([]string, error)
	FileExists(path string) bool
	DirExists(path string) bool
	FileSize(path string) (int64, error)
	// ReadLines streams the lines of path. The sequence is single-pass; a
	// failure is yielded once as the error element and ends the sequence.
	ReadLines(path string) iter.Seq2[string, error]
	WriteLines(path string, lines []string) error
	CreateDirectory(path string) error
	// RemoveAll deletes path and everything below it. A missing path is not an error.
	RemoveAll(path string) error
	Name() string
}

// Entry is one file to publish: a path relative to the batch folder and its lines.
type Entry struct {
	Path  string
	Lines []string
}

// Manifest is everything one batch writes under Folder.
type Manifest struct {
	Folder  string
	Entries []Entry
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
