package filestore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"

	"StockPredict/internal/model"
)

const maxLineBytes = 1 << 20

// LocalFS implements FileSystem on the host disk.
type LocalFS struct{}

// NewLocalFS creates a disk-backed FileSystem.
func NewLocalFS() *LocalFS { return &LocalFS{} }

func (l *LocalFS) Name() string { return "local" }

func (l *LocalFS) ListDirectories(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, &model.Error{Kind: model.ErrIOFailure, Path: root, Message: "base directory does not exist", Err: err}
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, ioFailure(root, "list directories", err)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (l *LocalFS) ListCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioFailure(dir, "read directory", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !isCSV(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (l *LocalFS) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (l *LocalFS) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (l *LocalFS) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, openFailure(path, err)
	}
	return info.Size(), nil
}

func (l *LocalFS) ReadLines(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield("", openFailure(path, err))
			return
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 64*1024), maxLineBytes)
		for sc.Scan() {
			if !yield(sc.Text(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield("", ioFailure(path, "read file", err))
		}
	}
}

func (l *LocalFS) WriteLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return ioFailure(path, "create stock file", err)
	}
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			return ioFailure(path, "write stock file", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return ioFailure(path, "write stock file", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return ioFailure(path, "flush stock file", err)
	}
	if err := f.Close(); err != nil {
		return ioFailure(path, "close stock file", err)
	}
	return nil
}

func (l *LocalFS) CreateDirectory(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return ioFailure(path, "create directory", err)
	}
	return nil
}

func (l *LocalFS) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return ioFailure(path, "remove directory", err)
	}
	return nil
}

func openFailure(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &model.Error{Kind: model.ErrFileUnavailable, Path: path, Message: "file was moved during processing", Err: err}
	}
	return ioFailure(path, "open file", err)
}

func ioFailure(path, op string, err error) error {
	msg := op
	if errors.Is(err, fs.ErrPermission) {
		msg = fmt.Sprintf("%s: missing permissions", op)
	}
	return &model.Error{Kind: model.ErrIOFailure, Path: path, Message: msg, Err: err}
}
