package filestore

import (
	"iter"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"StockPredict/internal/model"
)

// MemoryFS is an in-memory FileSystem for tests and dry runs.
type MemoryFS struct {
	mu          sync.Mutex
	files       map[string]string
	dirs        map[string]bool
	linesServed map[string]int
	// FailWrites makes WriteLines and CreateDirectory fail with an IO failure.
	FailWrites bool
}

// NewMemoryFS creates an empty in-memory FileSystem.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files:       make(map[string]string),
		dirs:        make(map[string]bool),
		linesServed: make(map[string]int),
	}
}

func (m *MemoryFS) Name() string { return "memory" }

// AddFile stores content at path, creating parent directories.
func (m *MemoryFS) AddFile(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.files[path] = content
	m.addDirLocked(filepath.Dir(path))
}

// AddLines stores lines joined by newlines, with a trailing newline.
func (m *MemoryFS) AddLines(path string, lines ...string) {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	m.AddFile(path, content)
}

// AddDir registers an empty directory.
func (m *MemoryFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirLocked(filepath.Clean(path))
}

// RemoveFile deletes path, simulating a file vanishing mid-batch.
func (m *MemoryFS) RemoveFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, filepath.Clean(path))
}

// Content returns the stored content of path.
func (m *MemoryFS) Content(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.files[filepath.Clean(path)]
	return c, ok
}

// LinesServed reports how many lines ReadLines has yielded for path so far.
func (m *MemoryFS) LinesServed(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.linesServed[filepath.Clean(path)]
}

func (m *MemoryFS) addDirLocked(dir string) {
	for {
		m.dirs[dir] = true
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func (m *MemoryFS) ListDirectories(root string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	root = filepath.Clean(root)
	if !m.dirs[root] {
		return nil, &model.Error{Kind: model.ErrIOFailure, Path: root, Message: "base directory does not exist"}
	}
	var dirs []string
	for d := range m.dirs {
		if d == root || strings.HasPrefix(d, root+string(filepath.Separator)) {
			dirs = append(dirs, d)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (m *MemoryFS) ListCSVFiles(dir string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = filepath.Clean(dir)
	if !m.dirs[dir] {
		return nil, &model.Error{Kind: model.ErrIOFailure, Path: dir, Message: "read directory"}
	}
	var names []string
	for p := range m.files {
		if filepath.Dir(p) == dir && isCSV(p) {
			names = append(names, filepath.Base(p))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemoryFS) FileExists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

func (m *MemoryFS) DirExists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirs[filepath.Clean(path)]
}

func (m *MemoryFS) FileSize(path string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.files[filepath.Clean(path)]
	if !ok {
		return 0, &model.Error{Kind: model.ErrFileUnavailable, Path: path, Message: "file was moved during processing"}
	}
	return int64(len(c)), nil
}

func (m *MemoryFS) ReadLines(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		clean := filepath.Clean(path)
		content, ok := m.Content(clean)
		if !ok {
			yield("", &model.Error{Kind: model.ErrFileUnavailable, Path: path, Message: "file was moved during processing"})
			return
		}
		if content == "" {
			return
		}
		for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
			m.mu.Lock()
			m.linesServed[clean]++
			m.mu.Unlock()
			if !yield(strings.TrimSuffix(line, "\r"), nil) {
				return
			}
		}
	}
}

func (m *MemoryFS) WriteLines(path string, lines []string) error {
	if m.FailWrites {
		return &model.Error{Kind: model.ErrIOFailure, Path: path, Message: "create stock file: missing permissions"}
	}
	m.mu.Lock()
	dirOK := m.dirs[filepath.Dir(filepath.Clean(path))]
	m.mu.Unlock()
	if !dirOK {
		return &model.Error{Kind: model.ErrIOFailure, Path: path, Message: "create stock file: directory path is invalid"}
	}
	m.AddLines(path, lines...)
	return nil
}

func (m *MemoryFS) CreateDirectory(path string) error {
	if m.FailWrites {
		return &model.Error{Kind: model.ErrIOFailure, Path: path, Message: "create directory: missing permissions"}
	}
	m.AddDir(path)
	return nil
}

func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	prefix := path + string(filepath.Separator)
	for p := range m.files {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.files, p)
		}
	}
	for d := range m.dirs {
		if d == path || strings.HasPrefix(d, prefix) {
			delete(m.dirs, d)
		}
	}
	return nil
}
