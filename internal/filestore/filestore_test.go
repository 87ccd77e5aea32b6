package filestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPredict/internal/model"
)

func collectLines(t *testing.T, fsys FileSystem, path string) ([]string, error) {
	t.Helper()
	var lines []string
	for line, err := range fsys.ReadLines(path) {
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func TestLocalFS_ReadWriteLines(t *testing.T) {
	dir := t.TempDir()
	fsys := NewLocalFS()
	path := filepath.Join(dir, "A.csv")

	require.NoError(t, fsys.WriteLines(path, []string{"A,01-01-2024,1", "A,02-01-2024,2"}))
	assert.True(t, fsys.FileExists(path))

	size, err := fsys.FileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("A,01-01-2024,1\nA,02-01-2024,2\n")), size)

	lines, err := collectLines(t, fsys, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A,01-01-2024,1", "A,02-01-2024,2"}, lines)
}

func TestLocalFS_CRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "B.csv")
	require.NoError(t, os.WriteFile(path, []byte("B,01-01-2024,1\r\nB,02-01-2024,2\r\n"), 0644))

	lines, err := collectLines(t, NewLocalFS(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"B,01-01-2024,1", "B,02-01-2024,2"}, lines)
}

func TestLocalFS_MissingFile(t *testing.T) {
	fsys := NewLocalFS()
	path := filepath.Join(t.TempDir(), "gone.csv")

	assert.False(t, fsys.FileExists(path))
	_, err := fsys.FileSize(path)
	assert.True(t, errors.Is(err, model.ErrFileUnavailable))

	_, err = collectLines(t, fsys, path)
	assert.True(t, errors.Is(err, model.ErrFileUnavailable))
}

func TestLocalFS_EarlyStopClosesCleanly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "C.csv")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n3\n4\n"), 0644))

	var got []string
	for line, err := range NewLocalFS().ReadLines(path) {
		require.NoError(t, err)
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"1", "2"}, got)
}

func TestLocalFS_ListCSVFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "notes.txt", "C.CSV"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	names, err := NewLocalFS().ListCSVFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"C.CSV", "a.csv", "b.csv"}, names)
}

func TestLocalFS_ListDirectoriesMissingRoot(t *testing.T) {
	_, err := NewLocalFS().ListDirectories(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, model.ErrIOFailure))
}

func TestDiscoverExchanges_Local(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "LSE"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "NYSE"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "EMPTY"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "LSE", "FLTR.csv"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "NYSE", "ASH.csv"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.csv"), nil, 0644))

	exchanges, err := DiscoverExchanges(NewLocalFS(), root)
	require.NoError(t, err)
	require.Len(t, exchanges, 3)
	assert.Equal(t, "", exchanges[0].Name)
	assert.Equal(t, []string{"top.csv"}, exchanges[0].FileNames)
	assert.Equal(t, "LSE", exchanges[1].Name)
	assert.Equal(t, "NYSE", exchanges[2].Name)
}

func TestMemoryFS_ReadLinesCountsServed(t *testing.T) {
	m := NewMemoryFS()
	m.AddLines("/in/X.csv", "1", "2", "3")

	for range m.ReadLines("/in/X.csv") {
		break
	}
	assert.Equal(t, 1, m.LinesServed("/in/X.csv"))

	lines, err := collectLines(t, m, "/in/X.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, lines)
	assert.Equal(t, 4, m.LinesServed("/in/X.csv"))
}

func TestMemoryFS_Discovery(t *testing.T) {
	m := NewMemoryFS()
	m.AddDir("/in/EMPTY")
	m.AddLines("/in/NASDAQ/TSLA.csv", "x")
	m.AddLines("/in/NASDAQ/AAPL.csv", "x")
	m.AddLines("/in/NASDAQ/readme.md", "x")

	exchanges, err := DiscoverExchanges(m, "/in")
	require.NoError(t, err)
	require.Len(t, exchanges, 1)
	assert.Equal(t, "NASDAQ", exchanges[0].Name)
	assert.Equal(t, []string{"AAPL.csv", "TSLA.csv"}, exchanges[0].FileNames)
}

func TestPublish(t *testing.T) {
	m := NewMemoryFS()
	m.AddDir("/out")
	manifest := Manifest{
		Folder: "20240101T120000",
		Entries: []Entry{
			{Path: filepath.Join("LSE", "A.csv"), Lines: []string{"A,01-01-2024,1"}},
			{Path: filepath.Join("LSE", "B.csv"), Lines: []string{"B,01-01-2024,2"}},
			{Path: "C.csv", Lines: []string{"C,01-01-2024,3"}},
		},
	}
	require.NoError(t, Publish(m, "/out", manifest))

	c, ok := m.Content("/out/20240101T120000/LSE/A.csv")
	require.True(t, ok)
	assert.Equal(t, "A,01-01-2024,1\n", c)
	_, ok = m.Content("/out/20240101T120000/C.csv")
	assert.True(t, ok)

	err := Publish(m, "/out", manifest)
	assert.True(t, errors.Is(err, model.ErrDirectoryConflict))
}

func TestPublish_Failures(t *testing.T) {
	m := NewMemoryFS()
	err := Publish(m, "/missing", Manifest{Folder: "f"})
	assert.True(t, errors.Is(err, model.ErrIOFailure))

	m.AddDir("/out")
	m.FailWrites = true
	err = Publish(m, "/out", Manifest{Folder: "f", Entries: []Entry{{Path: "a.csv"}}})
	assert.True(t, errors.Is(err, model.ErrIOFailure))
	assert.False(t, m.DirExists("/out/f"))
}

// flakyWrites fails the nth WriteLines call.
type flakyWrites struct {
	*MemoryFS
	failAt int
	writes int
}

func (f *flakyWrites) WriteLines(path string, lines []string) error {
	f.writes++
	if f.writes == f.failAt {
		return &model.Error{Kind: model.ErrIOFailure, Path: path, Message: "write stock file: disk full"}
	}
	return f.MemoryFS.WriteLines(path, lines)
}

func TestPublish_PartialWriteRemovesBatch(t *testing.T) {
	m := NewMemoryFS()
	m.AddDir("/out")
	m.AddLines("/out/older/X.csv", "X,01-01-2024,1")
	fsys := &flakyWrites{MemoryFS: m, failAt: 2}
	manifest := Manifest{
		Folder: "B",
		Entries: []Entry{
			{Path: filepath.Join("LSE", "A.csv"), Lines: []string{"A,01-01-2024,1"}},
			{Path: filepath.Join("LSE", "B.csv"), Lines: []string{"B,01-01-2024,2"}},
		},
	}

	err := Publish(fsys, "/out", manifest)
	require.True(t, errors.Is(err, model.ErrIOFailure))
	assert.False(t, m.DirExists("/out/B"))
	assert.False(t, m.FileExists("/out/B/LSE/A.csv"))
	assert.True(t, m.DirExists("/out"))
	assert.True(t, m.FileExists("/out/older/X.csv"))

	fsys.failAt = 0
	require.NoError(t, Publish(fsys, "/out", manifest))
	assert.True(t, m.FileExists("/out/B/LSE/B.csv"))
}

func TestLocalFS_RemoveAll(t *testing.T) {
	out := t.TempDir()
	fsys := NewLocalFS()
	batch := filepath.Join(out, "batch")
	require.NoError(t, fsys.CreateDirectory(filepath.Join(batch, "LSE")))
	require.NoError(t, fsys.WriteLines(filepath.Join(batch, "LSE", "A.csv"), []string{"A,01-01-2024,1"}))

	require.NoError(t, fsys.RemoveAll(batch))
	assert.False(t, fsys.DirExists(batch))
	assert.True(t, fsys.DirExists(out))
	assert.NoError(t, fsys.RemoveAll(filepath.Join(out, "never-created")))
}

func TestPublish_Local(t *testing.T) {
	out := t.TempDir()
	fsys := NewLocalFS()
	manifest := Manifest{Folder: "batch", Entries: []Entry{{Path: filepath.Join("NYSE", "ASH.csv"), Lines: []string{"ASH,01-01-2024,1.5"}}}}
	require.NoError(t, Publish(fsys, out, manifest))

	data, err := os.ReadFile(filepath.Join(out, "batch", "NYSE", "ASH.csv"))
	require.NoError(t, err)
	assert.Equal(t, "ASH,01-01-2024,1.5\n", string(data))
}
