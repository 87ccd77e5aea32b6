package filestore

import (
	"fmt"
	"log"
	"path/filepath"

	"StockPredict/internal/model"
)

// Publish writes a manifest under outputRoot/manifest.Folder.
// The output root must exist and the batch folder must not.
// All directories are created before the first file is written. If any
// directory or file cannot be written the batch folder is removed again, so
// a failed publish leaves nothing behind.
func Publish(fsys FileSystem, outputRoot string, manifest Manifest) error {
	if !fsys.DirExists(outputRoot) {
		return &model.Error{Kind: model.ErrIOFailure, Path: outputRoot, Message: "output folder doesn't exist"}
	}
	batchDir := filepath.Join(outputRoot, manifest.Folder)
	if fsys.DirExists(batchDir) {
		return &model.Error{
			Kind:    model.ErrDirectoryConflict,
			Path:    batchDir,
			Message: fmt.Sprintf("folder %s already exists in output folder", manifest.Folder),
		}
	}

	seen := make(map[string]bool)
	for _, e := range manifest.Entries {
		dir := filepath.Dir(filepath.Join(batchDir, e.Path))
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := fsys.CreateDirectory(dir); err != nil {
			discard(fsys, batchDir)
			return err
		}
	}

	for _, e := range manifest.Entries {
		if err := fsys.WriteLines(filepath.Join(batchDir, e.Path), e.Lines); err != nil {
			discard(fsys, batchDir)
			return err
		}
	}
	return nil
}

func discard(fsys FileSystem, batchDir string) {
	if err := fsys.RemoveAll(batchDir); err != nil {
		log.Printf("[WARN] could not remove partial batch %s: %v", batchDir, err)
	}
}
