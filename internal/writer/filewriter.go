// Package writer provides sinks for persisted registry images.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives a complete serialized registry image.
type Sink interface {
	WriteRegistry(buf []byte) error
}

// FileWriter replaces a file atomically: the image goes to a temp file in
// the same directory, is synced, then renamed over Path.
type FileWriter struct {
	Path string

	// Perm is applied to the temp file before rename. Zero means 0o600.
	Perm os.FileMode

	// FullSync requests the strongest flush the platform offers
	// (F_FULLFSYNC on macOS). Ignored elsewhere.
	FullSync bool
}

var _ Sink = (*FileWriter)(nil)

// WriteRegistry writes buf to the configured path atomically.
func (w *FileWriter) WriteRegistry(buf []byte) error {
	dir := filepath.Dir(w.Path)
	tmpFile, err := os.CreateTemp(dir, ".regapi-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	perm := w.Perm
	if perm == 0 {
		perm = 0o600
	}
	if chmodErr := tmpFile.Chmod(perm); chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}
	if _, writeErr := tmpFile.Write(buf); writeErr != nil {
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if syncErr := syncFile(tmpFile, w.FullSync); syncErr != nil {
		return fmt.Errorf("sync temp file: %w", syncErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	tmpFile = nil

	if renameErr := os.Rename(tmpPath, w.Path); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", renameErr)
	}
	return syncDir(dir)
}
