//go:build windows

package writer

import (
	"os"

	"golang.org/x/sys/windows"
)

func syncFile(f *os.File, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}

// syncDir is a no-op: directory handles cannot be flushed on Windows and
// MoveFileEx already commits the rename.
func syncDir(string) error { return nil }
