//go:build linux || freebsd

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data. fdatasync is enough here; the rename that
// follows is covered by syncDir.
func syncFile(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}

func syncDir(dir string) error {
	fd, err := unix.Open(dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)
	return unix.Fsync(fd)
}
