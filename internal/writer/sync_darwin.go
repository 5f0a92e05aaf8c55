//go:build darwin

package writer

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile uses F_FULLFSYNC when full is set so the drive cache is flushed
// too; plain fsync otherwise.
func syncFile(f *os.File, full bool) error {
	if full {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}

func syncDir(dir string) error {
	fd, err := unix.Open(dir, unix.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer unix.Close(fd)
	return unix.Fsync(fd)
}
