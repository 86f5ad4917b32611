//go:build darwin

package spill

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data. macOS has no fdatasync; plain fsync is the
// closest durable operation short of F_FULLFSYNC.
func syncFile(f *os.File) error {
	return unix.Fsync(int(f.Fd()))
}
