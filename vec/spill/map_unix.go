//go:build linux || darwin

package spill

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// claimView maps size bytes of f at off for shared read/write. off and
// size are already multiples of regionAlign.
func claimView(f *os.File, off, size int64) (view, raw []byte, err error) {
	view, err = syscall.Mmap(int(f.Fd()), off, int(size),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mmap %d bytes at %#x: %w", size, off, err)
	}
	return view, nil, nil
}

// dropView unmaps the region's view.
func dropView(r *region) error {
	if r.view == nil {
		return nil
	}
	err := syscall.Munmap(r.view)
	r.view = nil
	return err
}

// syncView writes the region's pages back to the file. Each view is a
// whole mapping, so the base address is always page-aligned.
func syncView(_ *os.File, r *region) error {
	return unix.Msync(r.view, unix.MS_SYNC)
}
