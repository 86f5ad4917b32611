//go:build !linux && !darwin

package spill

import (
	"os"
	"unsafe"
)

// claimView allocates heap backing on platforms without the mmap path.
// The file range still exists; syncView writes the bytes out. The view
// is cut from raw at a regionAlign boundary so element alignment holds.
func claimView(_ *os.File, _, size int64) (view, raw []byte, err error) {
	raw = make([]byte, size+regionAlign)
	lead := int64(0)
	if rem := int64(uintptr(unsafe.Pointer(&raw[0]))) % regionAlign; rem != 0 {
		lead = regionAlign - rem
	}
	return raw[lead : lead+size : lead+size], raw, nil
}

// dropView drops the heap backing.
func dropView(r *region) error {
	r.view = nil
	r.raw = nil
	return nil
}

// syncView writes the region's bytes at its file offset.
func syncView(f *os.File, r *region) error {
	_, err := f.WriteAt(r.view, r.off)
	return err
}

// syncFile flushes file data and metadata.
func syncFile(f *os.File) error {
	return f.Sync()
}
