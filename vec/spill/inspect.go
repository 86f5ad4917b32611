package spill

import (
	"fmt"
	"io"
	"os"
)

// Info describes a spill file on disk.
type Info struct {
	Header

	// Path is the file that was inspected.
	Path string

	// FileSize is the file's size in bytes, header page included.
	FileSize int64
}

// Inspect reads and validates the header of a spill file without
// mapping it. Useful on files kept past Close.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("spill: inspect %s: %w", path, err)
	}
	defer f.Close()

	page := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, page); err != nil {
		return Info{}, fmt.Errorf("spill: inspect %s: %w", path, err)
	}
	h, err := decodeHeader(page)
	if err != nil {
		return Info{}, fmt.Errorf("spill: inspect %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		return Info{}, fmt.Errorf("spill: inspect %s: %w", path, err)
	}
	if HeaderSize+h.DataBytes > st.Size() {
		return Info{}, fmt.Errorf("spill: inspect %s: header claims %d data bytes but file holds %d",
			path, h.DataBytes, st.Size())
	}
	return Info{Header: h, Path: path, FileSize: st.Size()}, nil
}
