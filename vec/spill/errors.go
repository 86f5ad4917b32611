package spill

import "errors"

var (
	// ErrPointerElem reports an element type the garbage collector would
	// need to scan. Spill storage is invisible to the collector, so such
	// types cannot live there.
	ErrPointerElem = errors.New("spill: element type contains pointers")

	// ErrClosed reports use of a store after Close.
	ErrClosed = errors.New("spill: store is closed")

	// ErrBadHeader reports a file that does not carry a spill header.
	ErrBadHeader = errors.New("spill: not a spill file")

	// ErrChecksum reports a spill header that fails its checksum.
	ErrChecksum = errors.New("spill: header checksum mismatch")
)
