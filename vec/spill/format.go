package spill

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/veckit/internal/buf"
)

// FormatVersion is the header layout version this package writes.
const FormatVersion = 1

// HeaderSize is the fixed size of the header page at the start of every
// spill file.
const HeaderSize = 4096

const headerMagic = "VSPL"

// Header page layout, little-endian. The checksum covers the first 508
// bytes and is stored right after them; the rest of the page is reserved
// and zero.
const (
	offMagic     = 0  // 4 bytes
	offVersion   = 4  // u32
	offElemSize  = 8  // u32
	offElemAlign = 12 // u32
	offRegions   = 16 // u32, cumulative regions ever claimed
	offDataBytes = 20 // u64, file bytes past the header page
	offFlags     = 28 // u32
	offLabelLen  = 32 // u16, encoded label bytes
	offLabel     = 34 // label bytes, encoding per flagLabelCompressed

	labelCap = 128

	checksumRegionLen = 508
	checksumOffset    = 508
)

// flagLabelCompressed marks a label stored as Windows-1252 bytes; without
// it the label is UTF-16LE.
const flagLabelCompressed = 0x1

const (
	checksumAllOnes     = 0xFFFFFFFF
	checksumAllOnesSub  = 0xFFFFFFFE
	checksumAllZeros    = 0x00000000
	checksumAllZerosSub = 0x00000001
)

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Header is the decoded form of a spill file's header page.
type Header struct {
	Version   int
	ElemSize  int
	ElemAlign int

	// Regions counts every region ever claimed, including released ones.
	Regions int

	// DataBytes is the region space past the header page, alignment
	// padding included.
	DataBytes int64

	// Label is the diagnostic name given at Create.
	Label string
}

// encodeHeader writes h onto a header page and stamps the checksum.
func encodeHeader(page []byte, h Header) error {
	if len(page) < HeaderSize {
		return fmt.Errorf("spill: header buffer holds %d bytes, need %d", len(page), HeaderSize)
	}
	lbl, compressed, err := encodeLabel(h.Label)
	if err != nil {
		return err
	}
	if len(lbl) > labelCap {
		return fmt.Errorf("spill: label %q encodes to %d bytes, limit %d", h.Label, len(lbl), labelCap)
	}

	clear(page[:HeaderSize])
	copy(page[offMagic:], headerMagic)
	buf.PutU32LE(page, offVersion, uint32(h.Version))
	buf.PutU32LE(page, offElemSize, uint32(h.ElemSize))
	buf.PutU32LE(page, offElemAlign, uint32(h.ElemAlign))
	buf.PutU32LE(page, offRegions, uint32(h.Regions))
	buf.PutU64LE(page, offDataBytes, uint64(h.DataBytes))
	var flags uint32
	if compressed {
		flags |= flagLabelCompressed
	}
	buf.PutU32LE(page, offFlags, flags)
	buf.PutU16LE(page, offLabelLen, uint16(len(lbl)))
	copy(page[offLabel:], lbl)
	stampChecksum(page)
	return nil
}

// decodeHeader validates a header page and returns its fields.
func decodeHeader(page []byte) (Header, error) {
	if len(page) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header truncated at %d bytes", ErrBadHeader, len(page))
	}
	if string(page[offMagic:offMagic+4]) != headerMagic {
		return Header{}, ErrBadHeader
	}
	if got, want := buf.U32LE(page[checksumOffset:]), headerChecksum(page); got != want {
		return Header{}, fmt.Errorf("%w: stored 0x%08X computed 0x%08X", ErrChecksum, got, want)
	}

	h := Header{
		Version:   int(buf.U32LE(page[offVersion:])),
		ElemSize:  int(buf.U32LE(page[offElemSize:])),
		ElemAlign: int(buf.U32LE(page[offElemAlign:])),
		Regions:   int(buf.U32LE(page[offRegions:])),
		DataBytes: int64(buf.U64LE(page[offDataBytes:])),
	}
	if h.Version != FormatVersion {
		return Header{}, fmt.Errorf("spill: unsupported format version %d", h.Version)
	}
	if h.ElemSize < 1 {
		return Header{}, fmt.Errorf("spill: header element size %d", h.ElemSize)
	}
	if h.ElemAlign < 1 || h.ElemAlign&(h.ElemAlign-1) != 0 {
		return Header{}, fmt.Errorf("spill: header element alignment %d", h.ElemAlign)
	}
	if h.DataBytes < 0 {
		return Header{}, fmt.Errorf("spill: header data bytes %d", h.DataBytes)
	}

	n := int(buf.U16LE(page[offLabelLen:]))
	if n > labelCap {
		return Header{}, fmt.Errorf("spill: header label length %d exceeds %d", n, labelCap)
	}
	lbl, ok := buf.Slice(page, offLabel, n)
	if !ok {
		return Header{}, fmt.Errorf("spill: header label spans past the page")
	}
	label, err := decodeLabel(lbl, buf.U32LE(page[offFlags:])&flagLabelCompressed != 0)
	if err != nil {
		return Header{}, err
	}
	h.Label = label
	return h, nil
}

// headerChecksum XORs the checksummed prefix as 127 little-endian dwords.
// Then:
//
//	if xor==0xFFFFFFFF -> 0xFFFFFFFE
//	if xor==0x00000000 -> 0x00000001
func headerChecksum(page []byte) uint32 {
	var xor uint32
	for off := 0; off < checksumRegionLen; off += 4 {
		xor ^= buf.U32LE(page[off:])
	}
	switch xor {
	case checksumAllOnes:
		return checksumAllOnesSub
	case checksumAllZeros:
		return checksumAllZerosSub
	default:
		return xor
	}
}

func stampChecksum(page []byte) {
	buf.PutU32LE(page, checksumOffset, headerChecksum(page))
}

// encodeLabel encodes a label for the header, preferring the compressed
// single-byte form. ASCII needs no transformation; other Latin text goes
// through Windows-1252; everything else falls back to UTF-16LE.
func encodeLabel(label string) ([]byte, bool, error) {
	if label == "" {
		return nil, true, nil
	}
	if isASCII(label) {
		return []byte(label), true, nil
	}
	if enc, err := charmap.Windows1252.NewEncoder().Bytes([]byte(label)); err == nil {
		return enc, true, nil
	}
	enc, err := utf16LE.NewEncoder().Bytes([]byte(label))
	if err != nil {
		return nil, false, fmt.Errorf("spill: label %q is not encodable: %w", label, err)
	}
	return enc, false, nil
}

// decodeLabel reverses encodeLabel given the compression flag.
func decodeLabel(data []byte, compressed bool) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if compressed {
		if asciiBytes(data) {
			return string(data), nil
		}
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("spill: decode header label: %w", err)
		}
		return string(out), nil
	}
	if len(data)%2 != 0 {
		return "", fmt.Errorf("spill: header label has odd length %d", len(data))
	}
	out, err := utf16LE.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("spill: decode header label: %w", err)
	}
	return string(out), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func asciiBytes(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
