package spill

import (
	"fmt"
	"os"

	"github.com/joshuapare/veckit/internal/buf"
)

// regionAlign is the file alignment for claimed regions: the system page
// size, raised to the header page size where pages are smaller. Mapping
// offsets must be page multiples, so region starts and sizes both round
// to it.
var regionAlign = func() int64 {
	ps := int64(os.Getpagesize())
	if ps < HeaderSize {
		ps = HeaderSize
	}
	return ps
}()

// region is one claimed range of the file. view is the caller-visible
// bytes; raw is the fallback backing array and nil on the mapped path.
type region struct {
	view []byte
	raw  []byte
	off  int64
}

// Store owns one spill file: the header page plus bump-allocated regions.
// Claims extend the file and never move earlier regions; released regions
// are unmapped but their file range is not reused. Not thread-safe.
type Store struct {
	f         *os.File
	path      string
	keep      bool
	label     string
	elemSize  int
	elemAlign int

	header  *region
	regions []*region
	offset  int64 // next claim offset, also the file size
	claims  int
	live    int64
	closed  bool
}

// Options configures Create.
type Options struct {
	// Dir is the directory for the scratch file. Empty means the OS
	// temp directory.
	Dir string

	// Label is a diagnostic name stored in the header, at most 128
	// bytes once encoded.
	Label string

	// ElemSize and ElemAlign fix the element geometry every arena on
	// this store must match. ElemAlign must be a power of two no larger
	// than the header page.
	ElemSize  int
	ElemAlign int

	// Keep leaves the file in place on Close instead of removing it.
	Keep bool
}

// Create makes a new spill file with its header page written and synced.
func Create(opts Options) (*Store, error) {
	if opts.ElemSize < 1 {
		return nil, fmt.Errorf("spill: element size %d", opts.ElemSize)
	}
	if opts.ElemAlign < 1 || opts.ElemAlign&(opts.ElemAlign-1) != 0 || opts.ElemAlign > HeaderSize {
		return nil, fmt.Errorf("spill: element alignment %d", opts.ElemAlign)
	}

	f, err := os.CreateTemp(opts.Dir, "veckit-spill-*.vspl")
	if err != nil {
		return nil, fmt.Errorf("spill: create scratch file: %w", err)
	}
	s := &Store{
		f:         f,
		path:      f.Name(),
		keep:      opts.Keep,
		label:     opts.Label,
		elemSize:  opts.ElemSize,
		elemAlign: opts.ElemAlign,
		offset:    HeaderSize,
	}

	fail := func(err error) (*Store, error) {
		_ = f.Close()
		_ = os.Remove(s.path)
		return nil, err
	}
	if err := f.Truncate(HeaderSize); err != nil {
		return fail(fmt.Errorf("spill: size header page: %w", err))
	}
	view, raw, err := claimView(f, 0, HeaderSize)
	if err != nil {
		return fail(fmt.Errorf("spill: map header page: %w", err))
	}
	s.header = &region{view: view, raw: raw, off: 0}
	if err := s.writeHeader(); err != nil {
		_ = dropView(s.header)
		return fail(err)
	}
	if err := syncView(f, s.header); err != nil {
		_ = dropView(s.header)
		return fail(fmt.Errorf("spill: write header page: %w", err))
	}
	return s, nil
}

// Claim appends a region of at least n bytes and returns its zero-filled
// view. The view stays valid until Unclaim or Close, regardless of later
// claims.
func (s *Store) Claim(n int) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if n <= 0 {
		return nil, fmt.Errorf("spill: claim of %d bytes", n)
	}
	size, err := alignCeil(int64(n), regionAlign)
	if err != nil {
		return nil, err
	}
	end, ok := buf.AddOverflowSafe(int(s.offset), int(size))
	if !ok {
		return nil, fmt.Errorf("spill: claim of %d bytes past offset %d overflows", n, s.offset)
	}

	if err := s.f.Truncate(int64(end)); err != nil {
		return nil, fmt.Errorf("spill: grow file to %d bytes: %w", end, err)
	}
	view, raw, err := claimView(s.f, s.offset, size)
	if err != nil {
		return nil, fmt.Errorf("spill: map %d bytes at %#x: %w", size, s.offset, err)
	}

	r := &region{view: view, raw: raw, off: s.offset}
	s.regions = append(s.regions, r)
	s.offset = int64(end)
	s.claims++
	s.live += size
	if err := s.writeHeader(); err != nil {
		return nil, err
	}
	return view, nil
}

// Unclaim releases a view obtained from Claim. The file range is not
// reused; space comes back only when the store closes. Panics on a view
// this store did not hand out.
func (s *Store) Unclaim(view []byte) {
	if len(view) == 0 || s.closed {
		return
	}
	s.release(&view[0])
}

// Flush pushes the header and every live region to stable storage.
func (s *Store) Flush() error {
	if s.closed {
		return ErrClosed
	}
	if err := s.writeHeader(); err != nil {
		return err
	}
	if err := syncView(s.f, s.header); err != nil {
		return fmt.Errorf("spill: sync header: %w", err)
	}
	for _, r := range s.regions {
		if err := syncView(s.f, r); err != nil {
			return fmt.Errorf("spill: sync region at %#x: %w", r.off, err)
		}
	}
	if err := syncFile(s.f); err != nil {
		return fmt.Errorf("spill: sync file: %w", err)
	}
	return nil
}

// Close unmaps every region, closes the file and removes it unless the
// store was created with Keep. Idempotent. Views handed out by Claim are
// invalid afterwards.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if s.keep && s.header != nil {
		// Final counters and region bytes for whoever inspects the file
		// later. The fallback path reaches the file only through syncView.
		_ = s.writeHeader()
		_ = syncView(s.f, s.header)
		for _, r := range s.regions {
			_ = syncView(s.f, r)
		}
	}
	for _, r := range s.regions {
		if err := dropView(r); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.regions = nil
	s.live = 0
	if s.header != nil {
		if err := dropView(s.header); err != nil && firstErr == nil {
			firstErr = err
		}
		s.header = nil
	}
	if err := s.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if !s.keep {
		_ = os.Remove(s.path)
	}
	if firstErr != nil {
		return fmt.Errorf("spill: close %s: %w", s.path, firstErr)
	}
	return nil
}

// Path returns the spill file's location.
func (s *Store) Path() string { return s.path }

// Label returns the diagnostic name stored in the header.
func (s *Store) Label() string { return s.label }

// ElemSize returns the element size arenas must match, in bytes.
func (s *Store) ElemSize() int { return s.elemSize }

// ElemAlign returns the element alignment arenas must match, in bytes.
func (s *Store) ElemAlign() int { return s.elemAlign }

// Size returns the current file size in bytes, header included.
func (s *Store) Size() int64 { return s.offset }

// Live returns the bytes held by live regions, alignment padding
// included.
func (s *Store) Live() int64 { return s.live }

// Regions returns the number of live regions.
func (s *Store) Regions() int { return len(s.regions) }

// ---- internals ----

// writeHeader refreshes the header page view with current counters.
func (s *Store) writeHeader() error {
	return encodeHeader(s.header.view, Header{
		Version:   FormatVersion,
		ElemSize:  s.elemSize,
		ElemAlign: s.elemAlign,
		Regions:   s.claims,
		DataBytes: s.offset - HeaderSize,
		Label:     s.label,
	})
}

// release drops the live region whose view starts at base.
func (s *Store) release(base *byte) {
	for i, r := range s.regions {
		if len(r.view) > 0 && &r.view[0] == base {
			n := int64(len(r.view))
			_ = dropView(r)
			s.live -= n
			s.regions = append(s.regions[:i], s.regions[i+1:]...)
			return
		}
	}
	panic("spill: release of storage this store does not own")
}

// alignCeil rounds n up to a multiple of align (a power of two).
func alignCeil(n, align int64) (int64, error) {
	sum, ok := buf.AddOverflowSafe(int(n), int(align-1))
	if !ok {
		return 0, fmt.Errorf("spill: size %d overflows alignment", n)
	}
	return int64(sum) &^ (align - 1), nil
}
