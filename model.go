// Package hexview provides paged, cursor based viewing and little-endian
// integer decoding over memory mapped files and in-memory buffers.
package hexview

import (
	"errors"
	"fmt"

	"github.com/spy16/hexview/io"
)

// ErrNoGeometry is returned by operations that need page geometry when the
// column count is zero.
var ErrNoGeometry = errors.New("page geometry not set")

// Open memory maps the named file and returns a Model over it. The file must
// exist. The returned model must be closed to release the mapping.
func Open(filePath string, opts *Options) (*Model, error) {
	o := opts.withDefaults()

	src, err := io.OpenMapped(filePath, o.ReadOnly, o.Lock)
	if err != nil {
		return nil, err
	}
	o.Log("opened '%s' (size=%d, readOnly=%t)", filePath, src.Len(), o.ReadOnly)

	return newModel(src, o), nil
}

// FromBytes returns a Model over an in-memory buffer. The buffer is not
// copied.
func FromBytes(data []byte, opts *Options) *Model {
	o := opts.withDefaults()
	return newModel(io.NewInMemory(data, o.ReadOnly), o)
}

// New returns a Model that takes ownership of an already open source.
// Closing the model closes the source.
func New(src io.ByteSource, opts *Options) *Model {
	return newModel(src, opts.withDefaults())
}

func newModel(src io.ByteSource, opts Options) *Model {
	return &Model{src: src, log: opts.Log}
}

// Model provides paged, cursor based navigation and fixed-width decoding
// over a ByteSource. Model is NOT safe for concurrent use.
type Model struct {
	src io.ByteSource
	log func(msg string, args ...interface{})

	offset     int64
	prevOffset int64
	rows, cols int
	closed     bool
}

// Move describes the result of a navigation call. From is the cursor before
// the call and To is the cursor after it. When Moved is false the target
// was out of bounds and the cursor did not change.
type Move struct {
	From  int64
	To    int64
	Moved bool
}

// SetGeometry records the page dimensions. The cursor is not moved and the
// page is allowed to extend past the end of data. Negative values are
// treated as zero.
func (m *Model) SetGeometry(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	m.rows, m.cols = rows, cols
}

// Geometry returns the current page dimensions.
func (m *Model) Geometry() (rows, cols int) { return m.rows, m.cols }

// PageSpan returns the number of bytes in one page.
func (m *Model) PageSpan() int64 { return int64(m.rows) * int64(m.cols) }

// Slide moves the cursor by delta bytes if the result stays in bounds.
func (m *Model) Slide(delta int64) Move {
	return m.moveTo(m.offset + delta)
}

// SlideLines moves the cursor by whole display lines.
func (m *Model) SlideLines(factor int) Move {
	return m.Slide(int64(factor) * int64(m.cols))
}

// SlidePages moves the cursor by whole display pages.
func (m *Model) SlidePages(factor int) Move {
	return m.Slide(int64(factor) * m.PageSpan())
}

// GoTo moves the cursor to off if it is in bounds.
func (m *Model) GoTo(off int64) Move { return m.moveTo(off) }

// GoToFirstPage moves the cursor to 0 unconditionally.
func (m *Model) GoToFirstPage() Move { return m.set(0) }

// GoToLastPage moves the cursor so that the page ends exactly at the end of
// data. No-op if the page is larger than the data.
func (m *Model) GoToLastPage() Move {
	span := m.PageSpan()
	if span > m.src.Len() {
		return m.stay()
	}
	return m.moveTo(m.src.Len() - span)
}

// IsOffsetVisible returns true if off lies within the current page. The
// upper bound is inclusive.
func (m *Model) IsOffsetVisible(off int64) bool {
	return off >= m.offset && off <= m.offset+m.PageSpan()
}

// CoordinatesInPage translates off into (row, column) relative to the
// cursor.
func (m *Model) CoordinatesInPage(off int64) (row, col int, err error) {
	if m.cols == 0 {
		return 0, 0, ErrNoGeometry
	}

	rel := off - m.offset
	cols := int64(m.cols)
	return int(floorDiv(rel, cols)), int(rel - floorDiv(rel, cols)*cols), nil
}

// PageStartOffset returns the offset at which the page-th page from the
// cursor starts. The result is not bounds checked.
func (m *Model) PageStartOffset(page int) int64 {
	return m.offset + int64(page)*m.PageSpan()
}

// CurrentOffset returns the cursor.
func (m *Model) CurrentOffset() int64 { return m.offset }

// PreviousOffset returns the cursor value before the most recent move.
func (m *Model) PreviousOffset() int64 { return m.prevOffset }

// Len returns the size of the underlying source.
func (m *Model) Len() int64 { return m.src.Len() }

// SourceName returns the origin of the underlying source.
func (m *Model) SourceName() string { return m.src.Name() }

// ReadBytes returns a copy of [start, end) clipped to the source.
func (m *Model) ReadBytes(start, end int64) []byte {
	return m.src.ReadRange(start, end)
}

// Write overwrites bytes at off. The write must fit within the source.
func (m *Model) Write(off int64, p []byte) error {
	if _, err := m.src.WriteAt(p, off); err != nil {
		m.log("write of %d bytes at %d rejected: %v", len(p), off, err)
		return err
	}
	return nil
}

// Flush persists pending writes to the backing file.
func (m *Model) Flush() error {
	if err := m.src.Flush(); err != nil {
		return fmt.Errorf("flush '%s': %w", m.src.Name(), err)
	}
	m.log("flushed '%s'", m.src.Name())
	return nil
}

// Stats returns i/o stats of the source, if it collects them.
func (m *Model) Stats() io.Stats {
	if s, ok := m.src.(interface{ Stats() io.Stats }); ok {
		return s.Stats()
	}
	return io.Stats{}
}

// Close closes the underlying source. Unflushed writes are lost.
func (m *Model) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.log("closing '%s'", m.src.Name())
	return m.src.Close()
}

func (m *Model) String() string {
	return fmt.Sprintf(
		"Model{source='%s', size=%d, offset=%d, rows=%d, cols=%d}",
		m.src.Name(), m.src.Len(), m.offset, m.rows, m.cols,
	)
}

func (m *Model) inLimits(off int64) bool {
	return off >= 0 && off < m.src.Len()
}

func (m *Model) moveTo(off int64) Move {
	if !m.inLimits(off) {
		return m.stay()
	}
	return m.set(off)
}

func (m *Model) set(off int64) Move {
	m.prevOffset = m.offset
	m.offset = off
	return Move{From: m.prevOffset, To: off, Moved: true}
}

func (m *Model) stay() Move {
	return Move{From: m.offset, To: m.offset}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
