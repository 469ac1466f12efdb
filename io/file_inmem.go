package io

import (
	"fmt"
	"io"
	"os"
)

var _ ByteSource = (*InMemory)(nil)

// NewInMemory wraps data as a ByteSource. The slice is used directly, not
// copied, so writes through the source are visible to the caller.
func NewInMemory(data []byte, readOnly bool) *InMemory {
	return &InMemory{data: data, readOnly: readOnly}
}

// InMemory implements an anonymous ByteSource over a byte slice. It cannot be
// flushed since there is nothing to flush to.
type InMemory struct {
	data     []byte
	closed   bool
	readOnly bool
	stats    Stats
}

// ReadAt copies data at given offset into 'p'. Returns io.EOF if fewer than
// len(p) bytes were available.
func (mem *InMemory) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	} else if mem.closed {
		return 0, os.ErrClosed
	} else if off < 0 {
		return 0, &BoundsError{Op: "readat", Offset: off, Count: len(p), Size: mem.Len()}
	} else if off >= mem.Len() {
		return 0, io.EOF
	}

	mem.stats.Reads++
	n := copy(p, mem.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ReadRange returns a copy of [start, end) clipped to the buffer.
func (mem *InMemory) ReadRange(start, end int64) []byte {
	start, end = clip(start, end, mem.Len())
	mem.stats.Reads++

	out := make([]byte, end-start)
	copy(out, mem.data[start:end])
	return out
}

// WriteAt overwrites the buffer starting at 'off'. The buffer never grows.
func (mem *InMemory) WriteAt(p []byte, off int64) (int, error) {
	if err := mem.canMutate(); err != nil {
		return 0, err
	} else if err := checkWrite("writeat", p, off, mem.Len()); err != nil {
		return 0, err
	}

	mem.stats.Writes++
	return copy(mem.data[off:], p), nil
}

// Flush always fails with ErrNotSupported.
func (mem *InMemory) Flush() error {
	return fmt.Errorf("flush in-memory source: %w", ErrNotSupported)
}

// Len returns the size of the buffer. Always 0 after close.
func (mem *InMemory) Len() int64 { return int64(len(mem.data)) }

// Name returns empty string since in-memory sources are anonymous.
func (mem *InMemory) Name() string { return "" }

// Stats returns i/o stats collected by this source.
func (mem *InMemory) Stats() Stats { return mem.stats }

// Close releases the buffer. Other operations are invalid after close.
func (mem *InMemory) Close() error {
	mem.closed = true
	mem.data = nil
	return nil
}

func (mem *InMemory) String() string {
	return fmt.Sprintf("InMemory{size=%d, readOnly=%t, closed=%t}",
		len(mem.data), mem.readOnly, mem.closed)
}

func (mem *InMemory) canMutate() error {
	if mem.closed {
		return os.ErrClosed
	} else if mem.readOnly {
		return ErrReadOnly
	}
	return nil
}
