// Package io provides random access byte sources backed by memory mapped
// files or in-memory buffers.
package io

import (
	"errors"
	"io"
)

var (
	// ErrOutOfBounds is returned when a write would touch bytes outside
	// [0, Len()). Sources never grow.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrNotSupported is returned when the source variant does not implement
	// the operation (e.g., Flush on an in-memory source).
	ErrNotSupported = errors.New("not supported")

	// ErrReadOnly is returned when a write operation is attempted on a
	// read-only source.
	ErrReadOnly = errors.New("read-only")
)

// ByteSource represents a fixed-length, randomly addressable and mutable
// byte buffer. ByteSource is NOT safe for concurrent use.
type ByteSource interface {
	io.ReaderAt
	io.WriterAt
	io.Closer

	// Name returns the origin of the data. Empty for anonymous in-memory
	// sources.
	Name() string

	// Len returns the number of addressable bytes. Len never changes while
	// the source is open.
	Len() int64

	// ReadRange returns a copy of the bytes in [start, end) clipped to the
	// source content. It never fails.
	ReadRange(start, end int64) []byte

	// Flush persists the current content to the backing resource.
	Flush() error
}

// clip clamps [start, end) into [0, size).
func clip(start, end, size int64) (int64, int64) {
	if start < 0 {
		start = 0
	}
	if end > size {
		end = size
	}
	if end < 0 {
		end = 0
	}
	if start > end {
		start = end
	}
	return start, end
}

func checkWrite(op string, p []byte, off, size int64) error {
	if off < 0 || off > size-int64(len(p)) {
		return &BoundsError{Op: op, Offset: off, Count: len(p), Size: size}
	}
	return nil
}
