package io

import "fmt"

// BoundsError describes a rejected access and unwraps to ErrOutOfBounds.
type BoundsError struct {
	Op     string
	Offset int64
	Count  int
	Size   int64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %d bytes at offset %d (size=%d): %v",
		e.Op, e.Count, e.Offset, e.Size, ErrOutOfBounds)
}

// Unwrap allows errors.Is(err, ErrOutOfBounds).
func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }
