package io

import "fmt"

// Stats represents I/O statistics collected by a source.
type Stats struct {
	Reads   int
	Writes  int
	Flushes int
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"Stats{reads=%d, writes=%d, flushes=%d}",
		s.Reads, s.Writes, s.Flushes,
	)
}
