package hexview

import (
	"encoding/binary"
	"fmt"
)

// ReadU8 decodes the byte at off. ok is false if off is out of bounds.
func (m *Model) ReadU8(off int64) (v uint8, ok bool) {
	d, ok := m.ReadUint(off, 1)
	return uint8(d), ok
}

// ReadU16 decodes a little-endian uint16 at off. ok is false if fewer than
// 2 bytes remain.
func (m *Model) ReadU16(off int64) (v uint16, ok bool) {
	d, ok := m.ReadUint(off, 2)
	return uint16(d), ok
}

// ReadU32 decodes a little-endian uint32 at off. ok is false if fewer than
// 4 bytes remain.
func (m *Model) ReadU32(off int64) (v uint32, ok bool) {
	d, ok := m.ReadUint(off, 4)
	return uint32(d), ok
}

// ReadU64 decodes a little-endian uint64 at off. ok is false if fewer than
// 8 bytes remain.
func (m *Model) ReadU64(off int64) (v uint64, ok bool) {
	return m.ReadUint(off, 8)
}

// ReadUint decodes a little-endian unsigned integer of the given byte width
// (1, 2, 4 or 8) at off. ok is false if the width is unsupported or the
// read would go past the end of data.
func (m *Model) ReadUint(off int64, width int) (uint64, bool) {
	if !validWidth(width) || off < 0 || off > m.src.Len()-int64(width) {
		return 0, false
	}

	b := m.src.ReadRange(off, off+int64(width))
	switch width {
	case 1:
		return uint64(b[0]), true
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), true
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), true
	default:
		return binary.LittleEndian.Uint64(b), true
	}
}

// ReadHex decodes like ReadUint and formats the value as zero-padded
// upper-case hex with 2*width digits.
func (m *Model) ReadHex(off int64, width int) (string, bool) {
	v, ok := m.ReadUint(off, width)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%0*X", 2*width, v), true
}

// ReadByteAsChar returns the raw byte at off.
func (m *Model) ReadByteAsChar(off int64) (byte, bool) {
	if !m.inLimits(off) {
		return 0, false
	}
	return m.src.ReadRange(off, off+1)[0], true
}

func validWidth(width int) bool {
	switch width {
	case 1, 2, 4, 8:
		return true
	}
	return false
}
