package hexview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_ReadUint(t *testing.T) {
	t.Parallel()

	m := FromBytes([]byte{0x10, 0x20, 0x30, 0x40}, nil)

	u8, ok := m.ReadU8(0)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x10), u8)

	u16, ok := m.ReadU16(0)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x2010), u16)

	u32, ok := m.ReadU32(0)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x40302010), u32)

	s, ok := m.ReadHex(0, 4)
	assert.True(t, ok)
	assert.Equal(t, "40302010", s)

	// reads ending exactly at the last byte are allowed for every width.
	u8, ok = m.ReadU8(3)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x40), u8)

	u16, ok = m.ReadU16(2)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x4030), u16)

	_, ok = m.ReadU64(0)
	assert.False(t, ok)
}

func TestModel_ReadU64(t *testing.T) {
	t.Parallel()

	m := FromBytes([]byte{1, 2, 3, 4, 5, 6, 7, 0x88}, nil)

	v, ok := m.ReadU64(0)
	assert.True(t, ok)
	assert.Equal(t, uint64(0x8807060504030201), v)

	s, ok := m.ReadHex(0, 8)
	assert.True(t, ok)
	assert.Equal(t, "8807060504030201", s)
}

func TestModel_ReadAbsent(t *testing.T) {
	t.Parallel()

	m := FromBytes([]byte{0xA, 0xB, 0xC}, nil)

	table := []struct {
		title string
		off   int64
		width int
	}{
		{title: "U32OnShortSource", off: 0, width: 4},
		{title: "U16PastEnd", off: 2, width: 2},
		{title: "U8AtLen", off: 3, width: 1},
		{title: "Negative", off: -1, width: 1},
		{title: "BadWidth", off: 0, width: 3},
		{title: "MaxOffsetU8", off: math.MaxInt64, width: 1},
		{title: "MaxOffsetU16", off: math.MaxInt64, width: 2},
		{title: "NearMaxOffsetU64", off: math.MaxInt64 - 4, width: 8},
	}

	for _, tt := range table {
		t.Run(tt.title, func(t *testing.T) {
			_, ok := m.ReadUint(tt.off, tt.width)
			assert.False(t, ok)

			s, ok := m.ReadHex(tt.off, tt.width)
			assert.False(t, ok)
			assert.Equal(t, "", s)
		})
	}
}

func TestModel_ReadHexPadding(t *testing.T) {
	t.Parallel()

	m := FromBytes([]byte{0x0A, 0x00, 0x00, 0x00}, nil)

	table := map[int]string{
		1: "0A",
		2: "000A",
		4: "0000000A",
	}

	for width, want := range table {
		got, ok := m.ReadHex(0, width)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestModel_ReadByteAsChar(t *testing.T) {
	t.Parallel()

	m := FromBytes([]byte("hi"), nil)

	c, ok := m.ReadByteAsChar(1)
	assert.True(t, ok)
	assert.Equal(t, byte('i'), c)

	_, ok = m.ReadByteAsChar(2)
	assert.False(t, ok)

	_, ok = m.ReadByteAsChar(-1)
	assert.False(t, ok)
}

func TestModel_DecodeIgnoresCursor(t *testing.T) {
	t.Parallel()

	m := FromBytes([]byte{1, 2, 3, 4}, nil)
	m.GoTo(3)

	v, ok := m.ReadU16(0)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x0201), v)
}
