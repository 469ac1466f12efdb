package hexview

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spy16/hexview/io"
)

func tempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.bin")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestOpen_FlushAndReopen(t *testing.T) {
	t.Parallel()

	path := tempFile(t, []byte{0, 0, 0, 0, 0, 0, 0, 0})

	var logged []string
	opts := &Options{Log: func(msg string, args ...interface{}) {
		logged = append(logged, msg)
	}}

	err := Use(path, opts, func(m *Model) error {
		assert.Equal(t, path, m.SourceName())
		assert.Equal(t, int64(8), m.Len())

		if err := m.Write(2, []byte{0xCA, 0xFE}); err != nil {
			return err
		}
		return m.Flush()
	})
	require.NoError(t, err)
	assert.NotEmpty(t, logged)

	err = Use(path, nil, func(m *Model) error {
		assert.Equal(t, []byte{0xCA, 0xFE}, m.ReadBytes(2, 4))
		v, ok := m.ReadU16(2)
		assert.True(t, ok)
		assert.Equal(t, uint16(0xFECA), v)
		assert.Equal(t, 2, m.Stats().Reads)
		return nil
	})
	require.NoError(t, err)
}

func TestOpen_CloseWithoutFlush(t *testing.T) {
	t.Parallel()

	original := []byte("abcdefgh")
	path := tempFile(t, original)

	m, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, m.Write(0, []byte("ZZZZ")))
	assert.Equal(t, []byte("ZZZZ"), m.ReadBytes(0, 4))
	require.NoError(t, m.Close())

	// without a flush the file keeps its original content.
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestOpen_ReadOnly(t *testing.T) {
	t.Parallel()

	path := tempFile(t, []byte{1, 2, 3})

	err := Use(path, &Options{ReadOnly: true}, func(m *Model) error {
		assert.True(t, errors.Is(m.Write(0, []byte{9}), io.ErrReadOnly))
		assert.True(t, errors.Is(m.Flush(), io.ErrReadOnly))
		return nil
	})
	require.NoError(t, err)
}

func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	called := false
	err := Use(filepath.Join(t.TempDir(), "nope.bin"), nil, func(m *Model) error {
		called = true
		return nil
	})
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, called)
}

func TestUse_ClosesOnError(t *testing.T) {
	t.Parallel()

	path := tempFile(t, []byte{1, 2, 3})
	boom := errors.New("boom")

	var model *Model
	err := Use(path, nil, func(m *Model) error {
		model = m
		return boom
	})
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, "MappedFile{closed=true}", model.src.(*io.MappedFile).String())
}

func TestNew_WrapsSource(t *testing.T) {
	t.Parallel()

	src := io.NewInMemory([]byte{5, 6, 7}, false)
	m := New(src, nil)
	m.SetGeometry(1, 2)

	assert.Equal(t, int64(3), m.Len())
	assert.True(t, m.SlideLines(1).Moved)
	assert.Equal(t, "Model{source='', size=3, offset=2, rows=1, cols=2}", m.String())

	require.NoError(t, m.Close())
	assert.Equal(t, int64(0), src.Len())
}
