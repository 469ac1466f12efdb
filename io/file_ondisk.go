package io

import (
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

var _ ByteSource = (*MappedFile)(nil)

// OpenMapped opens the named file and memory maps its entire content with
// copy-on-write semantics. Writes through the returned source are visible to
// subsequent reads but reach the file only when Flush is called. The file
// must exist. If lock is true, the mapping is pinned into memory on a
// best-effort basis.
func OpenMapped(filePath string, readOnly bool, lock bool) (*MappedFile, error) {
	mmapFlag := mmap.COPY
	flag := os.O_RDWR
	if readOnly {
		mmapFlag = mmap.RDONLY
		flag = os.O_RDONLY
	}

	fh, err := os.OpenFile(filePath, flag, 0)
	if err != nil {
		return nil, err
	}

	f := &MappedFile{
		fh:       fh,
		path:     filePath,
		readOnly: readOnly,
		mmapFlag: mmapFlag,
	}

	fi, err := fh.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	f.size = fi.Size()

	if err := f.mmap(lock); err != nil {
		_ = f.Close()
		return nil, &os.PathError{Op: "mmap", Path: filePath, Err: err}
	}

	return f, nil
}

// MappedFile implements ByteSource over a memory mapped on-disk file.
// MappedFile gives direct access to the memory mapped region and is NOT safe
// for concurrent use.
type MappedFile struct {
	fh       *os.File
	path     string
	data     mmap.MMap
	size     int64
	readOnly bool
	locked   bool
	mmapFlag int
	stats    Stats
}

// ReadAt reads from the memory mapped region starting at offset.
func (f *MappedFile) ReadAt(b []byte, offset int64) (int, error) {
	if len(b) == 0 {
		return 0, nil
	} else if f.fh == nil {
		return 0, os.ErrClosed
	} else if offset < 0 {
		return 0, &BoundsError{Op: "readat", Offset: offset, Count: len(b), Size: f.size}
	} else if offset >= f.size {
		return 0, io.EOF
	}

	f.stats.Reads++
	n := copy(b, f.data[offset:])
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

// ReadRange returns a copy of [start, end) clipped to the file size.
func (f *MappedFile) ReadRange(start, end int64) []byte {
	if f.fh == nil {
		return []byte{}
	}
	start, end = clip(start, end, f.size)
	f.stats.Reads++

	out := make([]byte, end-start)
	copy(out, f.data[start:end])
	return out
}

// WriteAt overwrites the mapped region starting at offset. The write is not
// persisted until Flush is called.
func (f *MappedFile) WriteAt(b []byte, offset int64) (int, error) {
	if f.fh == nil {
		return 0, os.ErrClosed
	} else if f.readOnly {
		return 0, ErrReadOnly
	} else if err := checkWrite("writeat", b, offset, f.size); err != nil {
		return 0, err
	}

	f.stats.Writes++
	return copy(f.data[offset:], b), nil
}

// Flush writes the entire mapped region back to the file and syncs it to
// stable storage.
func (f *MappedFile) Flush() error {
	if f.fh == nil {
		return os.ErrClosed
	} else if f.readOnly {
		return ErrReadOnly
	} else if f.data == nil {
		return nil
	}

	if _, err := f.fh.WriteAt(f.data, 0); err != nil {
		return err
	}
	if err := f.fh.Sync(); err != nil {
		return err
	}
	f.stats.Flushes++
	return nil
}

// Len returns the size of the file at the time it was opened.
func (f *MappedFile) Len() int64 { return f.size }

// Name returns the path the file was opened with. The name remains
// available after close.
func (f *MappedFile) Name() string { return f.path }

// ReadOnly returns true if the file was opened in read-only mode.
func (f *MappedFile) ReadOnly() bool { return f.readOnly }

// Stats returns i/o stats collected by this source.
func (f *MappedFile) Stats() Stats { return f.stats }

// Close frees the memory mapping and closes the underlying file handle.
// Unflushed writes are discarded. Calling Close more than once is safe.
func (f *MappedFile) Close() error {
	if f.fh == nil {
		return nil
	}
	unmapErr := f.unmap()
	err := f.fh.Close()
	f.fh = nil
	f.size = 0
	if err == nil {
		err = unmapErr
	}
	return err
}

func (f *MappedFile) String() string {
	if f.fh == nil {
		return "MappedFile{closed=true}"
	}

	return fmt.Sprintf(
		"MappedFile{file='%s', readOnly=%t, size=%d, mmap=%t}",
		f.path, f.readOnly, f.size, f.data != nil,
	)
}

func (f *MappedFile) mmap(lock bool) error {
	// zero-length files cannot be mapped.
	if f.fh == nil || f.size <= 0 {
		return nil
	}

	d, err := mmap.Map(f.fh, f.mmapFlag, 0)
	if err != nil {
		return err
	}
	f.data = d

	if lock {
		f.locked = f.data.Lock() == nil
	}
	return nil
}

func (f *MappedFile) unmap() error {
	if f.data == nil {
		return nil
	}
	if f.locked {
		_ = f.data.Unlock()
		f.locked = false
	}
	err := f.data.Unmap()
	f.data = nil
	return err
}
