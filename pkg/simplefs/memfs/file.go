package memfs

import (
	"fmt"
	"io"
	"io/fs"
	"math"

	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
)

// maxLength bounds file content so offsets stay valid int slice indexes.
const maxLength = int64(math.MaxInt)

// File is the content of one in-memory file. Every Stream opened on the
// same File shares its buffer.
type File struct {
	data []byte
}

// Len returns the current content length.
func (f *File) Len() int64 {
	return int64(len(f.data))
}

// resize sets the content length to exactly n, preserving the overlapping
// prefix and zero-filling any growth.
func (f *File) resize(n int64) {
	old := int64(len(f.data))
	switch {
	case n <= old:
		f.data = f.data[:n]
	case n <= int64(cap(f.data)):
		f.data = f.data[:n]
		clear(f.data[old:n])
	default:
		grown := make([]byte, n)
		copy(grown, f.data)
		f.data = grown
	}
}

// Stream is a read/write/seek cursor over a File. The cursor is private to
// the stream; the content is not.
type Stream struct {
	file   *File
	pos    int64
	mode   core.AccessMode
	closed bool
}

var _ core.Stream = (*Stream)(nil)

// NewStream opens a stream over f positioned at offset 0.
func NewStream(f *File, mode core.AccessMode) *Stream {
	return &Stream{file: f, mode: mode}
}

// Read copies up to len(p) bytes from the current position. It returns
// 0, io.EOF once the position is at or past the end of the content.
func (s *Stream) Read(p []byte) (int, error) {
	if err := s.check("read", s.mode.CanRead()); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if s.pos >= s.file.Len() {
		return 0, io.EOF
	}
	n := copy(p, s.file.data[s.pos:])
	s.pos += int64(n)
	return n, nil
}

// Write copies p at the current position, growing the content to exactly
// position+len(p) when needed. A gap between the old end and the position
// is zero-filled.
func (s *Stream) Write(p []byte) (int, error) {
	if err := s.check("write", s.mode.CanWrite()); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if int64(len(p)) > maxLength-s.pos {
		return 0, fmt.Errorf("write of %d bytes at offset %d exceeds maximum file size: %w", len(p), s.pos, core.ErrInvalidOperation)
	}
	end := s.pos + int64(len(p))
	if end > s.file.Len() {
		s.file.resize(end)
	}
	n := copy(s.file.data[s.pos:end], p)
	s.pos = end
	return n, nil
}

// Seek moves the cursor following the io.Seeker convention. Seeking past
// the end is allowed; a negative result fails with core.ErrInvalidSeek and
// leaves the position unchanged.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, fs.ErrClosed
	}
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = s.pos + offset
	case io.SeekEnd:
		next = s.file.Len() + offset
	default:
		return s.pos, core.ErrInvalidOperation
	}
	if next < 0 {
		return s.pos, core.ErrInvalidSeek
	}
	s.pos = next
	return next, nil
}

// Truncate resizes the content to exactly size bytes. The position is not moved.
func (s *Stream) Truncate(size int64) error {
	if err := s.check("truncate", s.mode.CanWrite()); err != nil {
		return err
	}
	if size < 0 || size > maxLength {
		return core.ErrInvalidOperation
	}
	s.file.resize(size)
	return nil
}

// Length returns the live length of the shared content.
func (s *Stream) Length() int64 {
	return s.file.Len()
}

// Position returns the cursor offset.
func (s *Stream) Position() int64 {
	return s.pos
}

// Close releases the stream. Further calls fail with fs.ErrClosed.
func (s *Stream) Close() error {
	if s.closed {
		return fs.ErrClosed
	}
	s.closed = true
	return nil
}

func (s *Stream) check(op string, allowed bool) error {
	if s.closed {
		return fs.ErrClosed
	}
	if !allowed {
		return fmt.Errorf("%s on %s stream: %w", op, s.mode, core.ErrInvalidOperation)
	}
	return nil
}
