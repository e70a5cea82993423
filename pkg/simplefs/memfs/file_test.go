package memfs

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"math"
	"testing"

	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
)

func TestStreamReadAfterSeek(t *testing.T) {
	s := NewStream(&File{}, core.AccessReadWrite)

	if n, err := s.Write([]byte("hello")); err != nil || n != 5 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if pos, err := s.Seek(2, io.SeekStart); err != nil || pos != 2 {
		t.Fatalf("Seek = %d, %v", pos, err)
	}

	buf := make([]byte, 10)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if n != 3 || string(buf[:n]) != "llo" {
		t.Errorf("Expected 3 bytes %q, got %d bytes %q", "llo", n, buf[:n])
	}
	if s.Position() != 5 {
		t.Errorf("Expected position 5, got %d", s.Position())
	}
}

func TestStreamReadAtEnd(t *testing.T) {
	s := NewStream(&File{data: []byte("abc")}, core.AccessRead)
	if _, err := s.Seek(0, io.SeekEnd); err != nil {
		t.Fatal(err)
	}

	n, err := s.Read(make([]byte, 4))
	if n != 0 || err != io.EOF {
		t.Errorf("Read at end = %d, %v; want 0, io.EOF", n, err)
	}

	if _, err := s.Seek(10, io.SeekStart); err != nil {
		t.Fatalf("Seeking past the end should be allowed: %v", err)
	}
	n, err = s.Read(make([]byte, 4))
	if n != 0 || err != io.EOF {
		t.Errorf("Read past end = %d, %v; want 0, io.EOF", n, err)
	}

	if n, err := s.Read(nil); n != 0 || err != nil {
		t.Errorf("Empty read = %d, %v; want 0, nil", n, err)
	}
}

func TestStreamWriteGrowsExactly(t *testing.T) {
	f := &File{}
	s := NewStream(f, core.AccessReadWrite)

	if _, err := s.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if f.Len() != 3 {
		t.Errorf("Expected length 3, got %d", f.Len())
	}

	// Overwrite inside the content does not grow it.
	if _, err := s.Seek(1, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Write([]byte("X")); err != nil {
		t.Fatal(err)
	}
	if string(f.data) != "aXc" {
		t.Errorf("Expected aXc, got %q", f.data)
	}

	// Overlapping the end grows to position+count.
	if _, err := s.Write([]byte("YZW")); err != nil {
		t.Fatal(err)
	}
	if string(f.data) != "aXYZW" || f.Len() != 5 {
		t.Errorf("Expected aXYZW, got %q", f.data)
	}
}

func TestStreamWritePastEndZeroFills(t *testing.T) {
	f := &File{}
	s := NewStream(f, core.AccessReadWrite)

	if _, err := s.Seek(3, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Write([]byte("ab")); err != nil {
		t.Fatal(err)
	}

	want := []byte{0, 0, 0, 'a', 'b'}
	if !bytes.Equal(f.data, want) {
		t.Errorf("Expected %v, got %v", want, f.data)
	}
}

func TestStreamZeroLengthWritePastEnd(t *testing.T) {
	f := &File{}
	s := NewStream(f, core.AccessReadWrite)

	if _, err := s.Seek(4, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	n, err := s.Write(nil)
	if err != nil || n != 0 {
		t.Fatalf("Expected (0, nil), got (%d, %v)", n, err)
	}
	if f.Len() != 0 {
		t.Errorf("Expected length 0, got %d", f.Len())
	}
	if s.Position() != 4 {
		t.Errorf("Expected position 4, got %d", s.Position())
	}
}

func TestStreamWriteOffsetOverflow(t *testing.T) {
	tests := []struct {
		name   string
		offset int64
		data   string
	}{
		{"max offset", math.MaxInt64, "x"},
		{"offset plus length wraps", math.MaxInt64 - 1, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{}
			s := NewStream(f, core.AccessReadWrite)
			if _, err := s.Seek(tt.offset, io.SeekStart); err != nil {
				t.Fatal(err)
			}

			n, err := s.Write([]byte(tt.data))
			if !errors.Is(err, core.ErrInvalidOperation) {
				t.Fatalf("Expected ErrInvalidOperation, got %v", err)
			}
			if n != 0 {
				t.Errorf("Expected 0 bytes written, got %d", n)
			}
			if f.Len() != 0 {
				t.Errorf("Expected length 0, got %d", f.Len())
			}
			if s.Position() != tt.offset {
				t.Errorf("Expected position %d, got %d", tt.offset, s.Position())
			}
		})
	}
}

func TestStreamZeroFillAfterShrink(t *testing.T) {
	f := &File{}
	s := NewStream(f, core.AccessReadWrite)

	if _, err := s.Write([]byte("secret")); err != nil {
		t.Fatal(err)
	}
	if err := s.Truncate(1); err != nil {
		t.Fatal(err)
	}
	// Re-growing within the old capacity must not resurrect old bytes.
	if _, err := s.Seek(3, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Write([]byte("!")); err != nil {
		t.Fatal(err)
	}

	want := []byte{'s', 0, 0, '!'}
	if !bytes.Equal(f.data, want) {
		t.Errorf("Expected %v, got %v", want, f.data)
	}
}

func TestStreamSeek(t *testing.T) {
	tests := []struct {
		name    string
		start   int64
		offset  int64
		whence  int
		want    int64
		wantErr error
	}{
		{"start", 4, 1, io.SeekStart, 1, nil},
		{"current forward", 4, 2, io.SeekCurrent, 6, nil},
		{"current backward", 4, -3, io.SeekCurrent, 1, nil},
		{"end", 0, -2, io.SeekEnd, 8, nil},
		{"end beyond", 0, 5, io.SeekEnd, 15, nil},
		{"negative start", 4, -1, io.SeekStart, 4, core.ErrInvalidSeek},
		{"negative current", 4, -5, io.SeekCurrent, 4, core.ErrInvalidSeek},
		{"negative end", 4, -11, io.SeekEnd, 4, core.ErrInvalidSeek},
		{"bad whence", 4, 0, 42, 4, core.ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStream(&File{data: make([]byte, 10)}, core.AccessRead)
			s.pos = tt.start

			got, err := s.Seek(tt.offset, tt.whence)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Seek error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want || s.Position() != tt.want {
				t.Errorf("Seek = %d (position %d), want %d", got, s.Position(), tt.want)
			}
		})
	}
}

func TestStreamTruncate(t *testing.T) {
	f := &File{data: []byte("hello world")}
	s := NewStream(f, core.AccessReadWrite)
	if _, err := s.Seek(8, io.SeekStart); err != nil {
		t.Fatal(err)
	}

	if err := s.Truncate(5); err != nil {
		t.Fatal(err)
	}
	if string(f.data) != "hello" || s.Length() != 5 {
		t.Errorf("Expected hello, got %q", f.data)
	}
	if s.Position() != 8 {
		t.Errorf("Truncate must not move the position, got %d", s.Position())
	}

	if err := s.Truncate(7); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f.data, []byte{'h', 'e', 'l', 'l', 'o', 0, 0}) {
		t.Errorf("Expected zero extension, got %v", f.data)
	}

	if err := s.Truncate(-1); !errors.Is(err, core.ErrInvalidOperation) {
		t.Errorf("Expected ErrInvalidOperation for negative size, got %v", err)
	}
}

func TestStreamsShareContent(t *testing.T) {
	f := &File{}
	writer := NewStream(f, core.AccessWrite)
	reader := NewStream(f, core.AccessRead)

	if _, err := writer.Write([]byte("shared")); err != nil {
		t.Fatal(err)
	}
	if reader.Length() != 6 {
		t.Errorf("Length should be read live, got %d", reader.Length())
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "shared" {
		t.Errorf("Expected reader to see writes, got %q", data)
	}
	if writer.Position() != 6 || reader.Position() != 6 {
		t.Errorf("Each stream keeps its own cursor")
	}
}

func TestStreamAccessMode(t *testing.T) {
	f := &File{data: []byte("x")}

	readOnly := NewStream(f, core.AccessRead)
	if _, err := readOnly.Write([]byte("y")); !errors.Is(err, core.ErrInvalidOperation) {
		t.Errorf("Write on read-only stream: got %v", err)
	}
	if err := readOnly.Truncate(0); !errors.Is(err, core.ErrInvalidOperation) {
		t.Errorf("Truncate on read-only stream: got %v", err)
	}

	writeOnly := NewStream(f, core.AccessWrite)
	if _, err := writeOnly.Read(make([]byte, 1)); !errors.Is(err, core.ErrInvalidOperation) {
		t.Errorf("Read on write-only stream: got %v", err)
	}
}

func TestStreamClose(t *testing.T) {
	s := NewStream(&File{}, core.AccessReadWrite)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := s.Write([]byte("x")); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("Write after close: got %v", err)
	}
	if _, err := s.Read(make([]byte, 1)); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("Read after close: got %v", err)
	}
	if _, err := s.Seek(0, io.SeekStart); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("Seek after close: got %v", err)
	}
	if err := s.Close(); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("Double close: got %v", err)
	}
}
