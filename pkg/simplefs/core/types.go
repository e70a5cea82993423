package core

import "io"

// AccessMode controls which directions a stream returned by OpenFile allows.
type AccessMode int

const (
	// AccessRead opens a stream for reading only.
	AccessRead AccessMode = iota + 1
	// AccessWrite opens a stream for writing only.
	AccessWrite
	// AccessReadWrite opens a stream for both.
	AccessReadWrite
)

// CanRead reports whether the mode permits reading.
func (m AccessMode) CanRead() bool {
	return m == AccessRead || m == AccessReadWrite
}

// CanWrite reports whether the mode permits writing.
func (m AccessMode) CanWrite() bool {
	return m == AccessWrite || m == AccessReadWrite
}

func (m AccessMode) String() string {
	switch m {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessReadWrite:
		return "read-write"
	default:
		return "unknown"
	}
}

// Stream is a seekable random-access handle on file content.
// *os.File satisfies it, as does the in-memory stream.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
	Truncate(size int64) error
}
