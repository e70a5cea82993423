package simplefs

import (
	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
	"github.com/arthur-debert/simplefs/pkg/simplefs/filesystem"
	"github.com/arthur-debert/simplefs/pkg/simplefs/memfs"
	"github.com/arthur-debert/simplefs/pkg/simplefs/vpath"
)

// Re-exported types so callers rarely need the subpackages.
type (
	Path       = vpath.Path
	Listing    = vpath.Listing
	Stream     = core.Stream
	AccessMode = core.AccessMode
	ParseError = core.ParseError
)

const (
	AccessRead      = core.AccessRead
	AccessWrite     = core.AccessWrite
	AccessReadWrite = core.AccessReadWrite
)

var (
	ErrParseFailure     = core.ErrParseFailure
	ErrInvalidPathKind  = core.ErrInvalidPathKind
	ErrParentNotFound   = core.ErrParentNotFound
	ErrNotFound         = core.ErrNotFound
	ErrInvalidOperation = core.ErrInvalidOperation
	ErrOutsideRoot      = core.ErrOutsideRoot
	ErrInvalidSeek      = core.ErrInvalidSeek
)

// Parse converts text into a Path.
func Parse(text string) (Path, error) {
	return vpath.Parse(text)
}

// MustParse is like Parse but panics if text cannot be parsed.
func MustParse(text string) Path {
	return vpath.MustParse(text)
}

// Root returns the root directory path.
func Root() Path {
	return vpath.Root()
}

// FileSystem is the capability contract shared by every backend.
//
// Operations that take a path validate its kind first and fail with
// ErrInvalidPathKind when a directory path is given where a file path is
// required, or the reverse. Failures are *fs.PathError values wrapping one
// of the sentinel errors above.
type FileSystem interface {
	// CreateDirectory creates p. The parent must exist. Creating an
	// existing directory is a no-op.
	CreateDirectory(p Path) error

	// CreateFile creates p, replacing any previous content, and returns a
	// read/write stream positioned at the start.
	CreateFile(p Path) (Stream, error)

	// CreateFullPath creates every missing directory named by text and
	// returns the deepest one.
	CreateFullPath(text string) (Path, error)

	// WriteTextFile creates p holding the UTF-8 bytes of text.
	WriteTextFile(p Path, text string) error

	// Delete removes p. Directories are removed with everything below them.
	Delete(p Path) error

	// Exists reports whether p exists with the kind p denotes.
	Exists(p Path) bool

	// GetCurrentDirectory returns the virtual path of the host working
	// directory.
	GetCurrentDirectory() (Path, error)

	// ListEntities returns a snapshot of the entries directly below p.
	ListEntities(p Path) (Listing, error)

	// OpenFile opens the existing file p with the given access mode.
	OpenFile(p Path, mode AccessMode) (Stream, error)

	// ReadAllText returns the whole content of p.
	ReadAllText(p Path) (string, error)
}

var (
	_ FileSystem = (*memfs.FileSystem)(nil)
	_ FileSystem = (*filesystem.PhysicalFileSystem)(nil)
)
