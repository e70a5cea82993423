// Package memfs implements the virtual filesystem contract on an in-memory
// tree.
//
// The tree is a single structure: every directory node maps child names to
// either a directory node or a file. A name can therefore never be both a
// directory and a file. Deleting a directory detaches its whole subtree.
//
// A FileSystem is not safe for concurrent use; callers that share one must
// serialize access to it.
package memfs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
	"github.com/arthur-debert/simplefs/pkg/simplefs/vpath"
)

// node is either a directory (children != nil) or a file (file != nil).
type node struct {
	path     vpath.Path
	children map[string]*node
	file     *File
}

func newDirNode(p vpath.Path) *node {
	return &node{path: p, children: make(map[string]*node)}
}

func (n *node) isDir() bool {
	return n.children != nil
}

// FileSystem is an in-memory virtual filesystem.
type FileSystem struct {
	root   *node
	logger core.Logger
	getwd  func() (string, error)
}

// Option configures a FileSystem.
type Option func(*FileSystem)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger core.Logger) Option {
	return func(m *FileSystem) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithWorkingDirectory replaces os.Getwd as the source of the host working
// directory used by GetCurrentDirectory.
func WithWorkingDirectory(getwd func() (string, error)) Option {
	return func(m *FileSystem) {
		if getwd != nil {
			m.getwd = getwd
		}
	}
}

// New creates a filesystem holding only the root directory.
func New(opts ...Option) *FileSystem {
	m := &FileSystem{
		root:   newDirNode(vpath.Root()),
		logger: core.NopLogger(),
		getwd:  os.Getwd,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// lookup walks segments from the root through directories only.
func (m *FileSystem) lookup(p vpath.Path) *node {
	current := m.root
	for _, segment := range p.Segments() {
		if !current.isDir() {
			return nil
		}
		next, ok := current.children[segment]
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func (m *FileSystem) directory(p vpath.Path) *node {
	if n := m.lookup(p); n != nil && n.isDir() {
		return n
	}
	return nil
}

func (m *FileSystem) fail(op string, p vpath.Path, err error) error {
	m.logger.Trace().Str("op", op).Str("path", p.String()).Err(err).Msg("memfs operation rejected")
	return core.NewPathError(op, p.String(), err)
}

// CreateDirectory creates the directory p. It is a no-op if p already
// exists; otherwise the parent directory must exist.
func (m *FileSystem) CreateDirectory(p vpath.Path) error {
	const op = "createdirectory"
	if !p.IsDirectory() {
		return m.fail(op, p, core.ErrInvalidPathKind)
	}
	if p.IsRoot() {
		return nil
	}
	parent := m.directory(p.Parent())
	if parent == nil {
		return m.fail(op, p, core.ErrParentNotFound)
	}
	if existing, ok := parent.children[p.Name()]; ok {
		if existing.isDir() {
			return nil
		}
		return m.fail(op, p, core.ErrInvalidPathKind)
	}

	parent.children[p.Name()] = newDirNode(p)
	m.logger.Debug().Str("op", op).Str("path", p.String()).Msg("directory created")
	return nil
}

// CreateFile registers an empty file at p and returns a read/write stream
// over it. A file already at p is replaced; streams opened on the old
// content keep working but are detached from the tree.
func (m *FileSystem) CreateFile(p vpath.Path) (core.Stream, error) {
	const op = "createfile"
	if !p.IsFile() {
		return nil, m.fail(op, p, core.ErrInvalidPathKind)
	}
	parent := m.directory(p.Parent())
	if parent == nil {
		return nil, m.fail(op, p, core.ErrParentNotFound)
	}
	if existing, ok := parent.children[p.Name()]; ok && existing.isDir() {
		return nil, m.fail(op, p, core.ErrInvalidPathKind)
	}

	file := &File{}
	parent.children[p.Name()] = &node{path: p, file: file}
	m.logger.Debug().Str("op", op).Str("path", p.String()).Msg("file created")
	return NewStream(file, core.AccessReadWrite), nil
}

// WriteTextFile creates p and writes text to it as UTF-8.
func (m *FileSystem) WriteTextFile(p vpath.Path, text string) error {
	stream, err := m.CreateFile(p)
	if err != nil {
		return err
	}
	n, err := io.WriteString(stream, text)
	if err != nil {
		_ = stream.Close()
		return core.NewPathError("writetextfile", p.String(), err)
	}
	m.logger.Debug().Str("op", "writetextfile").Str("path", p.String()).Int64("size", int64(n)).Msg("file written")
	return stream.Close()
}

// Delete removes the file or directory p. Deleting a directory removes its
// whole subtree. The root cannot be deleted.
func (m *FileSystem) Delete(p vpath.Path) error {
	const op = "delete"
	if p.IsRoot() {
		return m.fail(op, p, core.ErrInvalidOperation)
	}
	parent := m.directory(p.Parent())
	if parent == nil {
		return m.fail(op, p, core.ErrNotFound)
	}
	existing, ok := parent.children[p.Name()]
	if !ok || existing.isDir() != p.IsDirectory() {
		return m.fail(op, p, core.ErrNotFound)
	}

	delete(parent.children, p.Name())
	event := m.logger.Debug().Str("op", op).Str("path", p.String()).Bool("directory", existing.isDir())
	if !existing.isDir() {
		event = event.Int64("size", existing.file.Len())
	}
	event.Msg("entry deleted")
	return nil
}

// Exists reports whether p is registered with the kind p denotes.
func (m *FileSystem) Exists(p vpath.Path) bool {
	n := m.lookup(p)
	return n != nil && n.isDir() == p.IsDirectory()
}

// ListEntities returns a snapshot of the immediate children of directory p.
func (m *FileSystem) ListEntities(p vpath.Path) (vpath.Listing, error) {
	const op = "listentities"
	if !p.IsDirectory() {
		return vpath.Listing{}, m.fail(op, p, core.ErrInvalidPathKind)
	}
	dir := m.directory(p)
	if dir == nil {
		return vpath.Listing{}, m.fail(op, p, core.ErrNotFound)
	}

	paths := make([]vpath.Path, 0, len(dir.children))
	for _, child := range dir.children {
		paths = append(paths, child.path)
	}
	return vpath.NewListing(paths), nil
}

// OpenFile returns a new stream over the existing file p. The stream has
// its own cursor at offset 0 and shares content with every other stream on
// the same file.
func (m *FileSystem) OpenFile(p vpath.Path, mode core.AccessMode) (core.Stream, error) {
	const op = "openfile"
	if !p.IsFile() {
		return nil, m.fail(op, p, core.ErrInvalidPathKind)
	}
	if !mode.CanRead() && !mode.CanWrite() {
		return nil, m.fail(op, p, core.ErrInvalidOperation)
	}
	n := m.lookup(p)
	if n == nil || n.isDir() {
		return nil, m.fail(op, p, core.ErrNotFound)
	}
	return NewStream(n.file, mode), nil
}

// ReadAllText reads the whole content of p.
func (m *FileSystem) ReadAllText(p vpath.Path) (string, error) {
	stream, err := m.OpenFile(p, core.AccessRead)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = stream.Close()
	}()

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", core.NewPathError("readalltext", p.String(), err)
	}
	return string(data), nil
}

// CreateFullPath creates every directory named by text, starting at the
// root, and returns the deepest one. Empty text yields the root.
func (m *FileSystem) CreateFullPath(text string) (vpath.Path, error) {
	dir, err := vpath.Parse(text + "/")
	if err != nil {
		return vpath.Path{}, err
	}
	if err := m.createAll(dir); err != nil {
		return vpath.Path{}, err
	}
	return dir, nil
}

// GetCurrentDirectory mirrors the host working directory into the tree and
// returns its virtual path. Only the names are taken from the host.
func (m *FileSystem) GetCurrentDirectory() (vpath.Path, error) {
	const op = "getcurrentdirectory"
	wd, err := m.getwd()
	if err != nil {
		return vpath.Path{}, core.NewPathError(op, "", err)
	}
	dir, err := vpath.FromSegments(hostSegments(wd), true)
	if err != nil {
		return vpath.Path{}, core.NewPathError(op, wd, err)
	}
	if err := m.createAll(dir); err != nil {
		return vpath.Path{}, err
	}
	return dir, nil
}

// createAll creates dir and its missing ancestors. Nothing is created when
// any ancestor is occupied by a file.
func (m *FileSystem) createAll(dir vpath.Path) error {
	const op = "createfullpath"
	current := m.root
	for _, segment := range dir.Segments() {
		next, ok := current.children[segment]
		if !ok {
			break
		}
		if !next.isDir() {
			return m.fail(op, next.path, core.ErrInvalidPathKind)
		}
		current = next
	}

	current = m.root
	for _, segment := range dir.Segments() {
		next, ok := current.children[segment]
		if !ok {
			p, err := current.path.AppendDirectory(segment)
			if err != nil {
				return err
			}
			next = newDirNode(p)
			current.children[segment] = next
			m.logger.Debug().Str("op", op).Str("path", p.String()).Msg("directory created")
		}
		current = next
	}
	return nil
}

func hostSegments(hostPath string) []string {
	var segments []string
	for _, segment := range strings.Split(filepath.ToSlash(hostPath), "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
