// Package filesystem implements the virtual filesystem contract on top of a
// directory of the host operating system.
package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
	"github.com/arthur-debert/simplefs/pkg/simplefs/vpath"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// PhysicalFileSystem forwards every operation to the host filesystem below
// a root directory.
type PhysicalFileSystem struct {
	*PathMapper
	logger core.Logger
}

// Option configures a PhysicalFileSystem.
type Option func(*PhysicalFileSystem)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger core.Logger) Option {
	return func(pfs *PhysicalFileSystem) {
		if logger != nil {
			pfs.logger = logger
		}
	}
}

// NewPhysicalFileSystem creates a backend rooted at the host directory root.
func NewPhysicalFileSystem(root string, opts ...Option) (*PhysicalFileSystem, error) {
	mapper, err := NewPathMapper(root)
	if err != nil {
		return nil, err
	}
	pfs := &PhysicalFileSystem{PathMapper: mapper, logger: core.NopLogger()}
	for _, opt := range opts {
		opt(pfs)
	}
	return pfs, nil
}

func (pfs *PhysicalFileSystem) fail(op string, p vpath.Path, err error) error {
	pfs.logger.Trace().Str("op", op).Str("path", p.String()).Err(err).Msg("physical operation rejected")
	return core.NewPathError(op, p.String(), err)
}

// translate maps host errors onto the virtual error taxonomy.
func (pfs *PhysicalFileSystem) translate(op string, p vpath.Path, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return pfs.fail(op, p, core.ErrNotFound)
	case errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.EISDIR):
		return pfs.fail(op, p, core.ErrInvalidPathKind)
	default:
		return pfs.fail(op, p, err)
	}
}

// stat reports whether p exists on the host and whether it is a directory.
func (pfs *PhysicalFileSystem) stat(p vpath.Path) (exists, isDir bool) {
	info, err := os.Stat(pfs.PhysicalPath(p))
	if err != nil {
		return false, false
	}
	return true, info.IsDir()
}

func (pfs *PhysicalFileSystem) requireParent(op string, p vpath.Path) error {
	if exists, isDir := pfs.stat(p.Parent()); !exists || !isDir {
		return pfs.fail(op, p, core.ErrParentNotFound)
	}
	return nil
}

// CreateDirectory creates the directory p; a no-op if it already exists.
func (pfs *PhysicalFileSystem) CreateDirectory(p vpath.Path) error {
	const op = "createdirectory"
	if !p.IsDirectory() {
		return pfs.fail(op, p, core.ErrInvalidPathKind)
	}
	if exists, isDir := pfs.stat(p); exists {
		if isDir {
			return nil
		}
		return pfs.fail(op, p, core.ErrInvalidPathKind)
	}
	if err := pfs.requireParent(op, p); err != nil {
		return err
	}
	if err := os.Mkdir(pfs.PhysicalPath(p), dirPerm); err != nil {
		return pfs.translate(op, p, err)
	}
	pfs.logger.Debug().Str("op", op).Str("path", p.String()).Msg("directory created")
	return nil
}

// CreateFile creates or truncates the file p and returns a read/write
// handle positioned at offset 0.
func (pfs *PhysicalFileSystem) CreateFile(p vpath.Path) (core.Stream, error) {
	const op = "createfile"
	if !p.IsFile() {
		return nil, pfs.fail(op, p, core.ErrInvalidPathKind)
	}
	if err := pfs.requireParent(op, p); err != nil {
		return nil, err
	}
	if exists, isDir := pfs.stat(p); exists && isDir {
		return nil, pfs.fail(op, p, core.ErrInvalidPathKind)
	}
	f, err := os.OpenFile(pfs.PhysicalPath(p), os.O_RDWR|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return nil, pfs.translate(op, p, err)
	}
	pfs.logger.Debug().Str("op", op).Str("path", p.String()).Msg("file created")
	return f, nil
}

// CreateFullPath creates every directory named by text below the root.
func (pfs *PhysicalFileSystem) CreateFullPath(text string) (vpath.Path, error) {
	const op = "createfullpath"
	dir, err := vpath.Parse(text + "/")
	if err != nil {
		return vpath.Path{}, err
	}

	current := vpath.Root()
	for _, segment := range dir.Segments() {
		if current, err = current.AppendDirectory(segment); err != nil {
			return vpath.Path{}, err
		}
		exists, isDir := pfs.stat(current)
		if !exists {
			break
		}
		if !isDir {
			return vpath.Path{}, pfs.fail(op, current, core.ErrInvalidPathKind)
		}
	}

	if err := os.MkdirAll(pfs.PhysicalPath(dir), dirPerm); err != nil {
		return vpath.Path{}, pfs.translate(op, dir, err)
	}
	pfs.logger.Debug().Str("op", op).Str("path", dir.String()).Msg("directories created")
	return dir, nil
}

// WriteTextFile creates p and writes text to it.
func (pfs *PhysicalFileSystem) WriteTextFile(p vpath.Path, text string) error {
	stream, err := pfs.CreateFile(p)
	if err != nil {
		return err
	}
	n, err := io.WriteString(stream, text)
	if err != nil {
		_ = stream.Close()
		return pfs.translate("writetextfile", p, err)
	}
	pfs.logger.Debug().Str("op", "writetextfile").Str("path", p.String()).Int64("size", int64(n)).Msg("file written")
	return stream.Close()
}

// Delete removes the file or directory p; directories are removed with
// their contents. The root cannot be deleted.
func (pfs *PhysicalFileSystem) Delete(p vpath.Path) error {
	const op = "delete"
	if p.IsRoot() {
		return pfs.fail(op, p, core.ErrInvalidOperation)
	}
	if exists, isDir := pfs.stat(p); !exists || isDir != p.IsDirectory() {
		return pfs.fail(op, p, core.ErrNotFound)
	}

	host := pfs.PhysicalPath(p)
	var err error
	if p.IsDirectory() {
		err = os.RemoveAll(host)
	} else {
		err = os.Remove(host)
	}
	if err != nil {
		return pfs.translate(op, p, err)
	}
	pfs.logger.Debug().Str("op", op).Str("path", p.String()).Bool("directory", p.IsDirectory()).Msg("entry deleted")
	return nil
}

// Exists reports whether p exists on the host with the kind p denotes.
func (pfs *PhysicalFileSystem) Exists(p vpath.Path) bool {
	exists, isDir := pfs.stat(p)
	return exists && isDir == p.IsDirectory()
}

// GetCurrentDirectory returns the virtual path of the process working
// directory, which must lie below the root.
func (pfs *PhysicalFileSystem) GetCurrentDirectory() (vpath.Path, error) {
	wd, err := os.Getwd()
	if err != nil {
		return vpath.Path{}, err
	}
	return pfs.VirtualDirectoryPath(wd)
}

// ListEntities returns a snapshot of the directories and regular files
// directly below p. Other entry types and names that are not valid virtual
// segments are skipped.
func (pfs *PhysicalFileSystem) ListEntities(p vpath.Path) (vpath.Listing, error) {
	const op = "listentities"
	if !p.IsDirectory() {
		return vpath.Listing{}, pfs.fail(op, p, core.ErrInvalidPathKind)
	}
	if exists, isDir := pfs.stat(p); !exists || !isDir {
		return vpath.Listing{}, pfs.fail(op, p, core.ErrNotFound)
	}
	entries, err := os.ReadDir(pfs.PhysicalPath(p))
	if err != nil {
		return vpath.Listing{}, pfs.translate(op, p, err)
	}

	paths := make([]vpath.Path, 0, len(entries))
	for _, entry := range entries {
		var (
			child    vpath.Path
			childErr error
		)
		switch {
		case entry.IsDir():
			child, childErr = p.AppendDirectory(entry.Name())
		case entry.Type().IsRegular():
			child, childErr = p.AppendFile(entry.Name())
		default:
			pfs.logger.Trace().Str("path", p.String()).Str("name", entry.Name()).Msg("skipping non-regular entry")
			continue
		}
		if childErr != nil {
			pfs.logger.Warn().Str("path", p.String()).Str("name", entry.Name()).Err(childErr).Msg("skipping entry with unsupported name")
			continue
		}
		paths = append(paths, child)
	}
	return vpath.NewListing(paths), nil
}

// OpenFile opens the existing file p with the given access mode.
func (pfs *PhysicalFileSystem) OpenFile(p vpath.Path, mode core.AccessMode) (core.Stream, error) {
	const op = "openfile"
	if !p.IsFile() {
		return nil, pfs.fail(op, p, core.ErrInvalidPathKind)
	}
	var flag int
	switch mode {
	case core.AccessRead:
		flag = os.O_RDONLY
	case core.AccessWrite:
		flag = os.O_WRONLY
	case core.AccessReadWrite:
		flag = os.O_RDWR
	default:
		return nil, pfs.fail(op, p, core.ErrInvalidOperation)
	}
	if exists, isDir := pfs.stat(p); !exists || isDir {
		return nil, pfs.fail(op, p, core.ErrNotFound)
	}
	f, err := os.OpenFile(pfs.PhysicalPath(p), flag, 0)
	if err != nil {
		return nil, pfs.translate(op, p, err)
	}
	return f, nil
}

// ReadAllText reads the whole content of the file p.
func (pfs *PhysicalFileSystem) ReadAllText(p vpath.Path) (string, error) {
	const op = "readalltext"
	if !p.IsFile() {
		return "", pfs.fail(op, p, core.ErrInvalidPathKind)
	}
	if exists, isDir := pfs.stat(p); !exists || isDir {
		return "", pfs.fail(op, p, core.ErrNotFound)
	}
	data, err := os.ReadFile(pfs.PhysicalPath(p))
	if err != nil {
		return "", pfs.translate(op, p, err)
	}
	return string(data), nil
}
