package simplefs

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
)

// Lister is the read-only part of a FileSystem needed for traversal.
type Lister interface {
	Exists(p Path) bool
	ListEntities(p Path) (Listing, error)
}

// WalkFunc is called for every path visited by Walk. err is non-nil when
// root does not exist or a directory could not be listed; in the latter
// case the directory was already visited once with a nil err.
//
// Returning fs.SkipDir from a directory skips its contents; from a file it
// skips the remaining entries of the containing directory. fs.SkipAll stops
// the walk. Both make Walk return nil.
type WalkFunc func(p Path, err error) error

// Walk visits root and everything below it depth-first, in pre-order, with
// the entries of each directory in listing order.
func Walk(fsys Lister, root Path, fn WalkFunc) error {
	var err error
	if !fsys.Exists(root) {
		err = fn(root, core.NewPathError("walk", root.String(), core.ErrNotFound))
	} else {
		err = walk(fsys, root, fn)
	}
	if err == fs.SkipDir || err == fs.SkipAll {
		return nil
	}
	return err
}

func walk(fsys Lister, p Path, fn WalkFunc) error {
	if err := fn(p, nil); err != nil {
		if err == fs.SkipDir && p.IsDirectory() {
			return nil
		}
		return err
	}
	if p.IsFile() {
		return nil
	}

	listing, err := fsys.ListEntities(p)
	if err != nil {
		if err = fn(p, err); err == fs.SkipDir {
			return nil
		}
		return err
	}

	for child := range listing.All() {
		if err := walk(fsys, child, fn); err != nil {
			if err == fs.SkipDir {
				return nil
			}
			return err
		}
	}
	return nil
}

// Glob returns every path whose string form matches pattern, using
// doublestar syntax ("**" crosses directory levels). Directories match
// without their trailing separator. A pattern without a leading "/" is
// taken relative to the root.
func Glob(fsys Lister, pattern string) ([]Path, error) {
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var matches []Path
	err := Walk(fsys, Root(), func(p Path, err error) error {
		if err != nil {
			return err
		}
		if p.IsRoot() {
			return nil
		}
		matched, err := doublestar.Match(pattern, strings.TrimSuffix(p.String(), "/"))
		if matched {
			matches = append(matches, p)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
