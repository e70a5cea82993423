package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
	"github.com/arthur-debert/simplefs/pkg/simplefs/vpath"
)

// PathMapper translates between virtual paths and host paths below a fixed
// host root directory.
type PathMapper struct {
	root string
}

// NewPathMapper creates a mapper for root. A relative root is resolved
// against the working directory.
func NewPathMapper(root string) (*PathMapper, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve filesystem root %q: %w", root, err)
	}
	return &PathMapper{root: abs}, nil
}

// Root returns the absolute host root.
func (pm *PathMapper) Root() string {
	return pm.root
}

// PhysicalPath returns the host path for p: the root followed by the
// segments of p joined with the host separator.
func (pm *PathMapper) PhysicalPath(p vpath.Path) string {
	return filepath.Join(append([]string{pm.root}, p.Segments()...)...)
}

// VirtualDirectoryPath maps a host path below the root to a directory path.
func (pm *PathMapper) VirtualDirectoryPath(hostPath string) (vpath.Path, error) {
	segments, err := pm.relativeSegments(hostPath)
	if err != nil {
		return vpath.Path{}, err
	}
	return vpath.FromSegments(segments, true)
}

// VirtualFilePath maps a host path below the root to a file path.
func (pm *PathMapper) VirtualFilePath(hostPath string) (vpath.Path, error) {
	segments, err := pm.relativeSegments(hostPath)
	if err != nil {
		return vpath.Path{}, err
	}
	if len(segments) == 0 {
		return vpath.Path{}, core.NewPathError("virtualfilepath", hostPath, core.ErrInvalidPathKind)
	}
	return vpath.FromSegments(segments, false)
}

// relativeSegments splits hostPath relative to the root, rejecting host
// paths that are not below it.
func (pm *PathMapper) relativeSegments(hostPath string) ([]string, error) {
	abs, err := filepath.Abs(hostPath)
	if err != nil {
		return nil, core.NewPathError("virtualpath", hostPath, err)
	}
	rel, err := filepath.Rel(pm.root, abs)
	if err != nil {
		return nil, core.NewPathError("virtualpath", hostPath, core.ErrOutsideRoot)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, core.NewPathError("virtualpath", hostPath, core.ErrOutsideRoot)
	}
	if rel == "." {
		return nil, nil
	}
	return strings.Split(filepath.ToSlash(rel), "/"), nil
}
