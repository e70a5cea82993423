package simplefs

import (
	"github.com/arthur-debert/simplefs/pkg/simplefs/filesystem"
	"github.com/arthur-debert/simplefs/pkg/simplefs/memfs"
)

// NewInMemory creates an empty in-memory filesystem logging through the
// package logger. Later options override the logger.
func NewInMemory(opts ...memfs.Option) *memfs.FileSystem {
	all := append([]memfs.Option{memfs.WithLogger(NewLoggerAdapter(Logger()))}, opts...)
	return memfs.New(all...)
}

// NewPhysical creates a filesystem over the host directory root, logging
// through the package logger.
func NewPhysical(root string, opts ...filesystem.Option) (*filesystem.PhysicalFileSystem, error) {
	all := append([]filesystem.Option{filesystem.WithLogger(NewLoggerAdapter(Logger()))}, opts...)
	return filesystem.NewPhysicalFileSystem(root, all...)
}
