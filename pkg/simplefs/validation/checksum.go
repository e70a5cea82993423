// Package validation computes content checksums over any virtual
// filesystem backend.
package validation

import (
	"crypto/md5"
	"fmt"
	"io"
	"time"

	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
	"github.com/arthur-debert/simplefs/pkg/simplefs/vpath"
)

// Opener is the part of a filesystem needed to read file content.
type Opener interface {
	OpenFile(p vpath.Path, mode core.AccessMode) (core.Stream, error)
}

// ChecksumRecord stores file checksum information
type ChecksumRecord struct {
	Path         vpath.Path
	MD5          string
	Size         int64
	ChecksumTime time.Time
}

// ComputeChecksum calculates the MD5 checksum and size of the file p.
// Directories have no checksum and yield a nil record.
func ComputeChecksum(fsys Opener, p vpath.Path) (*ChecksumRecord, error) {
	if p.IsDirectory() {
		return nil, nil
	}

	file, err := fsys.OpenFile(p, core.AccessRead)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s for checksumming: %w", p, err)
	}
	defer func() {
		_ = file.Close()
	}()

	hash := md5.New()
	size, err := io.Copy(hash, file)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for %s: %w", p, err)
	}

	return &ChecksumRecord{
		Path:         p,
		MD5:          fmt.Sprintf("%x", hash.Sum(nil)),
		Size:         size,
		ChecksumTime: time.Now(),
	}, nil
}

// ChecksumMismatchError reports file content that changed since a record
// was taken.
type ChecksumMismatchError struct {
	Path     vpath.Path
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Verify recomputes the checksum of the recorded file and compares it with
// the record.
func (r *ChecksumRecord) Verify(fsys Opener) error {
	current, err := ComputeChecksum(fsys, r.Path)
	if err != nil {
		return err
	}
	if current.MD5 != r.MD5 {
		return &ChecksumMismatchError{Path: r.Path, Expected: r.MD5, Actual: current.MD5}
	}
	return nil
}
