package simplefs

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
	"github.com/arthur-debert/simplefs/pkg/simplefs/validation"
)

// FileInfo describes the content of a file.
type FileInfo struct {
	Path      Path   `json:"path" yaml:"path"`
	Size      int64  `json:"size" yaml:"size"`
	MD5       string `json:"md5" yaml:"md5"`
	MIMEType  string `json:"mime_type" yaml:"mime_type"`
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
	IsText    bool   `json:"is_text" yaml:"is_text"`
}

// Inspect reads the file p and reports its size, MD5 checksum and detected
// content type.
func Inspect(fsys validation.Opener, p Path) (*FileInfo, error) {
	if !p.IsFile() {
		return nil, core.NewPathError("inspect", p.String(), core.ErrInvalidPathKind)
	}

	record, err := validation.ComputeChecksum(fsys, p)
	if err != nil {
		return nil, err
	}

	stream, err := fsys.OpenFile(p, core.AccessRead)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = stream.Close()
	}()

	mtype, err := mimetype.DetectReader(stream)
	if err != nil {
		return nil, fmt.Errorf("mime detection failed for %s: %w", p, err)
	}

	return &FileInfo{
		Path:      p,
		Size:      record.Size,
		MD5:       record.MD5,
		MIMEType:  mtype.String(),
		Extension: mtype.Extension(),
		IsText:    isText(mtype.String()),
	}, nil
}

func isText(mime string) bool {
	return strings.HasPrefix(mime, "text/") ||
		strings.HasPrefix(mime, "application/json") ||
		strings.HasPrefix(mime, "application/xml") ||
		strings.HasPrefix(mime, "application/javascript")
}
