// Package vpath implements the virtual path model shared by every backend.
//
// A Path is an absolute, normalized location in the virtual namespace. Its
// string form joins segments with '/'; a trailing '/' marks a directory and
// its absence marks a file. The root directory is "/" and is also the zero
// value of Path.
package vpath

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/simplefs/pkg/simplefs/core"
)

// Separator joins path segments in the virtual namespace.
const Separator = '/'

const separator = string(Separator)

// Path identifies a directory or file. Paths are immutable and comparable,
// so they can be used directly as map keys.
type Path struct {
	// rel is the canonical form without the leading separator:
	// "" for root, "a/b/" for a directory, "a/b" for a file.
	rel string
}

// Root returns the root directory path.
func Root() Path {
	return Path{}
}

// Parse converts text into a Path. Redundant separators are collapsed and a
// missing leading separator is implied. Text ending in a separator (or made
// only of separators) yields a directory.
func Parse(text string) (Path, error) {
	if text == "" {
		return Path{}, &core.ParseError{Input: text, Reason: "empty path"}
	}
	if !utf8.ValidString(text) {
		return Path{}, &core.ParseError{Input: text, Reason: "invalid UTF-8"}
	}

	isDir := strings.HasSuffix(text, separator)
	var segments []string
	for _, segment := range strings.Split(text, separator) {
		if segment == "" {
			continue
		}
		if reason := checkSegment(segment); reason != "" {
			return Path{}, &core.ParseError{Input: text, Reason: reason}
		}
		segments = append(segments, segment)
	}

	return fromSegments(segments, isDir), nil
}

// MustParse is like Parse but panics if text cannot be parsed.
func MustParse(text string) Path {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// FromSegments builds a path from already split segments.
func FromSegments(segments []string, isDir bool) (Path, error) {
	for _, segment := range segments {
		if err := validateName(segment); err != nil {
			return Path{}, err
		}
	}
	if len(segments) == 0 && !isDir {
		return Path{}, &core.ParseError{Input: "", Reason: "a file path needs at least one segment"}
	}
	return fromSegments(segments, isDir), nil
}

func fromSegments(segments []string, isDir bool) Path {
	if len(segments) == 0 {
		return Path{}
	}
	rel := strings.Join(segments, separator)
	if isDir {
		rel += separator
	}
	return Path{rel: rel}
}

// checkSegment returns a non-empty reason when segment is not allowed.
func checkSegment(segment string) string {
	if segment == "." || segment == ".." {
		return fmt.Sprintf("relative segment %q is not allowed", segment)
	}
	for _, r := range segment {
		switch {
		case r < 0x20 || r == 0x7f:
			return fmt.Sprintf("control character %U is not allowed", r)
		case r == '\\':
			return "backslash is not allowed"
		}
	}
	return ""
}

func validateName(name string) error {
	if name == "" {
		return &core.ParseError{Input: name, Reason: "empty segment"}
	}
	if !utf8.ValidString(name) {
		return &core.ParseError{Input: name, Reason: "invalid UTF-8"}
	}
	if strings.ContainsRune(name, Separator) {
		return &core.ParseError{Input: name, Reason: "not a single path segment"}
	}
	if reason := checkSegment(name); reason != "" {
		return &core.ParseError{Input: name, Reason: reason}
	}
	return nil
}

// String returns the canonical form, e.g. "/", "/a/b/" or "/a/b.txt".
func (p Path) String() string {
	return separator + p.rel
}

// IsRoot reports whether p has no segments.
func (p Path) IsRoot() bool {
	return p.rel == ""
}

// IsDirectory reports whether p denotes a directory.
func (p Path) IsDirectory() bool {
	return p.rel == "" || strings.HasSuffix(p.rel, separator)
}

// IsFile reports whether p denotes a file.
func (p Path) IsFile() bool {
	return !p.IsDirectory()
}

// Segments returns a fresh copy of the path segments. Root has none.
func (p Path) Segments() []string {
	if p.IsRoot() {
		return nil
	}
	return strings.Split(strings.TrimSuffix(p.rel, separator), separator)
}

// Depth is the number of segments.
func (p Path) Depth() int {
	if p.IsRoot() {
		return 0
	}
	return strings.Count(strings.TrimSuffix(p.rel, separator), separator) + 1
}

// Name returns the last segment, or "" for root.
func (p Path) Name() string {
	trimmed := strings.TrimSuffix(p.rel, separator)
	return trimmed[strings.LastIndex(trimmed, separator)+1:]
}

// Parent drops the last segment. The result is always a directory and the
// parent of root is root.
func (p Path) Parent() Path {
	trimmed := strings.TrimSuffix(p.rel, separator)
	i := strings.LastIndex(trimmed, separator)
	if i < 0 {
		return Path{}
	}
	return Path{rel: trimmed[:i+1]}
}

// AppendDirectory returns the directory path name below p.
func (p Path) AppendDirectory(name string) (Path, error) {
	return p.append(name, true)
}

// AppendFile returns the file path name below p.
func (p Path) AppendFile(name string) (Path, error) {
	return p.append(name, false)
}

func (p Path) append(name string, isDir bool) (Path, error) {
	if !p.IsDirectory() {
		return Path{}, core.NewPathError("append", p.String(), core.ErrInvalidPathKind)
	}
	if err := validateName(name); err != nil {
		return Path{}, err
	}
	rel := p.rel + name
	if isDir {
		rel += separator
	}
	return Path{rel: rel}, nil
}

// AsDirectory returns the directory path with the same segments as p.
func (p Path) AsDirectory() Path {
	if p.IsDirectory() {
		return p
	}
	return Path{rel: p.rel + separator}
}

// IsAncestorOf reports whether other lies strictly below the directory p.
func (p Path) IsAncestorOf(other Path) bool {
	if !p.IsDirectory() || p == other {
		return false
	}
	return strings.HasPrefix(other.rel, p.rel)
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
