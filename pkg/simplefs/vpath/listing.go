package vpath

import (
	"iter"
	"slices"
	"strings"
)

// Listing is an immutable, ordered collection of paths, typically the
// children of one directory. It is a snapshot: later changes to the
// filesystem are not reflected in it.
type Listing struct {
	paths []Path
}

// NewListing copies paths, sorts them by string form and drops duplicates.
func NewListing(paths []Path) Listing {
	sorted := slices.Clone(paths)
	slices.SortFunc(sorted, comparePaths)
	return Listing{paths: slices.Compact(sorted)}
}

func comparePaths(a, b Path) int {
	return strings.Compare(a.rel, b.rel)
}

// Len returns the number of paths.
func (l Listing) Len() int {
	return len(l.paths)
}

// At returns the i-th path.
func (l Listing) At(i int) Path {
	return l.paths[i]
}

// Contains reports whether p is in the listing.
func (l Listing) Contains(p Path) bool {
	_, found := slices.BinarySearchFunc(l.paths, p, comparePaths)
	return found
}

// Paths returns a copy of the paths in order.
func (l Listing) Paths() []Path {
	return slices.Clone(l.paths)
}

// All iterates over the paths in order.
func (l Listing) All() iter.Seq[Path] {
	return func(yield func(Path) bool) {
		for _, p := range l.paths {
			if !yield(p) {
				return
			}
		}
	}
}

// Strings returns the string form of every path, in order.
func (l Listing) Strings() []string {
	out := make([]string, len(l.paths))
	for i, p := range l.paths {
		out[i] = p.String()
	}
	return out
}
