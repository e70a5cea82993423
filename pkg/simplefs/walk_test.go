package simplefs_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/simplefs/pkg/simplefs"
	"github.com/arthur-debert/simplefs/pkg/simplefs/testutil"
)

func newTree(t *testing.T) simplefs.FileSystem {
	t.Helper()
	fsys := simplefs.NewInMemory()
	testutil.SetupTestFiles(t, fsys, map[string]string{
		"/docs/readme.md":      "# readme",
		"/docs/guide/intro.md": "intro",
		"/src/main.go":         "package main",
		"/src/lib/util.go":     "package lib",
		"/top.txt":             "top",
	})
	return fsys
}

func visit(t *testing.T, fsys simplefs.FileSystem, root string, fn func(p simplefs.Path) error) []string {
	t.Helper()
	var visited []string
	err := simplefs.Walk(fsys, simplefs.MustParse(root), func(p simplefs.Path, err error) error {
		require.NoError(t, err)
		visited = append(visited, p.String())
		if fn != nil {
			return fn(p)
		}
		return nil
	})
	require.NoError(t, err)
	return visited
}

func TestWalk(t *testing.T) {
	fsys := newTree(t)

	t.Run("pre-order in listing order", func(t *testing.T) {
		assert.Equal(t, []string{
			"/",
			"/docs/",
			"/docs/guide/",
			"/docs/guide/intro.md",
			"/docs/readme.md",
			"/src/",
			"/src/lib/",
			"/src/lib/util.go",
			"/src/main.go",
			"/top.txt",
		}, visit(t, fsys, "/", nil))
	})

	t.Run("subtree", func(t *testing.T) {
		assert.Equal(t, []string{"/src/", "/src/lib/", "/src/lib/util.go", "/src/main.go"},
			visit(t, fsys, "/src/", nil))
	})

	t.Run("file root", func(t *testing.T) {
		assert.Equal(t, []string{"/top.txt"}, visit(t, fsys, "/top.txt", nil))
	})

	t.Run("skip dir", func(t *testing.T) {
		got := visit(t, fsys, "/", func(p simplefs.Path) error {
			if p.String() == "/docs/" {
				return fs.SkipDir
			}
			return nil
		})
		assert.Equal(t, []string{"/", "/docs/", "/src/", "/src/lib/", "/src/lib/util.go", "/src/main.go", "/top.txt"}, got)
	})

	t.Run("skip dir from a file skips siblings", func(t *testing.T) {
		got := visit(t, fsys, "/src/", func(p simplefs.Path) error {
			if p.String() == "/src/lib/util.go" {
				return fs.SkipDir
			}
			return nil
		})
		assert.Equal(t, []string{"/src/", "/src/lib/", "/src/lib/util.go", "/src/main.go"}, got)
	})

	t.Run("skip all", func(t *testing.T) {
		got := visit(t, fsys, "/", func(p simplefs.Path) error {
			if p.String() == "/docs/guide/" {
				return fs.SkipAll
			}
			return nil
		})
		assert.Equal(t, []string{"/", "/docs/", "/docs/guide/"}, got)
	})

	t.Run("error stops the walk", func(t *testing.T) {
		boom := errors.New("boom")
		err := simplefs.Walk(fsys, simplefs.Root(), func(p simplefs.Path, err error) error {
			if p.String() == "/src/" {
				return boom
			}
			return nil
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing root", func(t *testing.T) {
		var got error
		err := simplefs.Walk(fsys, simplefs.MustParse("/nope/"), func(p simplefs.Path, err error) error {
			got = err
			return err
		})
		assert.ErrorIs(t, got, simplefs.ErrNotFound)
		assert.ErrorIs(t, err, simplefs.ErrNotFound)
	})
}

func TestGlob(t *testing.T) {
	fsys := newTree(t)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"all go files", "/**/*.go", []string{"/src/lib/util.go", "/src/main.go"}},
		{"relative pattern", "docs/*.md", []string{"/docs/readme.md"}},
		{"directories match without separator", "/*", []string{"/docs/", "/src/", "/top.txt"}},
		{"alternatives", "/{docs,src}/**/*.{md,go}", []string{"/docs/guide/intro.md", "/docs/readme.md", "/src/lib/util.go", "/src/main.go"}},
		{"no match", "/**/*.rs", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := simplefs.Glob(fsys, tt.pattern)
			require.NoError(t, err)
			var got []string
			for _, m := range matches {
				got = append(got, m.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("bad pattern", func(t *testing.T) {
		_, err := simplefs.Glob(fsys, "/[")
		assert.Error(t, err)
	})
}
