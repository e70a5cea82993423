package testutil

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/simplefs/pkg/simplefs"
)

// Factory returns an empty filesystem for one test.
type Factory func(t *testing.T) simplefs.FileSystem

// RunContractTests runs the behaviour every backend shares against
// filesystems created by newFS.
func RunContractTests(t *testing.T, newFS Factory) {
	p := simplefs.MustParse

	// snapshot flattens a tree to path -> content for state comparisons.
	snapshot := func(t *testing.T, fsys simplefs.FileSystem) map[string]string {
		t.Helper()
		m, err := simplefs.Snapshot(fsys, simplefs.Root())
		require.NoError(t, err)
		out := make(map[string]string, len(m.Entries))
		for _, entry := range m.Entries {
			out[entry.Path.String()] = entry.Content
		}
		return out
	}

	t.Run("root exists and is empty", func(t *testing.T) {
		fsys := newFS(t)
		assert.True(t, fsys.Exists(simplefs.Root()))
		listing, err := fsys.ListEntities(simplefs.Root())
		require.NoError(t, err)
		assert.Zero(t, listing.Len())
	})

	t.Run("create directory is listed once", func(t *testing.T) {
		fsys := newFS(t)
		dir, err := simplefs.Root().AppendDirectory("a")
		require.NoError(t, err)
		dir, err = dir.AppendDirectory("b")
		require.NoError(t, err)
		assert.Equal(t, "/a/b/", dir.String())

		require.NoError(t, fsys.CreateDirectory(p("/a/")))
		require.NoError(t, fsys.CreateDirectory(dir))
		require.NoError(t, fsys.CreateDirectory(dir))

		listing, err := fsys.ListEntities(p("/a/"))
		require.NoError(t, err)
		assert.Equal(t, []string{"/a/b/"}, listing.Strings())
	})

	t.Run("write then read round trip", func(t *testing.T) {
		fsys := newFS(t)
		file := CreateTestFile(t, fsys, "/notes.txt", "héllo wörld")
		AssertFileContent(t, fsys, "/notes.txt", "héllo wörld")

		stream, err := fsys.OpenFile(file, simplefs.AccessRead)
		require.NoError(t, err)
		defer func() {
			_ = stream.Close()
		}()
		data, err := io.ReadAll(stream)
		require.NoError(t, err)
		assert.Equal(t, "héllo wörld", string(data))
	})

	t.Run("create file returns read write stream", func(t *testing.T) {
		fsys := newFS(t)
		stream, err := fsys.CreateFile(p("/data"))
		require.NoError(t, err)
		_, err = stream.Write([]byte("hello"))
		require.NoError(t, err)

		pos, err := stream.Seek(2, io.SeekStart)
		require.NoError(t, err)
		assert.Equal(t, int64(2), pos)

		buf := make([]byte, 10)
		n, err := stream.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, "llo", string(buf[:n]))

		n, err = stream.Read(buf)
		assert.Equal(t, 0, n)
		assert.ErrorIs(t, err, io.EOF)

		pos, err = stream.Seek(-1, io.SeekEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(4), pos)

		_, err = stream.Seek(-10, io.SeekStart)
		assert.Error(t, err, "negative position")

		require.NoError(t, stream.Truncate(2))
		require.NoError(t, stream.Close())
		AssertFileContent(t, fsys, "/data", "he")
	})

	t.Run("recreating a file empties it", func(t *testing.T) {
		fsys := newFS(t)
		CreateTestFile(t, fsys, "/f", "old content")
		stream, err := fsys.CreateFile(p("/f"))
		require.NoError(t, err)
		require.NoError(t, stream.Close())
		AssertFileContent(t, fsys, "/f", "")
	})

	t.Run("missing parent leaves state unchanged", func(t *testing.T) {
		fsys := newFS(t)
		SetupTestFiles(t, fsys, map[string]string{"/keep/k.txt": "k"})
		before := snapshot(t, fsys)

		err := fsys.CreateDirectory(p("/missing/child/"))
		assert.ErrorIs(t, err, simplefs.ErrParentNotFound)
		_, err = fsys.CreateFile(p("/missing/f.txt"))
		assert.ErrorIs(t, err, simplefs.ErrParentNotFound)
		err = fsys.WriteTextFile(p("/missing/g.txt"), "x")
		assert.ErrorIs(t, err, simplefs.ErrParentNotFound)
		assert.ErrorIs(t, err, fs.ErrNotExist)

		assert.Equal(t, before, snapshot(t, fsys))
	})

	t.Run("path kind is validated", func(t *testing.T) {
		fsys := newFS(t)
		CreateTestFile(t, fsys, "/f", "x")

		_, err := fsys.CreateFile(p("/dir/"))
		assert.ErrorIs(t, err, simplefs.ErrInvalidPathKind)
		assert.ErrorIs(t, fsys.CreateDirectory(p("/file")), simplefs.ErrInvalidPathKind)
		_, err = fsys.OpenFile(p("/f/"), simplefs.AccessRead)
		assert.ErrorIs(t, err, simplefs.ErrInvalidPathKind)
		_, err = fsys.ReadAllText(p("/f/"))
		assert.ErrorIs(t, err, simplefs.ErrInvalidPathKind)
		_, err = fsys.ListEntities(p("/f"))
		assert.ErrorIs(t, err, simplefs.ErrInvalidPathKind)
	})

	t.Run("a name is either a file or a directory", func(t *testing.T) {
		fsys := newFS(t)
		CreateTestFile(t, fsys, "/x", "file")
		CreateTestDir(t, fsys, "/y")
		before := snapshot(t, fsys)

		assert.ErrorIs(t, fsys.CreateDirectory(p("/x/")), simplefs.ErrInvalidPathKind)
		_, err := fsys.CreateFile(p("/y"))
		assert.ErrorIs(t, err, simplefs.ErrInvalidPathKind)

		assert.Equal(t, before, snapshot(t, fsys))
	})

	t.Run("delete", func(t *testing.T) {
		fsys := newFS(t)
		SetupTestFiles(t, fsys, map[string]string{
			"/a/b/c.txt": "c",
			"/a/d.txt":   "d",
			"/top.txt":   "t",
		})

		err := fsys.Delete(simplefs.Root())
		assert.ErrorIs(t, err, simplefs.ErrInvalidOperation)
		assert.ErrorIs(t, fsys.Delete(p("/nope/")), simplefs.ErrNotFound)
		assert.ErrorIs(t, fsys.Delete(p("/nope.txt")), fs.ErrNotExist)

		require.NoError(t, fsys.Delete(p("/top.txt")))
		AssertNotExists(t, fsys, "/top.txt")

		require.NoError(t, fsys.Delete(p("/a/")))
		for _, gone := range []string{"/a/", "/a/b/", "/a/b/c.txt", "/a/d.txt"} {
			AssertNotExists(t, fsys, gone)
		}
		assert.Empty(t, snapshot(t, fsys))

		CreateTestDir(t, fsys, "/a")
		listing, err := fsys.ListEntities(p("/a/"))
		require.NoError(t, err)
		assert.Zero(t, listing.Len(), "recreated directory must not resurrect old children")
	})

	t.Run("exists checks kind", func(t *testing.T) {
		fsys := newFS(t)
		CreateTestFile(t, fsys, "/f", "")
		CreateTestDir(t, fsys, "/d")

		AssertExists(t, fsys, "/f")
		AssertExists(t, fsys, "/d/")
		AssertNotExists(t, fsys, "/f/")
		AssertNotExists(t, fsys, "/d")
		AssertNotExists(t, fsys, "/missing")
	})

	t.Run("create full path", func(t *testing.T) {
		fsys := newFS(t)
		dir, err := fsys.CreateFullPath("a/b/c")
		require.NoError(t, err)
		assert.Equal(t, "/a/b/c/", dir.String())
		for _, d := range []string{"/a/", "/a/b/", "/a/b/c/"} {
			AssertExists(t, fsys, d)
		}

		listing, err := fsys.ListEntities(p("/a/b/"))
		require.NoError(t, err)
		assert.Equal(t, []string{"/a/b/c/"}, listing.Strings())

		again, err := fsys.CreateFullPath("/a/b/c/")
		require.NoError(t, err)
		assert.Equal(t, dir, again)

		root, err := fsys.CreateFullPath("/")
		require.NoError(t, err)
		assert.True(t, root.IsRoot())
	})

	t.Run("create full path blocked by a file", func(t *testing.T) {
		fsys := newFS(t)
		CreateTestDir(t, fsys, "/a")
		CreateTestFile(t, fsys, "/a/f", "x")
		before := snapshot(t, fsys)

		_, err := fsys.CreateFullPath("a/f/g/h")
		assert.ErrorIs(t, err, simplefs.ErrInvalidPathKind)
		assert.Equal(t, before, snapshot(t, fsys))

		_, err = fsys.CreateFullPath("a/../b")
		assert.ErrorIs(t, err, simplefs.ErrParseFailure)
	})

	t.Run("open file", func(t *testing.T) {
		fsys := newFS(t)
		_, err := fsys.OpenFile(p("/missing"), simplefs.AccessRead)
		assert.ErrorIs(t, err, simplefs.ErrNotFound)

		CreateTestFile(t, fsys, "/f", "abc")
		stream, err := fsys.OpenFile(p("/f"), simplefs.AccessRead)
		require.NoError(t, err)
		_, err = stream.Write([]byte("x"))
		assert.Error(t, err, "read-only stream rejects writes")
		require.NoError(t, stream.Close())

		stream, err = fsys.OpenFile(p("/f"), simplefs.AccessWrite)
		require.NoError(t, err)
		_, err = stream.Seek(0, io.SeekEnd)
		require.NoError(t, err)
		_, err = stream.Write([]byte("def"))
		require.NoError(t, err)
		require.NoError(t, stream.Close())
		AssertFileContent(t, fsys, "/f", "abcdef")
	})

	t.Run("read all text has no size cap", func(t *testing.T) {
		fsys := newFS(t)
		big := strings.Repeat("0123456789", 50_000)
		CreateTestFile(t, fsys, "/big.txt", big)

		text, err := fsys.ReadAllText(p("/big.txt"))
		require.NoError(t, err)
		assert.Len(t, text, len(big))
		assert.True(t, text == big)

		_, err = fsys.ReadAllText(p("/missing.txt"))
		assert.True(t, errors.Is(err, simplefs.ErrNotFound))
	})

	t.Run("listing is sorted", func(t *testing.T) {
		fsys := newFS(t)
		SetupTestFiles(t, fsys, map[string]string{
			"/b.txt":   "",
			"/a/x.txt": "",
			"/c/y.txt": "",
		})
		listing, err := fsys.ListEntities(simplefs.Root())
		require.NoError(t, err)
		assert.Equal(t, []string{"/a/", "/b.txt", "/c/"}, listing.Strings())
		assert.True(t, listing.Contains(p("/b.txt")))
		assert.False(t, listing.Contains(p("/b.txt/")))
	})
}
