package simplefs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/simplefs/pkg/simplefs"
	"github.com/arthur-debert/simplefs/pkg/simplefs/testutil"
)

func TestInspect(t *testing.T) {
	fsys := simplefs.NewInMemory()
	testutil.SetupTestFiles(t, fsys, map[string]string{
		"/hello.txt": "hello",
		"/data.json": `{"key": "value"}`,
	})

	png := simplefs.MustParse("/image.png")
	stream, err := fsys.CreateFile(png)
	require.NoError(t, err)
	_, err = stream.Write([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	require.NoError(t, stream.Close())

	t.Run("text", func(t *testing.T) {
		info, err := simplefs.Inspect(fsys, simplefs.MustParse("/hello.txt"))
		require.NoError(t, err)
		assert.Equal(t, int64(5), info.Size)
		assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", info.MD5)
		assert.True(t, strings.HasPrefix(info.MIMEType, "text/plain"), info.MIMEType)
		assert.True(t, info.IsText)
	})

	t.Run("json", func(t *testing.T) {
		info, err := simplefs.Inspect(fsys, simplefs.MustParse("/data.json"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(info.MIMEType, "application/json"), info.MIMEType)
		assert.True(t, info.IsText)
	})

	t.Run("binary", func(t *testing.T) {
		info, err := simplefs.Inspect(fsys, png)
		require.NoError(t, err)
		assert.Equal(t, "image/png", info.MIMEType)
		assert.Equal(t, ".png", info.Extension)
		assert.False(t, info.IsText)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := simplefs.Inspect(fsys, simplefs.Root())
		assert.ErrorIs(t, err, simplefs.ErrInvalidPathKind)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := simplefs.Inspect(fsys, simplefs.MustParse("/missing"))
		assert.ErrorIs(t, err, simplefs.ErrNotFound)
	})
}
