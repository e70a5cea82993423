// Package testutil holds test helpers and a behavioural suite that every
// simplefs backend must pass.
package testutil

import (
	"runtime"
	"testing"

	"github.com/arthur-debert/simplefs/pkg/simplefs"
)

// CreateTestFile is a helper to create a file with content
func CreateTestFile(t testing.TB, fsys simplefs.FileSystem, path, content string) simplefs.Path {
	t.Helper()
	p, err := simplefs.Parse(path)
	if err != nil {
		t.Fatalf("Invalid test path %q: %v", path, err)
	}
	if err := fsys.WriteTextFile(p, content); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
	return p
}

// CreateTestDir is a helper to create a directory and its parents
func CreateTestDir(t testing.TB, fsys simplefs.FileSystem, path string) simplefs.Path {
	t.Helper()
	p, err := fsys.CreateFullPath(path)
	if err != nil {
		t.Fatalf("Failed to create test directory %s: %v", path, err)
	}
	return p
}

// SetupTestFiles creates multiple test files from a map, creating parent
// directories as needed.
func SetupTestFiles(t testing.TB, fsys simplefs.FileSystem, files map[string]string) {
	t.Helper()
	for path, content := range files {
		p := simplefs.MustParse(path)
		if !p.Parent().IsRoot() {
			CreateTestDir(t, fsys, p.Parent().String())
		}
		CreateTestFile(t, fsys, path, content)
	}
}

// AssertFileContent verifies that a file has the expected content
func AssertFileContent(t testing.TB, fsys simplefs.FileSystem, path, expected string) {
	t.Helper()
	actual, err := fsys.ReadAllText(simplefs.MustParse(path))
	if err != nil {
		t.Errorf("Failed to read file %s: %v", path, err)
		return
	}
	if actual != expected {
		t.Errorf("File %s content mismatch:\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertExists verifies that a path exists with the kind it denotes
func AssertExists(t testing.TB, fsys simplefs.FileSystem, path string) {
	t.Helper()
	if !fsys.Exists(simplefs.MustParse(path)) {
		t.Errorf("Expected %s to exist, but it does not", path)
	}
}

// AssertNotExists verifies that a path does not exist
func AssertNotExists(t testing.TB, fsys simplefs.FileSystem, path string) {
	t.Helper()
	if fsys.Exists(simplefs.MustParse(path)) {
		t.Errorf("Expected %s to not exist, but it does", path)
	}
}

// NewRealFileSystem returns a physical backend rooted in a fresh temporary
// directory. Tests are skipped on Windows.
func NewRealFileSystem(t testing.TB) simplefs.FileSystem {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("real filesystem tests run on Unix only")
	}
	fsys, err := simplefs.NewPhysical(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create physical filesystem: %v", err)
	}
	return fsys
}
