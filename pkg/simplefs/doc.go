// Package simplefs provides a virtual filesystem: one contract for file and
// directory operations, implemented by an in-memory tree and by a directory
// of the host operating system, both addressed with normalized
// OS-independent paths.
//
// Paths are built with Parse or Root and carry their kind: "/a/b/" is a
// directory and "/a/b" is a file.
//
//	fsys := simplefs.NewInMemory()
//	dir, _ := fsys.CreateFullPath("docs/notes")
//	file, _ := dir.AppendFile("todo.txt")
//	_ = fsys.WriteTextFile(file, "buy milk")
//	text, _ := fsys.ReadAllText(file)
//
// On top of the contract the package offers tree utilities that work with
// any backend: Walk and Glob for traversal, Snapshot and Apply for
// declarative manifests, and Inspect for content metadata.
package simplefs
