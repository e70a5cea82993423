package main

import (
	"fmt"
	"io"
	"log"

	"github.com/arthur-debert/simplefs/pkg/simplefs"
)

// Example walking through the contract on the in-memory backend
func main() {
	fsys := simplefs.NewInMemory()

	fmt.Println("=== Directories ===")

	// CreateFullPath creates every missing level
	project, err := fsys.CreateFullPath("project/src")
	if err != nil {
		log.Fatalf("CreateFullPath failed: %v", err)
	}
	fmt.Printf("✓ Created %s\n", project)

	// CreateDirectory needs an existing parent
	if err := fsys.CreateDirectory(simplefs.MustParse("/missing/child/")); err != nil {
		fmt.Printf("✗ CreateDirectory without parent: %v\n", err)
	}

	fmt.Println("\n=== Files ===")

	mainFile, err := project.AppendFile("main.go")
	if err != nil {
		log.Fatalf("AppendFile failed: %v", err)
	}
	if err := fsys.WriteTextFile(mainFile, "package main\n"); err != nil {
		log.Fatalf("WriteTextFile failed: %v", err)
	}
	fmt.Printf("✓ Wrote %s\n", mainFile)

	// Streams share the file content but keep their own position
	stream, err := fsys.OpenFile(mainFile, simplefs.AccessReadWrite)
	if err != nil {
		log.Fatalf("OpenFile failed: %v", err)
	}
	if _, err := stream.Seek(0, io.SeekEnd); err != nil {
		log.Fatalf("Seek failed: %v", err)
	}
	if _, err := io.WriteString(stream, "\nfunc main() {}\n"); err != nil {
		log.Fatalf("Write failed: %v", err)
	}
	_ = stream.Close()

	text, err := fsys.ReadAllText(mainFile)
	if err != nil {
		log.Fatalf("ReadAllText failed: %v", err)
	}
	fmt.Printf("✓ %s now holds %d bytes\n", mainFile, len(text))

	fmt.Println("\n=== Tree ===")
	err = simplefs.Walk(fsys, simplefs.Root(), func(p simplefs.Path, err error) error {
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	})
	if err != nil {
		log.Fatalf("Walk failed: %v", err)
	}

	fmt.Println("\n=== Manifest ===")
	snapshot, err := simplefs.Snapshot(fsys, simplefs.Root())
	if err != nil {
		log.Fatalf("Snapshot failed: %v", err)
	}
	data, err := snapshot.Marshal(simplefs.FormatYAML)
	if err != nil {
		log.Fatalf("Marshal failed: %v", err)
	}
	fmt.Print(string(data))

	fmt.Println("\n=== Delete ===")
	if err := fsys.Delete(simplefs.MustParse("/project/")); err != nil {
		log.Fatalf("Delete failed: %v", err)
	}
	fmt.Printf("✓ /project/ removed, main.go exists: %v\n", fsys.Exists(mainFile))
}
