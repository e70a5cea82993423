package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/simplefs/pkg/simplefs"
)

// dirArg parses text as a directory path; "docs" and "docs/" both name the
// directory /docs/.
func dirArg(args []string) (simplefs.Path, error) {
	if len(args) == 0 {
		return simplefs.Root(), nil
	}
	p, err := simplefs.Parse(args[0])
	if err != nil {
		return simplefs.Path{}, err
	}
	return p.AsDirectory(), nil
}

// entryArg parses text and, when it names no file but a directory with the
// same segments exists, returns the directory.
func (a *app) entryArg(text string) (simplefs.Path, error) {
	p, err := simplefs.Parse(text)
	if err != nil {
		return simplefs.Path{}, err
	}
	if p.IsFile() && !a.fsys.Exists(p) && a.fsys.Exists(p.AsDirectory()) {
		return p.AsDirectory(), nil
	}
	return p, nil
}

func readManifest(hostPath string) (*simplefs.Manifest, error) {
	data, err := os.ReadFile(hostPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file %s: %w", hostPath, err)
	}
	m, err := simplefs.LoadManifest(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", hostPath, err)
	}
	return m, nil
}

func newLsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [dir]",
		Short: "List the entries of a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dirArg(args)
			if err != nil {
				return err
			}
			listing, err := a.fsys.ListEntities(dir)
			if err != nil {
				return err
			}
			for p := range listing.All() {
				name := p.Name()
				if p.IsDirectory() {
					name += "/"
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newTreeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [dir]",
		Short: "Print a directory and everything below it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dirArg(args)
			if err != nil {
				return err
			}
			return simplefs.Walk(a.fsys, dir, func(p simplefs.Path, err error) error {
				if err != nil {
					return err
				}
				if p == dir {
					fmt.Fprintln(cmd.OutOrStdout(), p)
					return nil
				}
				name := p.Name()
				if p.IsDirectory() {
					name += "/"
				}
				indent := strings.Repeat("  ", p.Depth()-dir.Depth())
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", indent, name)
				return nil
			})
		},
	}
}

func newCatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file>",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := simplefs.Parse(args[0])
			if err != nil {
				return err
			}
			text, err := a.fsys.ReadAllText(p)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newMkdirCommand(a *app) *cobra.Command {
	var parents bool

	cmd := &cobra.Command{
		Use:   "mkdir <dir>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if parents {
				dir, err := a.fsys.CreateFullPath(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			}
			dir, err := dirArg(args)
			if err != nil {
				return err
			}
			if err := a.fsys.CreateDirectory(dir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing parent directories")

	return cmd
}

func newWriteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "write <file> [text]",
		Short: "Write text to a file, reading standard input when no text is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := simplefs.Parse(args[0])
			if err != nil {
				return err
			}
			text := ""
			if len(args) == 2 {
				text = args[1]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read standard input: %w", err)
				}
				text = string(data)
			}
			return a.fsys.WriteTextFile(p, text)
		},
	}
}

func newRmCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a file, or a directory with everything below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.entryArg(args[0])
			if err != nil {
				return err
			}
			return a.fsys.Delete(p)
		},
	}
}

func newStatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <file>",
		Short: "Show size, checksum and content type of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := simplefs.Parse(args[0])
			if err != nil {
				return err
			}
			info, err := simplefs.Inspect(a.fsys, p)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(info)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newGlobCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "glob <pattern>",
		Short: "List paths matching a pattern (** crosses directories)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := simplefs.Glob(a.fsys, args[0])
			if err != nil {
				return err
			}
			for _, p := range matches {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func newApplyCommand(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <manifest-file>",
		Short: "Create the directories and files described by a manifest",
		Long:  "Create the directories and files of a YAML or JSON manifest, parents first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readManifest(args[0])
			if err != nil {
				return err
			}

			if dryRun {
				plan, err := m.Plan()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "DRY RUN: %d entries\n", len(plan))
				for i, p := range plan {
					fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, p)
				}
				return nil
			}

			if err := simplefs.Apply(a.fsys, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d entries\n", len(m.Entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the creation order without making changes")

	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "Write a manifest of a directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dirArg(args)
			if err != nil {
				return err
			}
			m, err := simplefs.Snapshot(a.fsys, dir)
			if err != nil {
				return err
			}
			data, err := m.Marshal(simplefs.Format(format))
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write manifest file %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(m.Entries), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "manifest format: yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: standard output)")

	return cmd
}
