package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/simplefs/pkg/simplefs"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// app carries the configuration and filesystem shared by the subcommands
// of one invocation.
type app struct {
	cfg  *Config
	fsys simplefs.FileSystem
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "simplefs",
		Short: "Inspect and edit a virtual filesystem",
		Long: `simplefs operates on a virtual filesystem backed either by a directory of the
host (--root) or by an in-memory tree (--memory), optionally seeded from a
manifest (--seed). Paths are virtual: "/" is the filesystem root and a
trailing "/" marks a directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().String("root", "", "host directory used as the filesystem root (env SIMPLEFS_ROOT)")
	cmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (env SIMPLEFS_LOG_LEVEL)")
	cmd.PersistentFlags().Bool("memory", false, "use an in-memory filesystem instead of the host (env SIMPLEFS_MEMORY)")
	cmd.PersistentFlags().String("seed", "", "manifest file applied before the command runs (env SIMPLEFS_SEED)")

	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newLsCommand(a))
	cmd.AddCommand(newTreeCommand(a))
	cmd.AddCommand(newCatCommand(a))
	cmd.AddCommand(newMkdirCommand(a))
	cmd.AddCommand(newWriteCommand(a))
	cmd.AddCommand(newRmCommand(a))
	cmd.AddCommand(newStatCommand(a))
	cmd.AddCommand(newGlobCommand(a))
	cmd.AddCommand(newApplyCommand(a))
	cmd.AddCommand(newExportCommand(a))

	return cmd
}

// setup merges environment and flags, configures logging and opens the
// filesystem.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("memory") {
		cfg.Memory, _ = flags.GetBool("memory")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetString("seed")
	}

	level, err := simplefs.LogLevelFromString(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	simplefs.SetLogger(simplefs.NewLogger(cmd.ErrOrStderr(), level))

	if cfg.Memory {
		a.fsys = simplefs.NewInMemory()
	} else {
		phys, err := simplefs.NewPhysical(cfg.Root)
		if err != nil {
			return err
		}
		a.fsys = phys
	}

	if cfg.Seed != "" {
		m, err := readManifest(cfg.Seed)
		if err != nil {
			return err
		}
		if err := simplefs.Apply(a.fsys, m); err != nil {
			return fmt.Errorf("failed to seed filesystem: %w", err)
		}
	}

	a.cfg = cfg
	simplefs.Logger().Debug().
		Str("root", cfg.Root).
		Bool("memory", cfg.Memory).
		Str("seed", cfg.Seed).
		Msg("filesystem ready")
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of simplefs`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "simplefs version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
