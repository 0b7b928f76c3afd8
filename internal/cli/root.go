// Package cli wires the buildsweep commands. Each command is a struct holding
// its injected collaborators so tests can run it against mocks.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/discover"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
)

// ErrUnitsFailed marks a completed run in which at least one unit did not
// pass. It is distinct from ErrInvalidRoot so CI can tell the two apart by
// exit code.
var ErrUnitsFailed = errors.New("one or more units failed")

// Exit codes, stable for CI consumers.
const (
	ExitOK          = 0
	ExitUnitsFailed = 1
	ExitInvalidRoot = 2
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand(fs filesystem.FileSystem, runner toolchain.Runner, v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "buildsweep",
		Short: "Build and static-analysis sweeps over CMake unit trees",
		Long: `buildsweep discovers every CMake unit under a root directory, builds each
one from clean state, runs cppcheck with the MISRA addon against the build's
compile command manifest, and aggregates pass/fail into one report.

A failing unit never aborts the sweep; it is recorded and the sweep moves on.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default .buildsweep.yaml in . or $HOME)")
	rootCmd.PersistentFlags().Int(config.KeyJobs, 0, "Within-unit parallelism (default: logical CPU count)")
	rootCmd.PersistentFlags().Duration(config.KeyTimeout, 0, "Per-unit timeout (0 disables)")
	rootCmd.PersistentFlags().String(config.KeyRulesPath, "", "MISRA headline file for severity mapping")
	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag(config.KeyJobs, rootCmd.PersistentFlags().Lookup(config.KeyJobs))
	_ = v.BindPFlag(config.KeyTimeout, rootCmd.PersistentFlags().Lookup(config.KeyTimeout))
	_ = v.BindPFlag(config.KeyRulesPath, rootCmd.PersistentFlags().Lookup(config.KeyRulesPath))

	rootCmd.AddCommand(NewSweepCommand(fs, runner, v))
	rootCmd.AddCommand(NewAnalyzeOneCommand(fs, runner, v))
	rootCmd.AddCommand(NewFormatAllCommand(fs, runner, v))
	rootCmd.AddCommand(NewRenderReportsCommand(fs, v))

	return rootCmd
}

// initConfig reads the config file and environment into v.
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	config.SetDefaults(v)

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".buildsweep")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("BUILDSWEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// Execute runs the CLI and maps the outcome to an exit code.
func Execute() int {
	fs := filesystem.NewOSFileSystem()
	runner := toolchain.NewOSRunner()
	v := viper.New()

	rootCmd := NewRootCommand(fs, runner, v)

	err := rootCmd.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, discover.ErrInvalidRoot):
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitInvalidRoot
	case errors.Is(err, ErrUnitsFailed):
		fmt.Fprintln(os.Stderr, err)
		return ExitUnitsFailed
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitUnitsFailed
	}
}
