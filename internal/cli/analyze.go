package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/sweep"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
)

// AnalyzeOneCommand handles the analyze-one command
type AnalyzeOneCommand struct {
	fs     filesystem.FileSystem
	runner toolchain.Runner
	v      *viper.Viper

	stdoutWriter io.Writer
}

// NewAnalyzeOneCommand creates a new analyze-one command
func NewAnalyzeOneCommand(fs filesystem.FileSystem, runner toolchain.Runner, v *viper.Viper) *cobra.Command {
	cmd := &AnalyzeOneCommand{
		fs:     fs,
		runner: runner,
		v:      v,
	}

	cobraCmd := &cobra.Command{
		Use:   "analyze-one <unitDir>",
		Short: "Locate the manifest and run analysis for an already-built unit",
		Long: `Skips the build step: the unit is assumed to be built and its
compile_commands.json in place. Useful when iterating on analysis findings
without paying for a clean rebuild.`,
		Example: `  buildsweep analyze-one ./codebase/sensors/imu`,
		Args:    cobra.ExactArgs(1),
		RunE:    cmd.Run,
	}

	return cobraCmd
}

// Run executes the analyze-one command
func (c *AnalyzeOneCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	out := c.output(cmd)
	cfg := config.Load(c.v)

	unitDir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve unit directory: %w", err)
	}

	orchestrator := sweep.NewOrchestrator(c.fs, c.runner, cfg, out)
	result, err := orchestrator.AnalyzeOne(ctx, unitDir)
	if err != nil {
		return err
	}

	if result.Failed() {
		return fmt.Errorf("%w: %s", ErrUnitsFailed, result.Unit.Name)
	}
	return nil
}

func (c *AnalyzeOneCommand) output(cmd *cobra.Command) io.Writer {
	if c.stdoutWriter != nil {
		return c.stdoutWriter
	}
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}
