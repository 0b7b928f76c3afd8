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
	"github.com/lvezzaro/buildsweep/internal/format"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
)

// FormatAllCommand handles the format-all command
type FormatAllCommand struct {
	fs     filesystem.FileSystem
	runner toolchain.Runner
	v      *viper.Viper

	stdoutWriter io.Writer
}

// NewFormatAllCommand creates a new format-all command
func NewFormatAllCommand(fs filesystem.FileSystem, runner toolchain.Runner, v *viper.Viper) *cobra.Command {
	cmd := &FormatAllCommand{
		fs:     fs,
		runner: runner,
		v:      v,
	}

	cobraCmd := &cobra.Command{
		Use:   "format-all <root>",
		Short: "Apply clang-format in place to all C sources under a root",
		Long: `Formats every .c and .h file under the root, skipping build output,
VCS metadata and gitignored paths. Independent of the sweep: formatting
neither requires nor affects build and analysis results.`,
		Example: `  buildsweep format-all ./codebase`,
		Args:    cobra.ExactArgs(1),
		RunE:    cmd.Run,
	}

	return cobraCmd
}

// Run executes the format-all command
func (c *FormatAllCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	out := c.output(cmd)
	cfg := config.Load(c.v)

	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}

	formatter := format.NewFormatter(c.fs, c.runner, cfg, out)
	_, err = formatter.Run(ctx, root)
	return err
}

func (c *FormatAllCommand) output(cmd *cobra.Command) io.Writer {
	if c.stdoutWriter != nil {
		return c.stdoutWriter
	}
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}
