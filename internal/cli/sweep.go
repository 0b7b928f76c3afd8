package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	huh "github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lvezzaro/buildsweep/internal/analysis"
	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/models"
	"github.com/lvezzaro/buildsweep/internal/report"
	"github.com/lvezzaro/buildsweep/internal/sweep"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
	"github.com/lvezzaro/buildsweep/internal/tui"
)

// SweepCommand handles the sweep command
type SweepCommand struct {
	fs     filesystem.FileSystem
	runner toolchain.Runner
	v      *viper.Viper

	format      string
	html        bool
	interactive bool

	// stdoutWriter overrides the output stream in tests
	stdoutWriter io.Writer
}

// NewSweepCommand creates a new sweep command
func NewSweepCommand(fs filesystem.FileSystem, runner toolchain.Runner, v *viper.Viper) *cobra.Command {
	cmd := &SweepCommand{
		fs:     fs,
		runner: runner,
		v:      v,
	}

	cobraCmd := &cobra.Command{
		Use:   "sweep <root>",
		Short: "Discover, build and analyze every unit under a root",
		Long: `Walks the root directory for units (directories directly containing
CMakeLists.txt), builds each from a clean build directory, locates its
compile_commands.json and runs cppcheck with the MISRA addon against it.

Per-unit failures are recorded and the sweep continues; the exit code
reflects the aggregate result.`,
		Example: `  # Sweep a codebase
  buildsweep sweep ./codebase

  # Limit build/analyzer parallelism and bound each unit to two minutes
  buildsweep sweep --jobs 4 --timeout 2m ./codebase

  # Machine-readable report plus HTML finding pages
  buildsweep sweep --format json --html ./codebase`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.format, "format", "text", "Report format: text or json")
	cobraCmd.Flags().BoolVar(&cmd.html, "html", false, "Render HTML finding pages after the sweep")
	cobraCmd.Flags().BoolVar(&cmd.interactive, "interactive", false, "Pick the units to sweep interactively")

	return cobraCmd
}

// Run executes the sweep command
func (c *SweepCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	out := c.output(cmd)
	cfg := config.Load(c.v)

	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}

	orchestrator := sweep.NewOrchestrator(c.fs, c.runner, cfg, out)
	if c.interactive {
		orchestrator.WithSelector(func(units []*models.Unit) ([]*models.Unit, error) {
			selected, selErr := tui.SelectUnits(units)
			if errors.Is(selErr, huh.ErrUserAborted) {
				return nil, fmt.Errorf("unit selection aborted")
			}
			return selected, selErr
		})
	}

	rep, err := orchestrator.Run(ctx, root)
	if err != nil {
		return err
	}

	if c.format == "json" {
		if err := report.WriteJSON(out, rep); err != nil {
			return err
		}
	} else {
		if err := report.WriteSummary(out, rep); err != nil {
			return err
		}
	}

	if c.html {
		if err := c.renderHTML(out, cfg, root); err != nil {
			return err
		}
	}

	if !rep.Passed() {
		return fmt.Errorf("%w: %s", ErrUnitsFailed, strings.Join(rep.FailedUnits(), ", "))
	}
	return nil
}

func (c *SweepCommand) renderHTML(out io.Writer, cfg *config.Config, root string) error {
	rules, err := analysis.LoadRules(c.fs, cfg.RulesPath)
	if err != nil {
		return err
	}

	renderer := report.NewHTMLRenderer(c.fs, rules, out)
	rendered, err := renderer.RenderAll(root, cfg.ReportName)
	if err != nil {
		return err
	}
	for _, path := range rendered {
		fmt.Fprintf(out, "generated %s\n", path)
	}
	return nil
}

func (c *SweepCommand) output(cmd *cobra.Command) io.Writer {
	if c.stdoutWriter != nil {
		return c.stdoutWriter
	}
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}

// commandContext tolerates commands run outside cobra.Execute (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil {
		if ctx := cmd.Context(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}
