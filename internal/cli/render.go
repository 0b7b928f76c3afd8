package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lvezzaro/buildsweep/internal/analysis"
	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/discover"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/report"
)

// RenderReportsCommand handles the render-reports command
type RenderReportsCommand struct {
	fs filesystem.FileSystem
	v  *viper.Viper

	stdoutWriter io.Writer
}

// NewRenderReportsCommand creates a new render-reports command
func NewRenderReportsCommand(fs filesystem.FileSystem, v *viper.Viper) *cobra.Command {
	cmd := &RenderReportsCommand{
		fs: fs,
		v:  v,
	}

	cobraCmd := &cobra.Command{
		Use:   "render-reports <root>",
		Short: "Convert analysis XML reports under a root into HTML pages",
		Long: `Finds every per-unit analysis XML report under the root, renders it as a
styled HTML table with MISRA severities applied, and removes the source XML.
Reports that fail to parse are warned about and skipped.`,
		Example: `  buildsweep render-reports --rules misra_c_2012_headlines.txt ./codebase`,
		Args:    cobra.ExactArgs(1),
		RunE:    cmd.Run,
	}

	return cobraCmd
}

// Run executes the render-reports command
func (c *RenderReportsCommand) Run(cmd *cobra.Command, args []string) error {
	out := c.output(cmd)
	cfg := config.Load(c.v)

	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}

	info, err := c.fs.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", discover.ErrInvalidRoot, root)
	}

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
	fmt.Fprintf(out, "rendered %d report(s)\n", len(rendered))
	return nil
}

func (c *RenderReportsCommand) output(cmd *cobra.Command) io.Writer {
	if c.stdoutWriter != nil {
		return c.stdoutWriter
	}
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}
