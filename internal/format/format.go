// Package format applies the external code-formatting pass to every
// recognized source file under a root. It is decoupled from the sweep: its
// outcome never feeds back into build or analysis.
package format

import (
	"context"
	"fmt"
	"io"

	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/discover"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
	"github.com/lvezzaro/buildsweep/internal/tui"
)

// Batch size per formatter invocation, keeping argv well under platform limits.
const filesPerInvocation = 64

// Formatter runs clang-format in-place over discovered source files.
type Formatter struct {
	fs     filesystem.FileSystem
	runner toolchain.Runner
	cfg    *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing progress to out.
func NewFormatter(fs filesystem.FileSystem, runner toolchain.Runner, cfg *config.Config, out io.Writer) *Formatter {
	return &Formatter{
		fs:     fs,
		runner: runner,
		cfg:    cfg,
		out:    out,
	}
}

// Run formats every .c/.h file under root and returns how many files were
// handed to the formatter. Per-batch failures are warned about and skipped;
// only an invalid root is an error.
func (f *Formatter) Run(ctx context.Context, root string) (int, error) {
	files, err := discover.SourceFiles(f.fs, root, f.cfg.BuildDirName)
	if err != nil {
		return 0, err
	}

	if len(files) == 0 {
		fmt.Fprintf(f.out, "%s\n", tui.WarnStyle.Render("no source files to format under "+root))
		return 0, nil
	}

	formatted := 0
	for start := 0; start < len(files); start += filesPerInvocation {
		end := start + filesPerInvocation
		if end > len(files) {
			end = len(files)
		}
		batch := files[start:end]

		args := append([]string{"-i", "--style=file", "--fallback-style=LLVM"}, batch...)
		result, err := f.runner.Run(ctx, root, f.cfg.ClangFormatBin, args...)
		if err != nil {
			fmt.Fprintf(f.out, "%s\n", tui.WarnStyle.Render(fmt.Sprintf("formatter could not run: %v", err)))
			continue
		}
		if result.ExitCode != 0 {
			fmt.Fprintf(f.out, "%s\n", tui.WarnStyle.Render(fmt.Sprintf("formatter exited %d\n%s", result.ExitCode, result.Output)))
			continue
		}
		formatted += len(batch)
	}

	fmt.Fprintf(f.out, "%s\n", tui.SuccessStyle.Render(fmt.Sprintf("formatted %d file(s)", formatted)))
	return formatted, nil
}
