package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/discover"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/models"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
)

func testViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyJobs, 2)
	return v
}

// sweepFixture returns mocks for a two-unit tree whose builds emit the
// compile command manifest as a side effect of the configure step.
func sweepFixture() (*filesystem.MockFileSystem, *toolchain.MockRunner) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/codebase/unitA/CMakeLists.txt", []byte("project(unitA)"))
	fs.AddFile("/codebase/unitB/CMakeLists.txt", []byte("project(unitB)"))

	runner := toolchain.NewMockRunner()
	runner.OnRun = func(inv toolchain.Invocation) {
		if inv.Name == "cmake" && len(inv.Args) > 0 && inv.Args[0] == "-S" {
			fs.AddFile(filepath.Join(inv.Dir, "build", "compile_commands.json"), []byte("[]"))
		}
	}

	return fs, runner
}

func TestSweep_AllUnitsPass(t *testing.T) {
	fs, runner := sweepFixture()

	var buf bytes.Buffer
	cmd := &SweepCommand{
		fs:           fs,
		runner:       runner,
		v:            testViper(),
		format:       "text",
		stdoutWriter: &buf,
	}

	err := cmd.Run(nil, []string{"/codebase"})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "SUCCESS (2)")
	require.Contains(t, buf.String(), "FAILED  (0)")
}

func TestSweep_FailingUnitSetsErrUnitsFailed(t *testing.T) {
	fs, runner := sweepFixture()
	runner.Script("cmake", toolchain.Result{ExitCode: 1, Output: "CMake Error"}, nil)

	var buf bytes.Buffer
	cmd := &SweepCommand{
		fs:           fs,
		runner:       runner,
		v:            testViper(),
		format:       "text",
		stdoutWriter: &buf,
	}

	err := cmd.Run(nil, []string{"/codebase"})
	require.ErrorIs(t, err, ErrUnitsFailed)
	require.Contains(t, err.Error(), "unitA")

	// The failing unit did not stop the second one.
	require.Contains(t, buf.String(), "SUCCESS (1)")
}

func TestSweep_JSONFormat(t *testing.T) {
	fs, runner := sweepFixture()

	var buf bytes.Buffer
	cmd := &SweepCommand{
		fs:           fs,
		runner:       runner,
		v:            testViper(),
		format:       "json",
		stdoutWriter: &buf,
	}

	require.NoError(t, cmd.Run(nil, []string{"/codebase"}))

	// The JSON document starts after the progress trace.
	out := buf.String()
	start := bytes.IndexByte(buf.Bytes(), '{')
	require.GreaterOrEqual(t, start, 0)

	var rep models.SweepReport
	require.NoError(t, json.Unmarshal([]byte(out[start:]), &rep))
	require.Equal(t, "/codebase", rep.Root)
	require.Len(t, rep.Results, 2)
}

func TestSweep_HTMLRendering(t *testing.T) {
	fs, runner := sweepFixture()
	// Fake the analyzer writing a report for unitA.
	base := runner.OnRun
	runner.OnRun = func(inv toolchain.Invocation) {
		base(inv)
		if inv.Name == "cppcheck" && inv.Dir == "/codebase/unitA" {
			fs.AddFile("/codebase/unitA/cppcheck_misra_results.xml", []byte(`<results><errors></errors></results>`))
		}
	}

	var buf bytes.Buffer
	cmd := &SweepCommand{
		fs:           fs,
		runner:       runner,
		v:            testViper(),
		format:       "text",
		html:         true,
		stdoutWriter: &buf,
	}

	require.NoError(t, cmd.Run(nil, []string{"/codebase"}))
	require.Contains(t, buf.String(), "generated /codebase/unitA/cppcheck_misra_results.html")
	require.True(t, fs.Exists("/codebase/unitA/cppcheck_misra_results.html"))
	require.False(t, fs.Exists("/codebase/unitA/cppcheck_misra_results.xml"))
}

func TestSweep_InvalidRoot(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	runner := toolchain.NewMockRunner()

	var buf bytes.Buffer
	cmd := &SweepCommand{
		fs:           fs,
		runner:       runner,
		v:            testViper(),
		format:       "text",
		stdoutWriter: &buf,
	}

	err := cmd.Run(nil, []string{"/missing"})
	require.ErrorIs(t, err, discover.ErrInvalidRoot)
}
