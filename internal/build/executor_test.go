package build

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/models"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
)

func testConfig() *config.Config {
	return &config.Config{
		CMakeBin:     "cmake",
		BuildDirName: "build",
		Jobs:         2,
	}
}

func testUnit(fs *filesystem.MockFileSystem) *models.Unit {
	fs.AddFile("/codebase/app/CMakeLists.txt", []byte("project(app)"))
	return models.NewUnit("/codebase/app", "/codebase/app/CMakeLists.txt")
}

func TestBuild_Succeeds(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	unit := testUnit(fs)
	runner := toolchain.NewMockRunner()

	outcome := NewExecutor(fs, runner, testConfig()).Build(context.Background(), unit)
	require.True(t, outcome.Succeeded)

	calls := runner.CallsFor("cmake")
	require.Len(t, calls, 2)
	require.Equal(t, []string{"-S", "/codebase/app", "-B", "/codebase/app/build", "-DCMAKE_EXPORT_COMPILE_COMMANDS=ON"}, calls[0].Args)
	require.Equal(t, []string{"--build", "/codebase/app/build", "--parallel", "2"}, calls[1].Args)
}

func TestBuild_ResetsBuildDirectory(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	unit := testUnit(fs)
	fs.AddFile("/codebase/app/build/stale.o", []byte("stale"))
	fs.AddFile("/codebase/app/build/compile_commands.json", []byte("old manifest"))

	runner := toolchain.NewMockRunner()
	outcome := NewExecutor(fs, runner, testConfig()).Build(context.Background(), unit)
	require.True(t, outcome.Succeeded)

	require.False(t, fs.Exists("/codebase/app/build/stale.o"))
	require.False(t, fs.Exists("/codebase/app/build/compile_commands.json"))
	require.True(t, fs.Exists("/codebase/app/build"))
}

func TestBuild_ConfigureFailureIsData(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	unit := testUnit(fs)

	runner := toolchain.NewMockRunner()
	runner.Script("cmake", toolchain.Result{ExitCode: 1, Output: "CMake Error: missing project()"}, nil)

	outcome := NewExecutor(fs, runner, testConfig()).Build(context.Background(), unit)
	require.False(t, outcome.Succeeded)
	require.Contains(t, outcome.Diagnostic, "configure step exited 1")
	require.Contains(t, outcome.Diagnostic, "CMake Error")

	// The compile step must not run after a failed configure.
	require.Len(t, runner.CallsFor("cmake"), 1)
}

func TestBuild_CompileFailureIsData(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	unit := testUnit(fs)

	runner := toolchain.NewMockRunner()
	runner.Script("cmake", toolchain.Result{ExitCode: 0}, nil)
	runner.Script("cmake", toolchain.Result{ExitCode: 2, Output: "error: expected ';'"}, nil)

	outcome := NewExecutor(fs, runner, testConfig()).Build(context.Background(), unit)
	require.False(t, outcome.Succeeded)
	require.Contains(t, outcome.Diagnostic, "build step exited 2")
	require.Contains(t, outcome.Diagnostic, "expected ';'")
}

func TestBuild_MissingToolIsData(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	unit := testUnit(fs)

	runner := toolchain.NewMockRunner()
	runner.SetMissing("cmake")

	outcome := NewExecutor(fs, runner, testConfig()).Build(context.Background(), unit)
	require.False(t, outcome.Succeeded)
	require.Contains(t, outcome.Diagnostic, "configure step could not run")
}
