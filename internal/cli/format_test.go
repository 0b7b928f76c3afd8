package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvezzaro/buildsweep/internal/discover"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
)

func TestFormatAll_FormatsSources(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/codebase/unitA/main.c", []byte("int main(){}"))
	fs.AddFile("/codebase/unitA/motor.h", []byte("void spin(void);"))
	runner := toolchain.NewMockRunner()

	var buf bytes.Buffer
	cmd := &FormatAllCommand{
		fs:           fs,
		runner:       runner,
		v:            testViper(),
		stdoutWriter: &buf,
	}

	require.NoError(t, cmd.Run(nil, []string{"/codebase"}))
	require.Contains(t, buf.String(), "formatted 2 file(s)")

	calls := runner.CallsFor("clang-format")
	require.Len(t, calls, 1)
	require.Contains(t, calls[0].Args, "/codebase/unitA/main.c")
	require.Contains(t, calls[0].Args, "/codebase/unitA/motor.h")
}

func TestFormatAll_InvalidRoot(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	runner := toolchain.NewMockRunner()

	var buf bytes.Buffer
	cmd := &FormatAllCommand{
		fs:           fs,
		runner:       runner,
		v:            testViper(),
		stdoutWriter: &buf,
	}

	err := cmd.Run(nil, []string{"/missing"})
	require.ErrorIs(t, err, discover.ErrInvalidRoot)
}
