package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/discover"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
)

const renderableXML = `<results>
  <errors>
    <error id="misra-c2012-10.3" severity="style" msg="Implicit conversion">
      <location file="src/motor.c" line="42" column="9"/>
    </error>
  </errors>
</results>`

func TestRenderReports_RendersAndCounts(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/codebase/unitA/cppcheck_misra_results.xml", []byte(renderableXML))
	fs.AddFile("/codebase/unitB/cppcheck_misra_results.xml", []byte(renderableXML))

	var buf bytes.Buffer
	cmd := &RenderReportsCommand{
		fs:           fs,
		v:            testViper(),
		stdoutWriter: &buf,
	}

	require.NoError(t, cmd.Run(nil, []string{"/codebase"}))
	require.Contains(t, buf.String(), "generated /codebase/unitA/cppcheck_misra_results.html")
	require.Contains(t, buf.String(), "rendered 2 report(s)")
	require.False(t, fs.Exists("/codebase/unitA/cppcheck_misra_results.xml"))
}

func TestRenderReports_AppliesRuleSeverities(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/codebase/unitA/cppcheck_misra_results.xml", []byte(renderableXML))
	fs.AddFile("/rules/misra_c_2012_headlines.txt", []byte("Rule 10.3\tRequired\n"))

	v := testViper()
	v.Set(config.KeyRulesPath, "/rules/misra_c_2012_headlines.txt")

	var buf bytes.Buffer
	cmd := &RenderReportsCommand{
		fs:           fs,
		v:            v,
		stdoutWriter: &buf,
	}

	require.NoError(t, cmd.Run(nil, []string{"/codebase"}))

	rendered, err := fs.ReadFile("/codebase/unitA/cppcheck_misra_results.html")
	require.NoError(t, err)
	require.Contains(t, string(rendered), `class="required"`)
}

func TestRenderReports_InvalidRoot(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	var buf bytes.Buffer
	cmd := &RenderReportsCommand{
		fs:           fs,
		v:            testViper(),
		stdoutWriter: &buf,
	}

	err := cmd.Run(nil, []string{"/missing"})
	require.ErrorIs(t, err, discover.ErrInvalidRoot)
}
