package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg := Load(v)
	require.Equal(t, "cmake", cfg.CMakeBin)
	require.Equal(t, "cppcheck", cfg.CppcheckBin)
	require.Equal(t, "clang-format", cfg.ClangFormatBin)
	require.Equal(t, "CMakeLists.txt", cfg.MarkerName)
	require.Equal(t, "build", cfg.BuildDirName)
	require.Equal(t, "compile_commands.json", cfg.ManifestName)
	require.Equal(t, "cppcheck_misra_results.xml", cfg.ReportName)
	require.Empty(t, cfg.RulesPath)
	require.Positive(t, cfg.Jobs)
	require.Zero(t, cfg.Timeout)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyCMakeBin, "/opt/cmake/bin/cmake")
	v.Set(KeyJobs, 12)
	v.Set(KeyTimeout, "90s")
	v.Set(KeyRulesPath, "/rules/headlines.txt")

	cfg := Load(v)
	require.Equal(t, "/opt/cmake/bin/cmake", cfg.CMakeBin)
	require.Equal(t, 12, cfg.Jobs)
	require.Equal(t, 90*time.Second, cfg.Timeout)
	require.Equal(t, "/rules/headlines.txt", cfg.RulesPath)
}

func TestLoad_NonPositiveJobsFallsBackToHost(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyJobs, -1)

	cfg := Load(v)
	require.Positive(t, cfg.Jobs)
}
