// Package config holds the tool and sweep settings, resolved once at startup
// from config file, environment and flags via viper.
package config

import (
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Fallback when the host concurrency capacity cannot be determined.
const DefaultJobs = 4

// Viper keys shared between defaults, config files and flag binding.
const (
	KeyCMakeBin       = "cmake-bin"
	KeyCppcheckBin    = "cppcheck-bin"
	KeyClangFormatBin = "clang-format-bin"
	KeyMarkerName     = "marker-name"
	KeyBuildDirName   = "build-dir-name"
	KeyManifestName   = "manifest-name"
	KeyReportName     = "report-name"
	KeyRulesPath      = "rules"
	KeyJobs           = "jobs"
	KeyTimeout        = "timeout"
)

// Config is the validated, final configuration for one invocation.
type Config struct {
	// External tool binaries
	CMakeBin       string
	CppcheckBin    string
	ClangFormatBin string

	// Naming conventions
	MarkerName   string // build descriptor identifying a unit (CMakeLists.txt)
	BuildDirName string // per-unit build output directory (build)
	ManifestName string // build-command manifest (compile_commands.json)
	ReportName   string // per-unit analysis report (cppcheck_misra_results.xml)

	// RulesPath points at the MISRA headline file; empty means engine
	// severities are reported as-is
	RulesPath string

	// Jobs bounds within-unit parallelism for compiler and analyzer
	Jobs int

	// Timeout bounds one unit's build+analyze; zero disables it
	Timeout time.Duration
}

// SetDefaults registers every default on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCMakeBin, "cmake")
	v.SetDefault(KeyCppcheckBin, "cppcheck")
	v.SetDefault(KeyClangFormatBin, "clang-format")
	v.SetDefault(KeyMarkerName, "CMakeLists.txt")
	v.SetDefault(KeyBuildDirName, "build")
	v.SetDefault(KeyManifestName, "compile_commands.json")
	v.SetDefault(KeyReportName, "cppcheck_misra_results.xml")
	v.SetDefault(KeyRulesPath, "")
	v.SetDefault(KeyJobs, hostJobs())
	v.SetDefault(KeyTimeout, time.Duration(0))
}

// Load resolves the final configuration from the given viper instance.
func Load(v *viper.Viper) *Config {
	cfg := &Config{
		CMakeBin:       v.GetString(KeyCMakeBin),
		CppcheckBin:    v.GetString(KeyCppcheckBin),
		ClangFormatBin: v.GetString(KeyClangFormatBin),
		MarkerName:     v.GetString(KeyMarkerName),
		BuildDirName:   v.GetString(KeyBuildDirName),
		ManifestName:   v.GetString(KeyManifestName),
		ReportName:     v.GetString(KeyReportName),
		RulesPath:      v.GetString(KeyRulesPath),
		Jobs:           v.GetInt(KeyJobs),
		Timeout:        v.GetDuration(KeyTimeout),
	}

	if cfg.Jobs <= 0 {
		cfg.Jobs = hostJobs()
	}

	return cfg
}

// hostJobs reads the host concurrency capacity once, falling back to a fixed
// default when unreadable.
func hostJobs() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return DefaultJobs
}
