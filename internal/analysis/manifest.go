package analysis

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/models"
)

// manifestSearchDepth bounds how deep below the unit root the manifest is
// searched for. The build system emits it near the top of the build tree.
const manifestSearchDepth = 6

// LocateManifest searches the unit tree for the build-command manifest and
// returns the first match in lexicographic order.
//
// A missing manifest is a normal outcome (the build system may not have been
// asked to emit one) and is reported via found=false, not an error.
func LocateManifest(fsys filesystem.FileSystem, unit *models.Unit, manifestName string) (manifest string, found bool, err error) {
	var matches []string

	walkErr := fsys.WalkDir(unit.RootPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(unit.RootPath, path)
		if relErr != nil {
			return relErr
		}

		if entry.IsDir() {
			if rel != "." && strings.Count(rel, string(filepath.Separator)) >= manifestSearchDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Name() == manifestName {
			matches = append(matches, path)
		}
		return nil
	})
	if walkErr != nil {
		return "", false, fmt.Errorf("failed to search %s for %s: %w", unit.RootPath, manifestName, walkErr)
	}

	if len(matches) == 0 {
		return "", false, nil
	}

	sort.Strings(matches)
	return matches[0], true, nil
}
