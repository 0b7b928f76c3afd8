// Package discover finds buildable units under a root directory tree.
package discover

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/denormal/go-gitignore"

	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/models"
)

// ErrInvalidRoot indicates the sweep root does not exist or is not a
// directory. It is the only error that aborts a run before any unit is
// processed.
var ErrInvalidRoot = errors.New("invalid root directory")

// vcsDirs are version-control metadata directories that are never descended
// into and never qualify as units.
var vcsDirs = map[string]struct{}{
	".git": {},
	".svn": {},
	".hg":  {},
}

// Units walks root and returns every directory that directly contains the
// marker file, ordered lexicographically by path.
//
// Build-output directories, VCS metadata directories and anything matched by
// the root .gitignore are pruned: they are neither descended into nor
// considered units themselves. Zero units is a valid result.
func Units(fsys filesystem.FileSystem, root, markerName, buildDirName string) ([]*models.Unit, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	ignore, err := loadRootGitIgnore(fsys, root)
	if err != nil {
		return nil, err
	}

	var units []*models.Unit
	err = fsys.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}

		if path != root {
			name := entry.Name()
			if _, vcs := vcsDirs[name]; vcs || name == buildDirName {
				return filepath.SkipDir
			}

			if ignore != nil {
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					return relErr
				}
				if match := ignore.Relative(filepath.ToSlash(rel), true); match != nil && match.Ignore() {
					return filepath.SkipDir
				}
			}
		}

		markerPath := filepath.Join(path, markerName)
		if fsys.Exists(markerPath) {
			units = append(units, models.NewUnit(path, markerPath))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Slice(units, func(i, j int) bool {
		return units[i].RootPath < units[j].RootPath
	})

	return units, nil
}

// SourceFiles returns every C source and header under root, with the same
// pruning rules as unit discovery. Used by the formatting pass.
func SourceFiles(fsys filesystem.FileSystem, root, buildDirName string) ([]string, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	ignore, err := loadRootGitIgnore(fsys, root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = fsys.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			name := entry.Name()
			if _, vcs := vcsDirs[name]; vcs || name == buildDirName {
				return filepath.SkipDir
			}
			if ignore != nil {
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					return relErr
				}
				if match := ignore.Relative(filepath.ToSlash(rel), true); match != nil && match.Ignore() {
					return filepath.SkipDir
				}
			}
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".c", ".h":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

func loadRootGitIgnore(fsys filesystem.FileSystem, root string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(root, ".gitignore")
	if !fsys.Exists(ignorePath) {
		return nil, nil
	}

	data, err := fsys.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), root, nil), nil
}
