package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over file operations for testability.
//
// Every method takes an absolute path; nothing in buildsweep relies on the
// process working directory.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Remove(path string) error
	RemoveAll(path string) error

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool

	// File walking
	WalkDir(root string, fn fs.WalkDirFunc) error
}
