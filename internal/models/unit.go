package models

import "path/filepath"

// Unit represents one independently buildable directory, identified during
// discovery by the build descriptor it directly contains.
type Unit struct {
	// Name is the directory base name, used for display only
	Name string

	// RootPath is the absolute path to the unit directory
	RootPath string

	// MarkerPath is the path to the build descriptor (CMakeLists.txt)
	MarkerPath string
}

// NewUnit creates a new Unit instance
func NewUnit(rootPath, markerPath string) *Unit {
	return &Unit{
		Name:       filepath.Base(rootPath),
		RootPath:   rootPath,
		MarkerPath: markerPath,
	}
}

// BuildDir returns the unit's build output directory. The directory is owned
// by the build executor and reset on every build attempt.
func (u *Unit) BuildDir(buildDirName string) string {
	return filepath.Join(u.RootPath, buildDirName)
}
