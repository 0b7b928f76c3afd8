package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem provides an in-memory filesystem for testing
type MockFileSystem struct {
	files map[string]*MockFile
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a file to the mock filesystem, creating parent directories
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
		IsDir:   false,
	}

	mfs.AddDir(filepath.Dir(cleanPath))
}

// AddDir adds a directory (and its parents) to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	for cleanPath != "." && cleanPath != "/" {
		if _, exists := mfs.files[cleanPath]; !exists {
			mfs.files[cleanPath] = &MockFile{
				Mode:    0755 | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
		cleanPath = filepath.Dir(cleanPath)
	}
}

// Paths returns every known path, sorted. Useful for asserting on side effects.
func (mfs *MockFileSystem) Paths() []string {
	paths := make([]string, 0, len(mfs.files))
	for p := range mfs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, fs.ErrNotExist
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if dir != "." && dir != "/" {
		if _, exists := mfs.files[dir]; !exists {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	mfs.files[cleanPath] = &MockFile{
		Content: data,
		Mode:    perm,
		ModTime: time.Now(),
		IsDir:   false,
	}
	return nil
}

func (mfs *MockFileSystem) Remove(path string) error {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		return fs.ErrNotExist
	}
	delete(mfs.files, cleanPath)
	return nil
}

func (mfs *MockFileSystem) RemoveAll(path string) error {
	cleanPath := filepath.Clean(path)
	prefix := cleanPath + string(filepath.Separator)
	for p := range mfs.files {
		if p == cleanPath || strings.HasPrefix(p, prefix) {
			delete(mfs.files, p)
		}
	}
	// Matches os.RemoveAll: removing a missing path is not an error.
	return nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath := filepath.Clean(path)

	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, fs.ErrNotExist
	}
	if !file.IsDir {
		return nil, errors.New("not a directory")
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if filepath.Dir(p) == cleanPath {
			entries = append(entries, &mockDirEntry{info: &mockFileInfo{
				name:    filepath.Base(p),
				size:    int64(len(f.Content)),
				mode:    f.Mode,
				modTime: f.ModTime,
				isDir:   f.IsDir,
			}})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	mfs.AddDir(path)
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, fs.ErrNotExist
	}

	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

// WalkDir walks the mock tree in sorted path order. SkipDir on a directory
// suppresses every path below it, matching filepath.WalkDir semantics.
func (mfs *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	cleanRoot := filepath.Clean(root)

	if _, exists := mfs.files[cleanRoot]; !exists {
		return fs.ErrNotExist
	}

	var paths []string
	for p := range mfs.files {
		if p == cleanRoot || strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var skipped []string
	for _, p := range paths {
		underSkipped := false
		for _, s := range skipped {
			if strings.HasPrefix(p, s+string(filepath.Separator)) {
				underSkipped = true
				break
			}
		}
		if underSkipped {
			continue
		}

		file := mfs.files[p]
		entry := &mockDirEntry{info: &mockFileInfo{
			name:    filepath.Base(p),
			size:    int64(len(file.Content)),
			mode:    file.Mode,
			modTime: file.ModTime,
			isDir:   file.IsDir,
		}}

		if err := fn(p, entry, nil); err != nil {
			if errors.Is(err, filepath.SkipDir) {
				if file.IsDir {
					skipped = append(skipped, p)
					continue
				}
				return nil
			}
			return err
		}
	}

	return nil
}
