// Package fsys is the filesystem seam used by installation and dispatch.
// OS talks to the real filesystem; Mem is an in-memory implementation for
// tests that also counts mutations.
package fsys

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the set of filesystem operations samoyed performs.
type FS interface {
	// Exists reports whether path exists. Symlinks are not followed.
	Exists(path string) bool
	IsDir(path string) bool
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(path string, data []byte, perm fs.FileMode) error
	ReadFile(path string) ([]byte, error)
	// SetExecutable adds execute permission to path.
	SetExecutable(path string) error
	// IsExecutable reports whether path is a regular file the current
	// user may execute.
	IsExecutable(path string) bool
	EvalSymlinks(path string) (string, error)
}

// OS implements FS against the host filesystem.
type OS struct{}

var _ FS = OS{}

func (OS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (OS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (OS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	// #nosec G306 -- hook scripts must be executable
	if err := os.WriteFile(path, data, perm); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file, so apply perm explicitly.
	return os.Chmod(path, perm)
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OS) SetExecutable(path string) error {
	return setExecutable(path)
}

func (OS) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return isExecutable(path, info)
}

func (OS) EvalSymlinks(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}
