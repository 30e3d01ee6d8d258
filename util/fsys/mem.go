package fsys

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

type memEntry struct {
	data []byte
	mode fs.FileMode
	dir  bool
}

// Mem is an in-memory FS. Paths are cleaned before use; the filesystem
// root always exists. Writes counts every successful mutation.
type Mem struct {
	entries map[string]*memEntry
	Writes  int
}

var _ FS = (*Mem)(nil)

// NewMem returns a Mem pre-populated with dirs. Seeding does not count
// toward Writes.
func NewMem(dirs ...string) *Mem {
	m := &Mem{entries: map[string]*memEntry{}}
	for _, d := range dirs {
		m.mkdirAll(d)
	}
	return m
}

// AddFile seeds a file (and its parents) without counting a write.
func (m *Mem) AddFile(path string, data []byte, perm fs.FileMode) {
	path = filepath.Clean(path)
	m.mkdirAll(filepath.Dir(path))
	m.entries[path] = &memEntry{data: append([]byte(nil), data...), mode: perm}
}

// Mode returns the permission bits of path, or 0 if it does not exist.
func (m *Mem) Mode(path string) fs.FileMode {
	if e, ok := m.lookup(path); ok {
		return e.mode
	}
	return 0
}

// Paths lists every entry in sorted order.
func (m *Mem) Paths() []string {
	out := make([]string, 0, len(m.entries))
	for p := range m.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (m *Mem) lookup(path string) (*memEntry, bool) {
	path = filepath.Clean(path)
	if isRoot(path) {
		return &memEntry{dir: true, mode: fs.ModeDir | 0o755}, true
	}
	e, ok := m.entries[path]
	return e, ok
}

func (m *Mem) mkdirAll(path string) bool {
	path = filepath.Clean(path)
	created := false
	for !isRoot(path) {
		if _, ok := m.entries[path]; !ok {
			m.entries[path] = &memEntry{dir: true, mode: fs.ModeDir | 0o755}
			created = true
		}
		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}
	return created
}

func isRoot(path string) bool {
	return filepath.Dir(path) == path
}

func (m *Mem) Exists(path string) bool {
	_, ok := m.lookup(path)
	return ok
}

func (m *Mem) IsDir(path string) bool {
	e, ok := m.lookup(path)
	return ok && e.dir
}

func (m *Mem) MkdirAll(path string, perm fs.FileMode) error {
	path = filepath.Clean(path)
	for p := path; !isRoot(p); p = filepath.Dir(p) {
		if e, ok := m.entries[p]; ok && !e.dir {
			return &fs.PathError{Op: "mkdir", Path: p, Err: fmt.Errorf("not a directory")}
		}
	}
	if m.mkdirAll(path) {
		m.Writes++
	}
	return nil
}

func (m *Mem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	path = filepath.Clean(path)
	if !m.IsDir(filepath.Dir(path)) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if e, ok := m.entries[path]; ok && e.dir {
		return &fs.PathError{Op: "open", Path: path, Err: fmt.Errorf("is a directory")}
	}
	m.entries[path] = &memEntry{data: append([]byte(nil), data...), mode: perm}
	m.Writes++
	return nil
}

func (m *Mem) ReadFile(path string) ([]byte, error) {
	e, ok := m.lookup(path)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if e.dir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fmt.Errorf("is a directory")}
	}
	return append([]byte(nil), e.data...), nil
}

func (m *Mem) SetExecutable(path string) error {
	e, ok := m.lookup(path)
	if !ok || e.dir {
		return &fs.PathError{Op: "chmod", Path: path, Err: fs.ErrNotExist}
	}
	e.mode |= 0o111
	m.Writes++
	return nil
}

func (m *Mem) IsExecutable(path string) bool {
	e, ok := m.lookup(path)
	return ok && !e.dir && e.mode&0o111 != 0
}

func (m *Mem) EvalSymlinks(path string) (string, error) {
	path = filepath.Clean(path)
	if !m.Exists(path) {
		return "", &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	return path, nil
}
