package pathutil

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/grovetools/samoyed/util/fsys"
)

// caseInsensitive reports whether the host filesystem conventionally
// compares names without regard to case.
func caseInsensitive() bool {
	return runtime.GOOS == "darwin" || runtime.GOOS == "windows"
}

// NormalizeForLookup returns a cleaned path suitable for comparisons,
// lowercased on case-insensitive platforms.
func NormalizeForLookup(path string) string {
	path = filepath.Clean(path)
	if caseInsensitive() {
		return strings.ToLower(path)
	}
	return path
}

// HasPathPrefix reports whether path equals root or lies beneath it.
// Comparison is by whole components, so /repo-other is not under /repo.
func HasPathPrefix(root, path string) bool {
	root = NormalizeForLookup(root)
	path = NormalizeForLookup(path)
	if root == path {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// Canonicalize resolves symlinks in an absolute path whose tail may not
// exist yet. It resolves the nearest existing ancestor and re-appends the
// missing components.
func Canonicalize(fs fsys.FS, path string) (string, error) {
	cur := filepath.Clean(path)
	var missing []string

	for !fs.Exists(cur) {
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", errNoAncestor
		}
		missing = append(missing, filepath.Base(cur))
		cur = parent
	}

	resolved, err := fs.EvalSymlinks(cur)
	if err != nil {
		return "", err
	}
	for i := len(missing) - 1; i >= 0; i-- {
		resolved = filepath.Join(resolved, missing[i])
	}
	return resolved, nil
}
