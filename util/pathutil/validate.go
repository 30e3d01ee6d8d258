package pathutil

import (
	goerrors "errors"
	"path/filepath"
	"strings"

	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/util/fsys"
)

var errNoAncestor = goerrors.New("no existing ancestor")

// ValidatedPath is an install target proven to live inside a repository.
type ValidatedPath struct {
	// Root is the canonical repository root.
	Root string
	// Path is the canonical absolute target.
	Path string
	// Rel is Path relative to Root with forward slashes ("." for the root).
	Rel string
}

// HasTraversal reports whether candidate has a ".." component under either
// separator convention.
func HasTraversal(candidate string) bool {
	parts := strings.FieldsFunc(candidate, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, p := range parts {
		if p == ".." {
			return true
		}
	}
	return false
}

// Validate checks that candidate, interpreted relative to cwd, resolves to
// repoRoot or a directory beneath it. The ".." check runs before any
// filesystem access. The target itself may not exist yet.
func Validate(fs fsys.FS, repoRoot, cwd, candidate string) (ValidatedPath, error) {
	if candidate == "" {
		return ValidatedPath{}, errors.New(errors.ErrCodeInvalidInput, "install target cannot be empty")
	}
	if HasTraversal(candidate) {
		return ValidatedPath{}, errors.TraversalRejected(candidate)
	}

	root, err := fs.EvalSymlinks(repoRoot)
	if err != nil {
		return ValidatedPath{}, errors.NotAGitRepository(repoRoot, err)
	}

	abs := candidate
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, candidate)
	}

	target, err := Canonicalize(fs, abs)
	if err != nil {
		return ValidatedPath{}, errors.ParentMissing(abs, err)
	}

	if !HasPathPrefix(root, target) {
		return ValidatedPath{}, errors.OutsideRepository(candidate, root)
	}

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return ValidatedPath{}, errors.OutsideRepository(candidate, root)
	}

	return ValidatedPath{
		Root: root,
		Path: target,
		Rel:  filepath.ToSlash(rel),
	}, nil
}
