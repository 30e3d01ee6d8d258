package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grovetools/samoyed/errors"
)

const gitdirPrefix = "gitdir:"

// DiscoverRoot asks git for the top of the working tree containing dir and
// checks that the result holds a usable .git directory or gitdir file.
func (c *Configurator) DiscoverRoot(ctx context.Context, dir string) (string, error) {
	out, res, err := c.run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.NotAGitRepository(dir, err)
	}
	if res.ExitCode != 0 {
		return "", errors.NotAGitRepository(dir, stderrError(res))
	}
	if out == "" {
		return "", errors.NotAGitRepository(dir, fmt.Errorf("git reported an empty top-level"))
	}

	root := filepath.Clean(filepath.FromSlash(out))
	if !c.fs.IsDir(root) {
		return "", errors.NotAGitRepository(dir, fmt.Errorf("top-level %s is not a directory", root))
	}
	if err := c.checkGitMarker(root); err != nil {
		return "", errors.NotAGitRepository(dir, err)
	}

	c.logger.WithField("root", root).Debug("Discovered repository root")
	return root, nil
}

// checkGitMarker accepts root/.git as a directory, or as a file whose
// gitdir line names an existing directory (worktrees and submodules).
func (c *Configurator) checkGitMarker(root string) error {
	marker := filepath.Join(root, ".git")
	if c.fs.IsDir(marker) {
		return nil
	}
	if !c.fs.Exists(marker) {
		return fmt.Errorf("%s does not exist", marker)
	}

	data, err := c.fs.ReadFile(marker)
	if err != nil {
		return fmt.Errorf("read %s: %w", marker, err)
	}
	gitdir, ok := parseGitdirFile(string(data))
	if !ok {
		return fmt.Errorf("%s has no gitdir line", marker)
	}
	if !filepath.IsAbs(gitdir) {
		gitdir = filepath.Join(root, gitdir)
	}
	if !c.fs.IsDir(gitdir) {
		return fmt.Errorf("gitdir %s named by %s does not exist", gitdir, marker)
	}
	return nil
}

func parseGitdirFile(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, gitdirPrefix) {
			path := strings.TrimSpace(strings.TrimPrefix(line, gitdirPrefix))
			if path == "" {
				return "", false
			}
			return filepath.FromSlash(path), true
		}
	}
	return "", false
}
