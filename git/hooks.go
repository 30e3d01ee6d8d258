package git

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/hooks"
)

// HooksPathKey is the git setting that redirects hook lookup.
const HooksPathKey = "core.hooksPath"

// HooksPathValue returns the form of hooksDir stored in git config:
// relative to root when inside it, always with forward slashes.
func HooksPathValue(root, hooksDir string) string {
	rel, err := filepath.Rel(root, hooksDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(hooksDir)
	}
	return filepath.ToSlash(rel)
}

// ResolveHooksPath turns a stored core.hooksPath value back into an
// absolute path.
func ResolveHooksPath(root, value string) string {
	p := filepath.FromSlash(value)
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return filepath.Clean(p)
}

// SetHooksPath points core.hooksPath at hooksDir. Running it again with
// the same value leaves the configuration unchanged.
func (c *Configurator) SetHooksPath(ctx context.Context, root, hooksDir string) error {
	value := HooksPathValue(root, hooksDir)
	if err := c.builder.Validate("configKey", HooksPathKey); err != nil {
		return errors.GitConfigError(HooksPathKey, err)
	}
	if err := c.builder.Validate("fileName", value); err != nil {
		return errors.GitConfigError(HooksPathKey, err)
	}

	_, res, err := c.run(ctx, root, "config", HooksPathKey, value)
	if err != nil {
		return errors.GitConfigError(HooksPathKey, err)
	}
	if res.ExitCode != 0 {
		return errors.GitConfigError(HooksPathKey, stderrError(res))
	}

	c.logger.WithField("value", value).Debug("Set core.hooksPath")
	return nil
}

// GetHooksPath reads core.hooksPath. An unset key is reported as
// ("", false, nil).
func (c *Configurator) GetHooksPath(ctx context.Context, root string) (string, bool, error) {
	out, res, err := c.run(ctx, root, "config", "--get", HooksPathKey)
	if err != nil {
		return "", false, errors.GitConfigError(HooksPathKey, err)
	}
	switch res.ExitCode {
	case 0:
		return out, true, nil
	case 1:
		return "", false, nil
	default:
		return "", false, errors.GitConfigError(HooksPathKey, stderrError(res))
	}
}

// ShadowedHooks lists executable hooks in root/.git/hooks. Git ignores
// them once core.hooksPath points elsewhere.
func (c *Configurator) ShadowedHooks(root string) []string {
	dir := filepath.Join(root, ".git", "hooks")
	if !c.fs.IsDir(dir) {
		return nil
	}
	var found []string
	for _, name := range hooks.All() {
		if c.fs.IsExecutable(filepath.Join(dir, string(name))) {
			found = append(found, string(name))
		}
	}
	return found
}
