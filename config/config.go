// Package config loads the optional hook command table.
package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/samoyed/errors"
	"github.com/grovetools/samoyed/logging"
	"github.com/grovetools/samoyed/pkg/paths"
	"github.com/grovetools/samoyed/util/fsys"
)

// ProjectFileNames are searched for in the repository root, first match wins.
var ProjectFileNames = []string{
	"samoyed.toml",
	".samoyed.toml",
	"samoyed.yml",
	"samoyed.yaml",
	".samoyed.yml",
	".samoyed.yaml",
}

// OverrideFileNames are applied on top of the project file, in order.
// They live next to the project file and are meant to stay untracked.
var OverrideFileNames = []string{
	"samoyed.override.toml",
	"samoyed.override.yml",
	"samoyed.override.yaml",
}

// Loader reads configuration files through an fsys.FS.
type Loader struct {
	fs         fsys.FS
	globalPath string
	logger     *logrus.Entry
}

// NewLoader returns a Loader using the user's global config file.
func NewLoader(filesystem fsys.FS) *Loader {
	return &Loader{
		fs:         filesystem,
		globalPath: paths.GlobalConfigFile(),
		logger:     logging.NewLogger("config"),
	}
}

// WithGlobalPath replaces the global config location. An empty path
// disables the global layer.
func (l *Loader) WithGlobalPath(path string) *Loader {
	l.globalPath = path
	return l
}

// Load reads and validates a single configuration file.
func (l *Loader) Load(path string) (*Config, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if !l.fs.Exists(path) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}
	return LoadFromBytes(path, data)
}

// FindConfigFile returns the project configuration file in root, or "".
func (l *Loader) FindConfigFile(root string) string {
	for _, name := range ProjectFileNames {
		candidate := filepath.Join(root, name)
		if l.fs.Exists(candidate) && !l.fs.IsDir(candidate) {
			return candidate
		}
	}
	return ""
}

// LoadLayered merges, in order, the global file, the project file and any
// override files. explicit replaces project file discovery and must exist.
// Missing optional files contribute nothing.
func (l *Loader) LoadLayered(root, explicit string) (*LayeredConfig, error) {
	layered := &LayeredConfig{
		FilePaths: map[ConfigSource]string{},
		Origins:   map[string]ConfigSource{},
	}
	final := &Config{Hooks: HookTable{}}

	apply := func(source ConfigSource, cfg *Config) {
		final = mergeConfigs(final, cfg)
		for name := range cfg.Hooks {
			layered.Origins[name] = source
		}
	}

	if l.globalPath != "" && l.fs.Exists(l.globalPath) {
		l.logger.WithField("path", l.globalPath).Debug("Loading global configuration")
		cfg, err := l.Load(l.globalPath)
		if err != nil {
			l.logger.WithError(err).Warn("Failed to load global configuration, continuing without it")
		} else {
			layered.Global = cfg
			layered.FilePaths[SourceGlobal] = l.globalPath
			apply(SourceGlobal, cfg)
		}
	}

	projectPath := explicit
	projectSource := SourceFlag
	if projectPath == "" {
		projectPath = l.FindConfigFile(root)
		projectSource = SourceProject
	}

	if projectPath != "" {
		l.logger.WithField("path", projectPath).Debug("Loading project configuration")
		cfg, err := l.Load(projectPath)
		if err != nil {
			return nil, err
		}
		layered.Project = cfg
		layered.FilePaths[projectSource] = projectPath
		apply(projectSource, cfg)
	}

	overrideDir := root
	if projectPath != "" {
		overrideDir = filepath.Dir(projectPath)
	}
	for _, name := range OverrideFileNames {
		path := filepath.Join(overrideDir, name)
		if !l.fs.Exists(path) {
			continue
		}
		l.logger.WithField("path", path).Debug("Applying override configuration")
		cfg, err := l.Load(path)
		if err != nil {
			return nil, err
		}
		layered.Overrides = append(layered.Overrides, OverrideSource{Path: path, Config: cfg})
		if _, seen := layered.FilePaths[SourceOverride]; !seen {
			layered.FilePaths[SourceOverride] = path
		}
		apply(SourceOverride, cfg)
	}

	layered.Final = final
	return layered, nil
}

// LoadFrom returns the merged configuration for a repository root.
func (l *Loader) LoadFrom(root string) (*Config, error) {
	layered, err := l.LoadLayered(root, "")
	if err != nil {
		return nil, err
	}
	return layered.Final, nil
}

// LoadFromBytes parses data in the format implied by path's extension.
func LoadFromBytes(path string, data []byte) (*Config, error) {
	raw, err := parse(path, data)
	if err != nil {
		return nil, err
	}
	if err := validateRaw(path, raw); err != nil {
		return nil, err
	}

	cfg, err := decode(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration in %s", path)).
			WithDetail("path", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(path string, data []byte) (map[string]interface{}, error) {
	raw := map[string]interface{}{}
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unsupported config file extension: %s", path)).
			WithDetail("path", path)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, fmt.Sprintf("failed to parse %s", path)).
			WithDetail("path", path)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}

var hookEntryType = reflect.TypeOf(HookEntry{})

// liftStringEntry turns `pre-commit = "cmd"` into {command = "cmd"}.
func liftStringEntry(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != hookEntryType {
		return data, nil
	}
	if s, ok := data.(string); ok {
		return map[string]interface{}{"command": s}, nil
	}
	return data, nil
}

func decode(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.DecodeHookFuncType(liftStringEntry),
		Result:      cfg,
		TagName:     "yaml",
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	if cfg.Hooks == nil {
		cfg.Hooks = HookTable{}
	}
	return cfg, nil
}
