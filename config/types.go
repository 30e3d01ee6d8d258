package config

import (
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/grovetools/samoyed/hooks"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// HookEntry is one configured hook command. In files it may be written as
// a bare string, which is shorthand for {command = "..."}.
type HookEntry struct {
	Command     string `yaml:"command" toml:"command" json:"command" jsonschema:"minLength=1,description=Shell command run through sh -c; the hook's arguments are available as $1 and up"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty" jsonschema:"description=Human-readable note shown by samoyed status"`
}

// HookTable maps hook names to their commands.
type HookTable map[string]HookEntry

// Config is the content of a samoyed configuration file.
type Config struct {
	Hooks HookTable `yaml:"hooks,omitempty" toml:"hooks,omitempty" json:"hooks,omitempty" jsonschema:"description=Commands to run per git hook"`
}

// Lookup returns the command configured for name.
func (c *Config) Lookup(name hooks.Name) (string, bool) {
	if c == nil {
		return "", false
	}
	entry, ok := c.Hooks[string(name)]
	if !ok || entry.Command == "" {
		return "", false
	}
	return entry.Command, true
}

// Names returns the configured hook names in sorted order.
func (c *Config) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Hooks))
	for name := range c.Hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JSONSchema restricts the table to known hook names, each mapping to a
// command string or a {command, description} object.
func (HookTable) JSONSchema() *jsonschema.Schema {
	entryObject := (&jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		DoNotReference:            true,
		FieldNameTag:              "yaml",
	}).Reflect(&HookEntry{})
	entryObject.Version = ""
	entryObject.ID = ""

	entry := &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Pattern: `\S`},
			entryObject,
		},
	}

	return &jsonschema.Schema{
		Type:        "object",
		Description: "Commands to run per git hook",
		PatternProperties: map[string]*jsonschema.Schema{
			hookNamePattern(): entry,
		},
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

func hookNamePattern() string {
	pattern := "^("
	for i, name := range hooks.Strings() {
		if i > 0 {
			pattern += "|"
		}
		pattern += name
	}
	return pattern + ")$"
}

// ConfigSource identifies the origin of a configuration layer.
type ConfigSource string

const (
	SourceGlobal   ConfigSource = "global"
	SourceProject  ConfigSource = "project"
	SourceOverride ConfigSource = "override"
	SourceFlag     ConfigSource = "flag"
)

// OverrideSource holds a raw configuration from an override file and its path.
type OverrideSource struct {
	Path   string
	Config *Config
}

// LayeredConfig holds the configuration read from each source as well as
// the merged result.
type LayeredConfig struct {
	Global    *Config
	Project   *Config
	Overrides []OverrideSource
	Final     *Config
	FilePaths map[ConfigSource]string
	// Origins records which source supplied each hook in Final.
	Origins map[string]ConfigSource
}
