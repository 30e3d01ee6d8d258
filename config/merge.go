package config

// mergeConfigs layers override on top of base. Entries are replaced
// per hook; neither input is modified.
func mergeConfigs(base, override *Config) *Config {
	merged := &Config{Hooks: HookTable{}}
	for _, layer := range []*Config{base, override} {
		if layer == nil {
			continue
		}
		for name, entry := range layer.Hooks {
			merged.Hooks[name] = entry
		}
	}
	return merged
}
