package logging

import (
	"os"
	"strings"
)

const (
	envLevel  = "SAMOYED_LOG_LEVEL"
	envCaller = "SAMOYED_LOG_CALLER"
	envFormat = "SAMOYED_LOG_FORMAT"
	envStderr = "SAMOYED_LOG_STDERR"
)

// Config controls how component loggers are built.
type Config struct {
	// Level is the minimum level ("debug", "info", "warn", "error").
	Level string
	// ReportCaller adds file, line and function to each entry.
	ReportCaller bool
	// Debug forces the debug level and the stderr sink.
	Debug  bool
	Format FormatConfig
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset is "default" (rich text), "simple" (minimal text) or "json".
	Preset           string
	DisableTimestamp bool
	DisableComponent bool
	// StructuredToStderr is "auto" (default), "always" or "never".
	StructuredToStderr string
}

// ConfigFromEnv reads logging settings from SAMOYED_LOG_* variables.
func ConfigFromEnv() Config {
	cfg := Config{
		Level:        "info",
		ReportCaller: os.Getenv(envCaller) == "true",
		Format: FormatConfig{
			Preset:             strings.ToLower(os.Getenv(envFormat)),
			StructuredToStderr: strings.ToLower(os.Getenv(envStderr)),
		},
	}
	if lvl := os.Getenv(envLevel); lvl != "" {
		cfg.Level = lvl
	}
	return cfg
}
