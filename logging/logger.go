package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	current     = ConfigFromEnv()
	stderr      io.Writer = os.Stderr
	interactive           = func() bool {
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
)

// NewLogger returns the logger for component, creating it on first use.
// Every entry carries a "component" field.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	apply(logger, current)

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure replaces the active settings and reapplies them to every
// logger created so far.
func Configure(cfg Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	current = cfg
	for _, entry := range loggers {
		apply(entry.Logger, cfg)
	}
}

// Current returns the active settings.
func Current() Config {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	return current
}

// EnableDebug raises every logger to the debug level and routes output to
// stderr. It is used for SAMOYED=2 and --verbose.
func EnableDebug() {
	cfg := Current()
	cfg.Debug = true
	Configure(cfg)
}

// EnableJSON switches every logger to the JSON formatter.
func EnableJSON() {
	cfg := Current()
	cfg.Format.Preset = "json"
	Configure(cfg)
}

func apply(logger *logrus.Logger, cfg Config) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if cfg.Debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	logger.SetReportCaller(cfg.ReportCaller)

	switch cfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: cfg.Format})
	}

	// No file sink: samoyed never writes outside the paths it is asked to.
	if shouldLogToStderr(cfg, level) {
		logger.SetOutput(stderr)
	} else {
		logger.SetOutput(io.Discard)
	}
}

func shouldLogToStderr(cfg Config, level logrus.Level) bool {
	switch cfg.Format.StructuredToStderr {
	case "always":
		return true
	case "never":
		return false
	}
	// auto: only when debugging or when stderr is not a terminal.
	return cfg.Debug || level >= logrus.DebugLevel || !interactive()
}
