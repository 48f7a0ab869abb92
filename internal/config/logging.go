package config

// LoggingConfig configures categorized file logging (see internal/logging).
type LoggingConfig struct {
	// DebugMode enables file logging under .forge/logs/. When false no
	// log files are written at all.
	DebugMode bool `yaml:"debug_mode"`

	// Categories toggles individual log categories. Empty enables all.
	Categories map[string]bool `yaml:"categories,omitempty"`

	// Level is the minimum level written: debug, info, warn, error.
	Level string `yaml:"level"`

	// JSONFormat switches log lines to structured JSON entries.
	JSONFormat bool `yaml:"json_format"`
}

// DefaultLoggingConfig returns defaults for logging.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		DebugMode: false,
		Level:     "info",
	}
}
