package config

// SanitizerConfig bounds identifier sanitization.
type SanitizerConfig struct {
	// MaxLength truncates sanitized identifiers before suffixing.
	MaxLength int `yaml:"max_length"`

	// MaxSuffixAttempts bounds collision suffixing (_2, _3, ...) before the
	// sanitizer gives up. Exhaustion signals a pathological input size.
	MaxSuffixAttempts int `yaml:"max_suffix_attempts"`
}

// DefaultSanitizerConfig returns defaults for identifier sanitization.
func DefaultSanitizerConfig() SanitizerConfig {
	return SanitizerConfig{
		MaxLength:         50,
		MaxSuffixAttempts: 10000,
	}
}
