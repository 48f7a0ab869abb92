// Package config holds all worldforge configuration. Configuration is
// loaded from YAML (default .forge/config.yaml), with environment variable
// overrides applied on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all worldforge configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Artifact generation settings
	Generator GeneratorConfig `yaml:"generator"`

	// Spatial layout settings
	Layout LayoutConfig `yaml:"layout"`

	// Identifier sanitization settings
	Sanitizer SanitizerConfig `yaml:"sanitizer"`

	// World repository settings
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:      "worldforge",
		Version:   "1.0.0",
		Generator: DefaultGeneratorConfig(),
		Layout:    DefaultLayoutConfig(),
		Sanitizer: DefaultSanitizerConfig(),
		Store:     DefaultStoreConfig(),
		Logging:   DefaultLoggingConfig(),
	}
}

// Load reads configuration from the given path, falling back to defaults
// when the file does not exist. Environment overrides are always applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration to the given path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies FORGE_* environment variables on top of the
// loaded configuration.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FORGE_OUTPUT_ROOT"); v != "" {
		c.Generator.OutputRoot = v
	}
	if v := os.Getenv("FORGE_MIRROR_ROOT"); v != "" {
		c.Generator.MirrorRoot = v
	}
	if v := os.Getenv("FORGE_DB_PATH"); v != "" {
		c.Store.DatabasePath = v
	}
	if v := os.Getenv("FORGE_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Generator.OutputRoot == "" {
		return fmt.Errorf("generator.output_root cannot be empty")
	}
	if err := checkMirrorOutsideOutput(c.Generator.OutputRoot, c.Generator.MirrorRoot); err != nil {
		return err
	}
	if c.Layout.NPCSpacing <= 0 {
		return fmt.Errorf("layout.npc_spacing must be positive")
	}
	if c.Layout.GridColumns <= 0 {
		return fmt.Errorf("layout.grid_columns must be positive")
	}
	if c.Sanitizer.MaxLength <= 0 {
		return fmt.Errorf("sanitizer.max_length must be positive")
	}
	if c.Sanitizer.MaxSuffixAttempts <= 0 {
		return fmt.Errorf("sanitizer.max_suffix_attempts must be positive")
	}
	return nil
}

// checkMirrorOutsideOutput rejects a mirror root that resolves to the
// output root or any directory under it. The mirror is a side-channel
// outside the scanned artifact tree, so spellings like "./generated" or
// "generated/mirror" must fail, not just exact string matches.
func checkMirrorOutsideOutput(outputRoot, mirrorRoot string) error {
	outAbs, err := filepath.Abs(outputRoot)
	if err != nil {
		return fmt.Errorf("resolving generator.output_root: %w", err)
	}
	mirAbs, err := filepath.Abs(mirrorRoot)
	if err != nil {
		return fmt.Errorf("resolving generator.mirror_root: %w", err)
	}
	rel, err := filepath.Rel(outAbs, mirAbs)
	if err != nil {
		// No common base means no containment is possible.
		return nil
	}
	if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("generator.mirror_root %q resolves inside output_root %q: the mirror must live outside the scanned artifact tree", mirrorRoot, outputRoot)
	}
	return nil
}
