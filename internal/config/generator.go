package config

// GeneratorConfig controls where artifacts are written and how runs behave.
type GeneratorConfig struct {
	// OutputRoot is the directory that holds one subtree per world ID.
	// This is the tree the host engine scans; nothing debug-only may be
	// written here.
	OutputRoot string `yaml:"output_root"`

	// MirrorRoot is the side-channel for debug/reference exports. It must
	// live outside OutputRoot so the host never scans it.
	MirrorRoot string `yaml:"mirror_root"`

	// WriteMirror enables the reference export sink.
	WriteMirror bool `yaml:"write_mirror"`

	// BatchWorkers caps concurrent world generations in batch mode.
	// Runs for distinct world IDs are independent; the per-ID run guard
	// still rejects duplicates.
	BatchWorkers int `yaml:"batch_workers"`
}

// DefaultGeneratorConfig returns defaults for artifact generation.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputRoot:   "generated",
		MirrorRoot:   "worlddata",
		WriteMirror:  true,
		BatchWorkers: 4,
	}
}
