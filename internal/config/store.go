package config

// StoreConfig configures the SQLite world repository.
type StoreConfig struct {
	// DatabasePath is the SQLite file holding stored world models and run
	// history. Empty disables the repository.
	DatabasePath string `yaml:"database_path"`
}

// DefaultStoreConfig returns defaults for the world repository.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DatabasePath: ".forge/worlds.db",
	}
}
