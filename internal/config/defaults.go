package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:              "~/.config/unitconv",
			SQLiteFile:        "unitconv.db",
			SQLiteJournalMode: "wal",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			File:   "",
		},
		Display: DisplayConfig{
			Theme:           "light",
			DefaultCategory: "length",
		},
	}
}
