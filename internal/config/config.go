package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is used when no --config flag is given.
const DefaultConfigPath = "~/.config/unitconv/config.yaml"

// Config holds all unitconv configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Display DisplayConfig `yaml:"display"`
}

type StorageConfig struct {
	Path              string `yaml:"path" validate:"required"`
	SQLiteFile        string `yaml:"sqlite_file" validate:"required"`
	SQLiteJournalMode string `yaml:"sqlite_journal_mode" validate:"oneof=wal delete truncate persist memory off"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json"`
	File   string `yaml:"file"`
}

type DisplayConfig struct {
	Theme           string `yaml:"theme" validate:"oneof=light dark"`
	DefaultCategory string `yaml:"default_category" validate:"oneof=length temperature area volume weight time data currency"`
}

var validate = validator.New()

// normalize lower-cases the enumerated fields, which are matched
// case-insensitively.
func (c *Config) normalize() {
	c.Storage.SQLiteJournalMode = strings.ToLower(strings.TrimSpace(c.Storage.SQLiteJournalMode))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Display.Theme = strings.ToLower(strings.TrimSpace(c.Display.Theme))
	c.Display.DefaultCategory = strings.ToLower(strings.TrimSpace(c.Display.DefaultCategory))
}

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads the YAML file at path over the defaults and validates the
// merged result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// LoadOrCreate is LoadOrCreateAt on DefaultConfigPath.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config at path. On first run the file is
// missing; it is then written with defaults, directories included.
func LoadOrCreateAt(path string) (*Config, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return Load(path)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := writeConfig(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// DBPath returns the SQLite database file path with ~ expanded.
func (c *Config) DBPath() (string, error) {
	dir, err := ExpandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}
