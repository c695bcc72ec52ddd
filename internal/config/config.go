package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Report export settings
	Export ExportConfig `yaml:"export"`

	// Logging settings
	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type ExportConfig struct {
	OutputDir string `yaml:"output_dir"` // Directory for generated CSV reports
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Path to log file
}

// DefaultConfigPath returns ~/.config/taller/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "taller", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "taller", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := filepath.Join(homeDir, ".config", "taller")
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(configDir, "taller.db"),
		},
		Export: ExportConfig{
			OutputDir: filepath.Join(configDir, "reports"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(configDir, "taller.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if the file
// doesn't exist. A .env file in the working directory and TALLER_*
// environment variables override the file.
func Load(path string) (*Config, error) {
	// Pull in a .env file when present; absence is not an error
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment overrides on top of file values
func (c *Config) applyEnv() {
	if v := os.Getenv("TALLER_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("TALLER_EXPORT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv("TALLER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TALLER_LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directories the app writes into
func (c *Config) EnsureDirectories() error {
	dbDir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	if err := os.MkdirAll(c.Export.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}
