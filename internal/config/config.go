// Package config loads innkeep settings from a YAML file and the environment.
//
// Precedence, lowest to highest: built-in defaults, the YAML file,
// INNKEEP_* environment variables, command-line flags (applied by the CLI).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no --config flag is given.
const DefaultPath = "innkeep.yaml"

// Config holds every runtime setting.
type Config struct {
	// Database is the SQLite file path.
	Database string `yaml:"database"`

	Credentials Credentials `yaml:"credentials"`
	Log         Log         `yaml:"log"`
}

// Credentials is the single fixed login accepted by the CLI.
type Credentials struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: "hotel_management.db",
		Credentials: Credentials{
			User:     "admin",
			Password: "password",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment. A missing file at DefaultPath is not an error; a missing
// file at any other explicitly named path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("invalid config: database must not be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid config: log.level %q must be one of debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid config: log.format %q must be one of text|json", c.Log.Format)
	}
	return nil
}

// decode parses YAML into cfg with strict field validation, so a typo like
// "databse:" fails loudly instead of being ignored.
func decode(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		// an empty file decodes to io.EOF; keep the defaults
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Database = getEnv("INNKEEP_DB", cfg.Database)
	cfg.Credentials.User = getEnv("INNKEEP_USER", cfg.Credentials.User)
	cfg.Credentials.Password = getEnv("INNKEEP_PASSWORD", cfg.Credentials.Password)
	cfg.Log.Level = strings.ToLower(getEnv("INNKEEP_LOG_LEVEL", cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(getEnv("INNKEEP_LOG_FORMAT", cfg.Log.Format))
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
