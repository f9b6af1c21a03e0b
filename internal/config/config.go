// ABOUTME: Configuration loading and parsing for notes-server
// ABOUTME: Supports optional YAML or TOML files with environment variable expansion and a PORT override

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the HTTP port used when neither the config file nor PORT sets one.
const DefaultPort = 3000

// DefaultPath is read when NOTES_CONFIG is unset and the file exists.
const DefaultPath = "notes.yaml"

// Store backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config represents the complete notes-server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" toml:"server"`
	Store   StoreConfig   `yaml:"store" toml:"store"`
	Static  StaticConfig  `yaml:"static" toml:"static"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ServerConfig holds the HTTP listen settings
type ServerConfig struct {
	Host string `yaml:"host" toml:"host"`
	Port int    `yaml:"port" toml:"port"`
}

// StoreConfig selects the note store backend
type StoreConfig struct {
	Backend string `yaml:"backend" toml:"backend"` // memory or sqlite
}

// StaticConfig holds static asset settings
type StaticConfig struct {
	// Dir is served instead of the embedded assets when set
	Dir string `yaml:"dir" toml:"dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort},
		Store:  StoreConfig{Backend: BackendMemory},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Path returns the config file to load.
// Priority: NOTES_CONFIG env var > ./notes.yaml if it exists > none.
func Path() string {
	if envPath := os.Getenv("NOTES_CONFIG"); envPath != "" {
		return envPath
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	return ""
}

// Load builds a Config from defaults, the file at path (skipped when path is
// empty) and the PORT environment variable, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// decodeFile reads path and decodes it over cfg, picking the format by extension.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw content
	expanded := expandEnvVars(string(data))

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return fmt.Errorf("parsing config file: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
	return nil
}

// applyEnv applies the PORT override.
func applyEnv(cfg *Config) error {
	raw := os.Getenv("PORT")
	if raw == "" {
		return nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parsing PORT %q: %w", raw, err)
	}
	cfg.Server.Port = port
	return nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", c.Server.Port)
	}

	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendMemory, BackendSQLite, c.Store.Backend)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Static.Dir != "" {
		info, err := os.Stat(c.Static.Dir)
		if err != nil {
			return fmt.Errorf("static.dir: %w", err)
		}
		if !info.IsDir() {
			return errors.New("static.dir is not a directory")
		}
	}

	return nil
}
