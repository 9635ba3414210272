// Package config loads the settings shared by paramkit components.
//
// Settings are layered with koanf: built-in defaults, then the YAML config
// file, then PARAMKIT_ environment variables. A double underscore in a
// variable name separates levels, so PARAMKIT_DATABASE__CONNECTION_STRING
// sets database.connection_string.
//
// Config file locations (priority order):
//  1. $PARAMKIT_CONFIG
//  2. ./paramkit.yaml
//  3. $XDG_CONFIG_HOME/paramkit/config.yaml
//  4. ~/.config/paramkit/config.yaml
//  5. /etc/paramkit/config.yaml
package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"paramkit/internal/connector"
	"paramkit/internal/domain"
)

// EnvPrefix is the prefix of environment variables read by LoadFromPath.
const EnvPrefix = "PARAMKIT_"

// Config is the root configuration structure
type Config struct {
	Version   int             `koanf:"version" yaml:"version"`
	Database  DatabaseConfig  `koanf:"database" yaml:"database"`
	Lists     ListsConfig     `koanf:"lists" yaml:"lists"`
	Timestamp TimestampConfig `koanf:"timestamp" yaml:"timestamp"`
	Secrets   SecretsConfig   `koanf:"secrets" yaml:"secrets"`
	Logging   LoggingConfig   `koanf:"logging" yaml:"logging"`
}

// DatabaseConfig selects the connector engine and its connection string
type DatabaseConfig struct {
	Engine           string `koanf:"engine" yaml:"engine"`
	ConnectionString string `koanf:"connection_string" yaml:"connection_string,omitempty"`
}

// ListsConfig holds the delimiters lists render with
type ListsConfig struct {
	Open  string `koanf:"open" yaml:"open"`
	Close string `koanf:"close" yaml:"close"`
}

// TimestampConfig holds the date/time separator
type TimestampConfig struct {
	Separator string `koanf:"separator" yaml:"separator"`
}

// SecretsConfig selects the one-way hash applied to secrets
type SecretsConfig struct {
	Digest string `koanf:"digest" yaml:"digest"`
}

// LoggingConfig controls the slog handler built by the logging package
type LoggingConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides apply in both cases.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath layers defaults, the YAML file at path (skipped when path is
// empty) and the environment, then validates the result.
func LoadFromPath(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), koanfyaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// PARAMKIT_DATABASE__ENGINE -> database.engine
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		Database:  DatabaseConfig{Engine: "sqlite"},
		Lists:     ListsConfig{Open: "[", Close: "]"},
		Timestamp: TimestampConfig{Separator: "T"},
		Secrets:   SecretsConfig{Digest: string(domain.DefaultDigest)},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

func defaultValues() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		"version":             d.Version,
		"database.engine":     d.Database.Engine,
		"lists.open":          d.Lists.Open,
		"lists.close":         d.Lists.Close,
		"timestamp.separator": d.Timestamp.Separator,
		"secrets.digest":      d.Secrets.Digest,
		"logging.level":       d.Logging.Level,
		"logging.format":      d.Logging.Format,
	}
}

// Validate checks the settings that other components rely on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Engine) == "" {
		return fmt.Errorf("database.engine is required")
	}
	if _, err := singleRune("lists.open", c.Lists.Open); err != nil {
		return err
	}
	if _, err := singleRune("lists.close", c.Lists.Close); err != nil {
		return err
	}
	sep, err := singleRune("timestamp.separator", c.Timestamp.Separator)
	if err != nil {
		return err
	}
	var ts domain.Timestamp
	if err := ts.SetSeparator(sep); err != nil {
		return fmt.Errorf("timestamp.separator: %w", err)
	}
	if _, err := domain.ParseDigest(c.Secrets.Digest); err != nil {
		return fmt.Errorf("secrets.digest: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func singleRune(key, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Brackets returns the configured list delimiters
func (c *Config) Brackets() domain.Brackets {
	open, _ := utf8.DecodeRuneInString(c.Lists.Open)
	closing, _ := utf8.DecodeRuneInString(c.Lists.Close)
	return domain.Brackets{Open: open, Close: closing}
}

// BracketSetter is implemented by every list parameter
type BracketSetter interface {
	SetBrackets(open, closing rune)
}

// ApplyTo sets the configured delimiters on each list
func (c *Config) ApplyTo(lists ...BracketSetter) {
	b := c.Brackets()
	for _, l := range lists {
		l.SetBrackets(b.Open, b.Close)
	}
}

// ApplySeparator sets the configured separator on each timestamp
func (c *Config) ApplySeparator(stamps ...*domain.Timestamp) error {
	sep, _ := utf8.DecodeRuneInString(c.Timestamp.Separator)
	for _, ts := range stamps {
		if err := ts.SetSeparator(sep); err != nil {
			return err
		}
	}
	return nil
}

// Digest returns the configured secret digest, falling back to the default
func (c *Config) Digest() domain.Digest {
	d, err := domain.ParseDigest(c.Secrets.Digest)
	if err != nil {
		return domain.DefaultDigest
	}
	return d
}

// Bind points conn at the configured engine and connection string. The
// engine package must have been imported so that it is registered.
func (d DatabaseConfig) Bind(ctx context.Context, conn *connector.Connector) error {
	if err := conn.BindEngineType(connector.EngineType(d.Engine)); err != nil {
		return err
	}
	if d.ConnectionString == "" {
		return nil
	}
	return conn.SetConnectionString(ctx, d.ConnectionString)
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
