package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default.toml
var defaultConfig []byte

var ErrUnknownFormat = errors.New("unknown config format")

// Format selects the decoder used for a config file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the decoder from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// LoadConfig reads and decodes the config file at path.
func LoadConfig(path string) (*Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes data in the given format. Fields absent from data keep
// their defaults.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Config{TabNumberBase: 1}
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the embedded default config.
func Default() *Config {
	cfg, err := Parse(defaultConfig, FormatTOML)
	if err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// LoadOrDefault loads path, falling back to Default when it cannot be read
// or parsed. The load error is still returned so the caller can report it.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.TabNumberBase != 0 && cfg.TabNumberBase != 1 {
		cfg.TabNumberBase = 1
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 12
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Monospace"
	}
}
