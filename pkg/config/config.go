package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/b/pterm/pkg/paths"
)

// Config is the user-editable appearance file.
type Config struct {
	FontFamily    string `toml:"font_family" yaml:"font_family"`
	FontSize      int    `toml:"font_size" yaml:"font_size"`
	TabNumberBase int    `toml:"tab_number_base" yaml:"tab_number_base"` // 0 or 1 (default: 1)
	Colors        Colors `toml:"colors" yaml:"colors"`
}

// Colors holds color strings as written in the file. They are parsed by
// package colors, not here.
type Colors struct {
	Foreground string   `toml:"foreground" yaml:"foreground"`
	Background string   `toml:"background" yaml:"background"`
	Palette    []string `toml:"palette" yaml:"palette"`
}

// Env holds settings taken from the process environment.
type Env struct {
	Shell    string `envconfig:"SHELL" required:"true"`
	LogLevel string `envconfig:"PTERM_LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"PTERM_LOG_DEV" default:"false"`
	Perf     bool   `envconfig:"PTERM_PERF" default:"false"`
}

// ErrShellUnset is returned by LoadEnv when SHELL is missing or blank.
var ErrShellUnset = errors.New("SHELL must be set")

// LoadEnv reads Env from the environment. A missing SHELL is an error the
// caller is expected to treat as fatal.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		if strings.Contains(err.Error(), "SHELL") {
			return nil, fmt.Errorf("%w: %v", ErrShellUnset, err)
		}
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	if strings.TrimSpace(env.Shell) == "" {
		return nil, ErrShellUnset
	}
	return &env, nil
}

// DefaultConfigPath returns the config file location, honouring the
// PTERM_CONFIG_DIR and XDG_CONFIG_HOME overrides.
func DefaultConfigPath() string {
	return paths.ConfigPath()
}
