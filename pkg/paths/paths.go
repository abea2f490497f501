// Package paths resolves where pterm keeps its config and state files.
//
//	Config:  $XDG_CONFIG_HOME/pterm/config.toml   (override: PTERM_CONFIG_DIR)
//	State:   $XDG_STATE_HOME/pterm/pterm.log      (override: PTERM_STATE_DIR)
//
// Without the XDG variables the usual ~/.config and ~/.local/state are used.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ConfigFileName is the file looked up inside ConfigDir.
const ConfigFileName = "config.toml"

const appName = "pterm"

// dir is a lazily resolved directory. The first rule whose variable is set
// wins; otherwise the home-relative fallback is used.
type dir struct {
	override string   // variable naming the directory itself
	xdg      string   // variable naming the parent
	fallback []string // path below $HOME

	once sync.Once
	path string
}

func (d *dir) resolve() string {
	d.once.Do(func() {
		if v := os.Getenv(d.override); v != "" {
			d.path = v
			return
		}
		if v := os.Getenv(d.xdg); v != "" {
			d.path = filepath.Join(v, appName)
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			d.path = "."
			return
		}
		d.path = filepath.Join(append([]string{home}, d.fallback...)...)
	})
	return d.path
}

func (d *dir) ensure(kind string) (string, error) {
	p := d.resolve()
	if err := os.MkdirAll(p, 0o755); err != nil {
		return "", fmt.Errorf("create %s dir %s: %w", kind, p, err)
	}
	return p, nil
}

var (
	configDir = newConfigDir()
	stateDir  = newStateDir()
)

func newConfigDir() *dir {
	return &dir{override: "PTERM_CONFIG_DIR", xdg: "XDG_CONFIG_HOME", fallback: []string{".config", appName}}
}

func newStateDir() *dir {
	return &dir{override: "PTERM_STATE_DIR", xdg: "XDG_STATE_HOME", fallback: []string{".local", "state", appName}}
}

func ConfigDir() string { return configDir.resolve() }

func StateDir() string { return stateDir.resolve() }

// ConfigPath is the default config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StatePath joins name onto StateDir, e.g. StatePath("pterm.log").
func StatePath(name string) string {
	return filepath.Join(StateDir(), name)
}

// EnsureConfigDir creates ConfigDir if needed and returns it.
func EnsureConfigDir() (string, error) { return configDir.ensure("config") }

// EnsureStateDir creates StateDir if needed and returns it.
func EnsureStateDir() (string, error) { return stateDir.ensure("state") }

// ResetForTest forgets resolved directories. Only use in tests.
func ResetForTest() {
	configDir = newConfigDir()
	stateDir = newStateDir()
}
