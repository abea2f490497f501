package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Monospace", cfg.FontFamily)
	assert.Equal(t, 12, cfg.FontSize)
	assert.Equal(t, 1, cfg.TabNumberBase)
	assert.Equal(t, "#c5c8c6", cfg.Colors.Foreground)
	assert.Equal(t, "#1d1f21", cfg.Colors.Background)
	assert.Len(t, cfg.Colors.Palette, 16)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		check  func(t *testing.T, cfg *Config)
	}{
		{
			name:   "toml",
			format: FormatTOML,
			data: `font_family = "Iosevka"
font_size = 14
[colors]
foreground = "white"
background = "#000"
palette = ["#111111", "red"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Iosevka", cfg.FontFamily)
				assert.Equal(t, 14, cfg.FontSize)
				assert.Equal(t, 1, cfg.TabNumberBase)
				assert.Equal(t, "white", cfg.Colors.Foreground)
				assert.Equal(t, []string{"#111111", "red"}, cfg.Colors.Palette)
			},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			data: `font_family: Fira Code
tab_number_base: 0
colors:
  foreground: "#eeeeee"
  background: "#222222"
  palette: []
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Fira Code", cfg.FontFamily)
				assert.Equal(t, 12, cfg.FontSize)
				assert.Equal(t, 0, cfg.TabNumberBase)
				assert.Equal(t, "#222222", cfg.Colors.Background)
				assert.Empty(t, cfg.Colors.Palette)
			},
		},
		{
			name:   "out of range number base falls back to one",
			format: FormatTOML,
			data:   "tab_number_base = 7\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1, cfg.TabNumberBase)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("font_size = ["), FormatTOML)
	assert.Error(t, err)

	_, err = Parse([]byte("font_size: [1"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse(nil, Format("ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"/x/config.toml", FormatTOML, false},
		{"/x/config.TOML", FormatTOML, false},
		{"/x/config.yaml", FormatYAML, false},
		{"/x/config.yml", FormatYAML, false},
		{"/x/config.json", "", true},
		{"/x/config", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Default(), cfg)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("colors = ["), 0644))
	cfg, err = LoadOrDefault(broken)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)

	good := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(good, []byte("font_family: Hack\n"), 0644))
	cfg, err = LoadOrDefault(good)
	require.NoError(t, err)
	assert.Equal(t, "Hack", cfg.FontFamily)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	t.Setenv("PTERM_LOG_LEVEL", "debug")
	t.Setenv("PTERM_PERF", "true")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/bin/zsh", env.Shell)
	assert.Equal(t, "debug", env.LogLevel)
	assert.False(t, env.LogDev)
	assert.True(t, env.Perf)
}

func TestLoadEnv_MissingShell(t *testing.T) {
	t.Setenv("SHELL", "")
	require.NoError(t, os.Unsetenv("SHELL"))

	_, err := LoadEnv()
	assert.ErrorIs(t, err, ErrShellUnset)
}

func TestLoadEnv_BlankShell(t *testing.T) {
	t.Setenv("SHELL", "  ")

	_, err := LoadEnv()
	assert.ErrorIs(t, err, ErrShellUnset)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("font_size = 10\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	require.NoError(t, Watch(ctx, path, func() { changed <- struct{}{} }))

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("font_size = 11\n"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification for config write")
	}
}

func TestWatch_CoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("font_size = 10\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	require.NoError(t, watch(ctx, path, 300*time.Millisecond, func() { changed <- struct{}{} }))

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("font_size = %d\n", 11+i)), 0644))
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification after a burst of writes")
	}
	select {
	case <-changed:
		t.Fatal("burst of writes produced more than one notification")
	case <-time.After(time.Second):
	}
}
