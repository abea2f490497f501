package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/b/pterm/pkg/colors"
	"github.com/b/pterm/pkg/config"
	"github.com/b/pterm/pkg/event"
	"github.com/b/pterm/pkg/label"
	"github.com/b/pterm/pkg/lifecycle"
	"github.com/b/pterm/pkg/logging"
	"github.com/b/pterm/pkg/paths"
	"github.com/b/pterm/pkg/perf"
	"github.com/b/pterm/pkg/session"
	"github.com/b/pterm/pkg/spawn"
	"github.com/b/pterm/pkg/terminal"
	"github.com/b/pterm/pkg/ui"
)

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "pterm: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "config file (default: <config dir>/config.toml)")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		fatal("%v", err)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fatal("stdin and stdout must be a terminal")
	}

	if _, err := paths.EnsureStateDir(); err != nil {
		fatal("%v", err)
	}
	if _, err := paths.EnsureConfigDir(); err != nil {
		fmt.Fprintf(os.Stderr, "pterm: %v\n", err)
	}

	log, err := logging.New(logging.FromEnv(*env, *debug))
	if err != nil {
		fatal("logger: %v", err)
	}
	defer log.Sync()
	if env.Perf {
		perf.Enable(log)
	}

	path := *configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadOrDefault(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("no config file, using default", zap.String("path", path))
	case err != nil:
		fmt.Fprintf(os.Stderr, "pterm: %v; using the default config\n", err)
		log.Warn("config not loaded, using default", zap.String("path", path), zap.Error(err))
	}
	appearance, err := colors.FromConfig(cfg, log)
	if err != nil {
		fatal("config %s: %v", path, err)
	}

	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	var program *tea.Program
	emit := func(ev event.Event) { program.Send(ev) }

	store := session.NewStore(log)
	chrome := ui.NewChrome()
	coord := spawn.NewCoordinator(spawn.Options{
		Shell:     env.Shell,
		Store:     store,
		Spawner:   spawn.PTYSpawner{},
		NewWidget: terminal.Factory(emit, log),
		Emit:      emit,
		Log:       log,
	})
	ctrl := lifecycle.New(lifecycle.Options{
		Chrome:     chrome,
		Store:      store,
		Sessions:   coord,
		Env:        label.CaptureEnv(),
		NumberBase: cfg.TabNumberBase,
		Appearance: appearance,
		Log:        log,
	})
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		ctrl.Handle(event.WindowResized{Width: w, Height: h})
	}

	program = tea.NewProgram(ui.New(ctrl, chrome, appearance, log), tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := config.Watch(ctx, path, func() { reloadAppearance(path, log, program) }); err != nil {
		log.Warn("config reload disabled", zap.Error(err))
	}

	log.Info("starting", zap.String("shell", env.Shell), zap.String("config", path))
	if _, err := program.Run(); err != nil {
		log.Error("program failed", zap.Error(err))
		log.Sync()
		fatal("%v", err)
	}
	log.Info("exiting")
}

// reloadAppearance re-reads the config after it changes on disk. A broken
// file keeps the current appearance.
func reloadAppearance(path string, log *zap.Logger, p *tea.Program) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Warn("config reload failed", zap.String("path", path), zap.Error(err))
		return
	}
	a, err := colors.FromConfig(cfg, log)
	if err != nil {
		log.Warn("config reload rejected", zap.String("path", path), zap.Error(err))
		return
	}
	log.Info("config reloaded", zap.String("path", path))
	p.Send(ui.AppearanceChanged{Appearance: a})
}
