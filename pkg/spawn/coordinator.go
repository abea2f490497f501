package spawn

import (
	"os"

	"go.uber.org/zap"

	"github.com/b/pterm/pkg/colors"
	"github.com/b/pterm/pkg/event"
	"github.com/b/pterm/pkg/perf"
	"github.com/b/pterm/pkg/session"
)

// TermName is exported to every child as TERM.
const TermName = "xterm-256color"

// Attachable is a widget that can be handed its process once the spawn
// completes. Attach reports false if the widget was already closed; the
// widget is then responsible for getting rid of the process.
type Attachable interface {
	session.Widget
	Attach(p Process) bool
}

// WidgetFactory builds the view for a new session.
type WidgetFactory func(h session.Handle, a colors.Appearance) Attachable

type Options struct {
	Shell     string
	Store     *session.Store
	Spawner   Spawner
	NewWidget WidgetFactory
	Emit      event.Sink
	Log       *zap.Logger
}

// Coordinator creates sessions: widget first, metadata second, process
// last and asynchronously.
type Coordinator struct {
	shell     string
	store     *session.Store
	spawner   Spawner
	newWidget WidgetFactory
	emit      event.Sink
	log       *zap.Logger

	cols, rows int
}

func NewCoordinator(opts Options) *Coordinator {
	return &Coordinator{
		shell:     opts.Shell,
		store:     opts.Store,
		spawner:   opts.Spawner,
		newWidget: opts.NewWidget,
		emit:      opts.Emit,
		log:       opts.Log.Named("spawn"),
	}
}

// SetSize is the content area new processes start with.
func (c *Coordinator) SetSize(cols, rows int) {
	c.cols, c.rows = cols, rows
}

// SpawnSession returns a widget that is registered Pending. The result
// arrives later as an event.SpawnResult; dir "" inherits our directory.
func (c *Coordinator) SpawnSession(a colors.Appearance, dir string) session.Widget {
	h := session.NewHandle()
	w := c.newWidget(h, a)
	c.store.Insert(h)

	req := Request{
		Handle: h,
		Argv:   []string{c.shell},
		Dir:    dir,
		Env:    append(os.Environ(), "TERM="+TermName),
		Cols:   c.cols,
		Rows:   c.rows,
	}
	c.log.Debug("spawning", zap.String("session", h.Short()), zap.String("shell", c.shell), zap.String("dir", dir))

	timer := perf.Start("spawn", zap.String("session", h.Short()))
	c.spawner.Spawn(req, func(p Process, err error) {
		timer.Stop()
		// The result goes out before the widget starts reading, so a title
		// printed right away never overtakes it.
		c.emit(event.SpawnResult{Handle: h, PID: p.PID, Err: err})
		if err == nil && p.PID >= 0 && !w.Attach(p) {
			c.log.Debug("spawn finished after session closed", zap.String("session", h.Short()), zap.Int("pid", p.PID))
		}
	})
	return w
}

// Resolve records a spawn result in the store. It reports whether the
// session is now running; false means the caller must close the tab.
func (c *Coordinator) Resolve(ev event.SpawnResult) bool {
	if ev.Err != nil || ev.PID < 0 {
		c.log.Error("spawn failed", zap.String("session", ev.Handle.Short()), zap.Int("pid", ev.PID), zap.Error(ev.Err))
		c.store.RecordSpawnFailure(ev.Handle)
		return false
	}

	c.store.RecordSpawnSuccess(ev.Handle, ev.PID)
	m, ok := c.store.Get(ev.Handle)
	if !ok {
		return false
	}
	c.log.Info("session running", zap.String("session", ev.Handle.Short()), zap.Int("pid", ev.PID))
	return m.State == session.Running
}
