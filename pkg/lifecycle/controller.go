package lifecycle

import (
	"go.uber.org/zap"

	"github.com/b/pterm/pkg/colors"
	"github.com/b/pterm/pkg/event"
	"github.com/b/pterm/pkg/label"
	"github.com/b/pterm/pkg/session"
	"github.com/b/pterm/pkg/tabs"
)

// StripHeight is the number of rows the tab strip takes when shown.
const StripHeight = 1

// Sessions creates sessions and settles their spawn results.
type Sessions interface {
	SpawnSession(a colors.Appearance, dir string) session.Widget
	Resolve(ev event.SpawnResult) bool
	SetSize(cols, rows int)
}

type Options struct {
	Chrome     Chrome
	Store      *session.Store
	Sessions   Sessions
	Env        label.Env
	NumberBase int
	Appearance colors.Appearance
	Log        *zap.Logger
}

// Controller owns the window state. Handle must only be called from the
// control loop.
type Controller struct {
	log        *zap.Logger
	chrome     Chrome
	store      *session.Store
	sessions   Sessions
	registry   *tabs.Registry
	appearance colors.Appearance

	width, height int
	closed        bool
}

func New(opts Options) *Controller {
	c := &Controller{
		log:        opts.Log.Named("lifecycle"),
		chrome:     opts.Chrome,
		store:      opts.Store,
		sessions:   opts.Sessions,
		appearance: opts.Appearance,
	}
	c.registry = tabs.New(opts.Env, opts.NumberBase, c.windowEmpty)
	return c
}

func (c *Controller) windowEmpty() {
	c.closed = true
	c.log.Info("last tab closed")
	c.chrome.Close()
}

// Handle applies one event.
func (c *Controller) Handle(ev event.Event) {
	if c.closed {
		return
	}

	switch ev := ev.(type) {
	case event.NewTabRequested:
		c.newTab()

	case event.SpawnResult:
		if !c.sessions.Resolve(ev) {
			c.closeTab(ev.Handle, "spawn failed")
		}

	case event.TitleChanged:
		c.titleChanged(ev.Handle, ev.Title)

	case event.ProcessExited:
		if ev.Err != nil {
			c.log.Debug("process exit status", zap.String("session", ev.Handle.Short()), zap.Error(ev.Err))
		}
		c.closeTab(ev.Handle, "process exited")

	case event.TabSwitched:
		if c.registry.SetActive(ev.Position) {
			c.syncTitle()
		}

	case event.CloseRequested:
		c.closeTab(ev.Handle, "closed by user")

	case event.WindowResized:
		c.width, c.height = ev.Width, ev.Height
		c.chrome.Resize(ev.Width, ev.Height)
		c.chrome.Relayout()
		c.resizeAll()

	case event.Output:
		// Redrawn by the caller.
	}
}

func (c *Controller) newTab() {
	dir := ""
	if slot, ok := c.registry.Active(); ok {
		if cwd, ok := c.store.LookupCwd(slot.Widget.Handle()); ok {
			dir = cwd
		}
	}

	w := c.sessions.SpawnSession(c.appearance, dir)
	pos := c.registry.Insert(w)
	c.registry.SetActive(pos)
	c.log.Info("tab opened", zap.String("session", w.Handle().Short()), zap.Int("position", pos), zap.String("dir", dir))

	c.resizeAll()
	c.syncTitle()
}

func (c *Controller) titleChanged(h session.Handle, title string) {
	m, ok := c.store.Get(h)
	if !ok || m.State != session.Running {
		c.log.Debug("ignoring title for session that is not running", zap.String("session", h.Short()))
		return
	}
	if !c.registry.SetTitle(h, title) {
		return
	}
	if slot, ok := c.registry.Active(); ok && slot.Widget.Handle() == h {
		c.chrome.SetTitle(title)
	}
}

func (c *Controller) closeTab(h session.Handle, reason string) {
	slot, ok := c.registry.At(c.registry.PositionOf(h))
	if !ok {
		return
	}
	c.log.Info("closing tab", zap.String("session", h.Short()), zap.String("reason", reason))

	if err := slot.Widget.Close(); err != nil {
		c.log.Warn("close widget", zap.String("session", h.Short()), zap.Error(err))
	}
	c.store.Remove(h)
	c.registry.Remove(h)
	if c.closed {
		return
	}
	c.resizeAll()
	c.syncTitle()
}

func (c *Controller) syncTitle() {
	slot, ok := c.registry.Active()
	if !ok {
		return
	}
	if slot.Title != "" {
		c.chrome.SetTitle(slot.Title)
		return
	}
	c.chrome.SetTitle(slot.Label)
}

func (c *Controller) resizeAll() {
	cols, rows := c.ContentSize()
	c.sessions.SetSize(cols, rows)
	for _, s := range c.registry.Slots() {
		s.Widget.Resize(cols, rows)
	}
}

// ContentSize is the area left for the active widget below the tab strip.
func (c *Controller) ContentSize() (cols, rows int) {
	rows = c.height
	if c.registry.ShowTabs() {
		rows -= StripHeight
	}
	return max(c.width, 0), max(rows, 0)
}

// Registry exposes the tabs for drawing. Callers must not mutate it.
func (c *Controller) Registry() *tabs.Registry {
	return c.registry
}

// Closed reports whether the window has been closed.
func (c *Controller) Closed() bool {
	return c.closed
}

// SetAppearance changes the look of tabs opened from now on.
func (c *Controller) SetAppearance(a colors.Appearance) {
	c.appearance = a
}
