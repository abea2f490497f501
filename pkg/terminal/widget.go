// Package terminal is the pty-backed view shown inside a tab. It passes
// output through as plain lines, tracks the window title the program sets,
// and reports when the process goes away.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/creack/pty"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/b/pterm/pkg/colors"
	"github.com/b/pterm/pkg/event"
	"github.com/b/pterm/pkg/session"
	"github.com/b/pterm/pkg/spawn"
)

// ErrNotRunning is returned by Write before the process is attached or
// after the widget is closed.
var ErrNotRunning = errors.New("terminal not running")

// ErrOutputFailed is reported as the exit error of a session whose output
// could not be processed.
var ErrOutputFailed = errors.New("terminal output handling failed")

const (
	scrollbackLines = 2000
	readBufferSize  = 32 * 1024
)

type Widget struct {
	handle session.Handle
	emit   event.Sink
	log    *zap.Logger
	style  lipgloss.Style

	// dirty is set when an Output event is in flight and cleared by View,
	// so a chatty program produces one redraw per frame.
	dirty atomic.Bool

	mu     sync.Mutex
	parser parser
	screen screen
	title  string
	ptmx   *os.File
	pid    int
	cols   int
	rows   int
	closed bool
	exited bool
}

var _ spawn.Attachable = (*Widget)(nil)

// New builds an unattached widget. The font is advisory: the host
// terminal draws the glyphs.
func New(h session.Handle, a colors.Appearance, emit event.Sink, log *zap.Logger) *Widget {
	w := &Widget{
		handle: h,
		emit:   emit,
		log:    log.Named("terminal").With(zap.String("session", h.Short())),
		style: lipgloss.NewStyle().
			Foreground(lipgloss.Color(a.ForegroundHex())).
			Background(lipgloss.Color(a.BackgroundHex())),
		screen: newScreen(scrollbackLines),
	}
	w.log.Debug("widget created", zap.String("font", a.Font.Family), zap.Int("font_size", a.Font.Size))
	return w
}

// Factory adapts New to spawn.WidgetFactory.
func Factory(emit event.Sink, log *zap.Logger) spawn.WidgetFactory {
	return func(h session.Handle, a colors.Appearance) spawn.Attachable {
		return New(h, a, emit, log)
	}
}

func (w *Widget) Handle() session.Handle { return w.handle }

func (w *Widget) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// Attach starts reading from p. If the widget was closed while the spawn
// was in flight, p is hung up and reaped instead.
func (w *Widget) Attach(p spawn.Process) bool {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.log.Info("discarding process of closed session", zap.Int("pid", p.PID))
		discard(p, w.log)
		return false
	}
	w.ptmx = p.PTY
	w.pid = p.PID
	cols, rows := w.cols, w.rows
	w.mu.Unlock()

	if cols > 0 && rows > 0 && p.PTY != nil {
		if err := pty.Setsize(p.PTY, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
			w.log.Debug("initial resize failed", zap.Error(err))
		}
	}
	if p.PTY != nil {
		go w.readLoop(p.PTY)
	}
	if p.Cmd != nil {
		go w.wait(p.Cmd)
	}
	return true
}

func discard(p spawn.Process, log *zap.Logger) {
	if p.PID > 0 {
		if err := hangup(p.PID); err != nil {
			log.Debug("hangup failed", zap.Int("pid", p.PID), zap.Error(err))
		}
	}
	if p.PTY != nil {
		p.PTY.Close()
	}
	if p.Cmd != nil {
		go p.Cmd.Wait()
	}
}

func (w *Widget) readLoop(f *os.File) {
	defer f.Close()
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("output handling panicked, closing session", zap.Any("panic", r), zap.Stack("stack"))
			if !w.isClosed() {
				w.emit(event.ProcessExited{Handle: w.handle, Err: fmt.Errorf("%w: %v", ErrOutputFailed, r)})
			}
		}
	}()
	buf := make([]byte, readBufferSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			w.consume(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (w *Widget) consume(data []byte) {
	title, changed, closed := w.apply(data)
	if closed {
		return
	}
	if changed {
		w.emit(event.TitleChanged{Handle: w.handle, Title: title})
	}
	if w.dirty.CompareAndSwap(false, true) {
		w.emit(event.Output{Handle: w.handle})
	}
}

func (w *Widget) apply(data []byte) (title string, changed, closed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	title, ok := w.parser.feed(&w.screen, data)
	changed = ok && title != w.title
	if changed {
		w.title = title
	}
	return title, changed, w.closed
}

func (w *Widget) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// wait marks the process exited before reaping it, so Close never signals
// a process group whose leader has already been reaped.
func (w *Widget) wait(cmd *exec.Cmd) {
	awaitExit(cmd.Process.Pid)

	w.mu.Lock()
	w.exited = true
	w.mu.Unlock()

	err := cmd.Wait()

	w.log.Debug("process exited", zap.Error(err))
	if !w.isClosed() {
		w.emit(event.ProcessExited{Handle: w.handle, Err: err})
	}
}

func (w *Widget) Write(p []byte) (int, error) {
	w.mu.Lock()
	f, closed := w.ptmx, w.closed
	w.mu.Unlock()
	if closed || f == nil {
		return 0, ErrNotRunning
	}
	return f.Write(p)
}

func (w *Widget) Resize(cols, rows int) {
	w.mu.Lock()
	if cols == w.cols && rows == w.rows {
		w.mu.Unlock()
		return
	}
	w.cols, w.rows = cols, rows
	f := w.ptmx
	w.mu.Unlock()

	if f == nil || cols <= 0 || rows <= 0 {
		return
	}
	if err := pty.Setsize(f, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}); err != nil {
		w.log.Debug("resize failed", zap.Int("cols", cols), zap.Int("rows", rows), zap.Error(err))
	}
}

// View renders the newest rows lines, each cut or padded to cols cells.
func (w *Widget) View(cols, rows int) string {
	w.dirty.Store(false)
	if cols <= 0 || rows <= 0 {
		return ""
	}

	w.mu.Lock()
	lines := w.screen.tail(rows)
	w.mu.Unlock()

	for len(lines) < rows {
		lines = append(lines, "")
	}
	for i, line := range lines {
		line = runewidth.Truncate(line, cols, "")
		lines[i] = runewidth.FillRight(line, cols)
	}
	return w.style.Render(strings.Join(lines, "\n"))
}

// Close hangs up the process group and releases the pty. The process is
// reaped by the wait goroutine.
func (w *Widget) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	f, pid := w.ptmx, w.pid
	// Signalled under the lock: wait cannot reap until it has set exited.
	if pid > 0 && !w.exited {
		if err := hangup(pid); err != nil {
			w.log.Debug("hangup failed", zap.Int("pid", pid), zap.Error(err))
		}
	}
	w.mu.Unlock()

	if f != nil {
		f.Close()
	}
	return nil
}
