package terminal

import (
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/b/pterm/pkg/colors"
	"github.com/b/pterm/pkg/event"
	"github.com/b/pterm/pkg/session"
	"github.com/b/pterm/pkg/spawn"
)

type sink struct {
	mu     sync.Mutex
	events []event.Event
	ch     chan event.Event
}

func newSink() *sink {
	return &sink{ch: make(chan event.Event, 64)}
}

func (s *sink) emit(ev event.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
	select {
	case s.ch <- ev:
	default:
	}
}

func (s *sink) all() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.Event(nil), s.events...)
}

func newTestWidget(t *testing.T) (*Widget, *sink) {
	t.Helper()
	s := newSink()
	return New(session.NewHandle(), colors.DefaultAppearance(), s.emit, zaptest.NewLogger(t)), s
}

func TestWidget_NotRunning(t *testing.T) {
	w, _ := newTestWidget(t)

	_, err := w.Write([]byte("ls\n"))
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.Equal(t, "", w.Title())

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("ls\n"))
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestWidget_ConsumeEmits(t *testing.T) {
	w, s := newTestWidget(t)

	w.consume([]byte("\x1b]0;vim\x07hello"))
	w.consume([]byte(" again"))

	evs := s.all()
	require.Len(t, evs, 2, "title plus a single coalesced output")
	assert.Equal(t, event.TitleChanged{Handle: w.Handle(), Title: "vim"}, evs[0])
	assert.Equal(t, event.Output{Handle: w.Handle()}, evs[1])
	assert.Equal(t, "vim", w.Title())

	// After a redraw the next chunk signals again.
	w.View(10, 1)
	w.consume([]byte("!"))
	assert.Len(t, s.all(), 3)

	// Repeating the same title is not a change.
	w.View(10, 1)
	w.consume([]byte("\x1b]0;vim\x07"))
	evs = s.all()
	require.Len(t, evs, 4)
	assert.IsType(t, event.Output{}, evs[3])
}

func TestWidget_ConsumeAfterCloseIsSilent(t *testing.T) {
	w, s := newTestWidget(t)
	require.NoError(t, w.Close())

	w.consume([]byte("\x1b]0;late\x07data"))

	assert.Empty(t, s.all())
}

func TestWidget_View(t *testing.T) {
	w, _ := newTestWidget(t)
	w.consume([]byte("hello\r\nworld, this is long"))

	got := stripANSI(w.View(5, 3))
	assert.Equal(t, []string{"hello", "world", "     "}, strings.Split(got, "\n"))

	assert.Equal(t, "", w.View(0, 3))
	assert.Equal(t, "", w.View(3, 0))
}

func TestWidget_AttachAfterClose(t *testing.T) {
	w, s := newTestWidget(t)
	require.NoError(t, w.Close())

	assert.False(t, w.Attach(spawn.Process{PID: -1}))
	assert.Empty(t, s.all())
}

func TestWidget_RealProcess(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", `printf '\033]0;hello\007hi\n'; sleep 0.2`)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}

	w, s := newTestWidget(t)
	w.Resize(40, 5)
	require.True(t, w.Attach(spawn.Process{PID: cmd.Process.Pid, PTY: ptmx, Cmd: cmd}))

	var gotTitle, exited bool
	timeout := time.After(5 * time.Second)
	for !exited {
		select {
		case ev := <-s.ch:
			switch ev := ev.(type) {
			case event.TitleChanged:
				gotTitle = ev.Title == "hello"
			case event.ProcessExited:
				exited = true
				assert.NoError(t, ev.Err)
			}
		case <-timeout:
			t.Fatal("no exit event")
		}
	}

	assert.True(t, gotTitle)
	assert.Contains(t, stripANSI(w.View(40, 5)), "hi")
	require.NoError(t, w.Close())
}

func TestWidget_OutputPanicClosesOnlyThatSession(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", "printf hi; sleep 30")
	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}

	exits := make(chan event.ProcessExited, 4)
	emit := func(ev event.Event) {
		switch ev := ev.(type) {
		case event.Output:
			panic("redraw failed")
		case event.ProcessExited:
			exits <- ev
		}
	}
	w := New(session.NewHandle(), colors.DefaultAppearance(), emit, zaptest.NewLogger(t))
	require.True(t, w.Attach(spawn.Process{PID: cmd.Process.Pid, PTY: ptmx, Cmd: cmd}))

	select {
	case ev := <-exits:
		assert.Equal(t, w.Handle(), ev.Handle)
		assert.ErrorIs(t, ev.Err, ErrOutputFailed)
	case <-time.After(5 * time.Second):
		t.Fatal("no exit event after the output handler failed")
	}

	// The widget lock must have been released.
	assert.Equal(t, "", w.Title())
	require.NoError(t, w.Close())
}
