// Package spawn starts shell processes for new sessions.
package spawn

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/creack/pty"

	"github.com/b/pterm/pkg/session"
)

// Request describes one process to start.
type Request struct {
	Handle session.Handle
	Argv   []string
	Dir    string // empty inherits ours
	Env    []string
	Cols   int
	Rows   int
}

// Process is a started child. PTY is the controlling side of its terminal;
// it and Cmd are nil when the spawner did not produce a real process.
type Process struct {
	PID int
	PTY *os.File
	Cmd *exec.Cmd
}

// Spawner starts processes asynchronously. done is called exactly once per
// Spawn, from any goroutine.
type Spawner interface {
	Spawn(req Request, done func(Process, error))
}

// PTYSpawner runs each request in its own goroutine on a fresh pty.
type PTYSpawner struct{}

func (PTYSpawner) Spawn(req Request, done func(Process, error)) {
	go func() {
		done(startPTY(req))
	}()
}

func startPTY(req Request) (Process, error) {
	if len(req.Argv) == 0 {
		return Process{PID: -1}, fmt.Errorf("empty argv")
	}

	cmd := exec.Command(req.Argv[0], req.Argv[1:]...)
	cmd.Dir = req.Dir
	cmd.Env = req.Env

	ptmx, err := pty.StartWithSize(cmd, winsize(req.Cols, req.Rows))
	if err != nil {
		return Process{PID: -1}, fmt.Errorf("start %s: %w", req.Argv[0], err)
	}
	return Process{PID: cmd.Process.Pid, PTY: ptmx, Cmd: cmd}, nil
}

const (
	defaultCols = 80
	defaultRows = 24
)

func winsize(cols, rows int) *pty.Winsize {
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}
	return &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)}
}
