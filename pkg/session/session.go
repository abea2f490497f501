// Package session tracks per-session process metadata.
package session

import (
	"github.com/google/uuid"
)

// Handle identifies one terminal session for its whole life. Handles are
// never reused.
type Handle string

// NewHandle returns a fresh random handle.
func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// Short is the first eight characters, for log lines.
func (h Handle) Short() string {
	if len(h) > 8 {
		return string(h[:8])
	}
	return string(h)
}

type SpawnState int

const (
	Pending SpawnState = iota
	Running
	Failed
)

func (s SpawnState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Meta is what the store knows about a session's process. PID is only
// meaningful when HasPID is set; it is kept after the process exits.
type Meta struct {
	Handle Handle
	PID    int
	HasPID bool
	State  SpawnState
}

// Widget is the terminal view a tab displays. Implementations must be safe
// to Close more than once.
type Widget interface {
	Handle() Handle
	// Title is the last title the program inside reported, or "".
	Title() string
	// Write sends input to the program.
	Write(p []byte) (int, error)
	Resize(cols, rows int)
	// View renders the widget into exactly cols x rows cells.
	View(cols, rows int) string
	Close() error
}
