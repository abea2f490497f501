// Package event defines the closed set of messages the lifecycle
// controller reacts to. Background goroutines never touch tab state
// directly; they emit one of these and the control loop applies it.
package event

import "github.com/b/pterm/pkg/session"

// Event is implemented only by the types in this package.
type Event interface {
	isEvent()
}

// Sink delivers an event to the control loop. It must be safe to call from
// any goroutine.
type Sink func(Event)

// NewTabRequested asks for a new session in the active tab's directory.
type NewTabRequested struct{}

// SpawnResult is the single completion of a spawn attempt.
type SpawnResult struct {
	Handle session.Handle
	PID    int
	Err    error
}

// TitleChanged carries a title the program set with OSC 0 or OSC 2.
type TitleChanged struct {
	Handle session.Handle
	Title  string
}

// ProcessExited fires once when the session's process has been reaped.
type ProcessExited struct {
	Handle session.Handle
	Err    error
}

// TabSwitched selects the tab at Position (0-based).
type TabSwitched struct {
	Position int
}

// CloseRequested closes a tab on the user's behalf.
type CloseRequested struct {
	Handle session.Handle
}

// WindowResized reports the new host terminal size in cells.
type WindowResized struct {
	Width  int
	Height int
}

// Output means the session has new output to draw.
type Output struct {
	Handle session.Handle
}

func (NewTabRequested) isEvent() {}
func (SpawnResult) isEvent()     {}
func (TitleChanged) isEvent()    {}
func (ProcessExited) isEvent()   {}
func (TabSwitched) isEvent()     {}
func (CloseRequested) isEvent()  {}
func (WindowResized) isEvent()   {}
func (Output) isEvent()          {}
