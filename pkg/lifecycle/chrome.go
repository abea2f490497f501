// Package lifecycle reacts to user actions and session events and keeps
// the tab registry, the session store and the window in step.
package lifecycle

// Chrome is the window around the tabs.
type Chrome interface {
	SetTitle(title string)
	Resize(width, height int)
	// Relayout forces the tab container to be laid out again at the
	// current size.
	Relayout()
	// Close closes the window. Called once, when the last tab goes.
	Close()
}
