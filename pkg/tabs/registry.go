// Package tabs keeps the ordered set of open tabs and their labels.
package tabs

import (
	"github.com/b/pterm/pkg/label"
	"github.com/b/pterm/pkg/session"
)

// Slot is one tab. Title is the last title the session reported; it
// survives renumbering.
type Slot struct {
	Widget session.Widget
	Label  string
	Title  string
}

// Registry owns tab order. Positions are always 0..Len()-1 in display
// order; labels number them from base. It is owned by the control loop.
type Registry struct {
	slots   []*Slot
	active  int
	base    int
	env     label.Env
	onEmpty func()
}

// New returns an empty registry. onEmpty runs each time the last tab is
// removed.
func New(env label.Env, base int, onEmpty func()) *Registry {
	return &Registry{
		active:  -1,
		base:    base,
		env:     env,
		onEmpty: onEmpty,
	}
}

// Insert appends w and returns its position. The first tab becomes active.
func (r *Registry) Insert(w session.Widget) int {
	pos := len(r.slots)
	r.slots = append(r.slots, &Slot{Widget: w})
	r.relabel(pos)
	if r.active < 0 {
		r.active = 0
	}
	return pos
}

// Remove drops the tab for h and renumbers every tab after it. It reports
// false if h is not present.
func (r *Registry) Remove(h session.Handle) bool {
	pos := r.PositionOf(h)
	if pos < 0 {
		return false
	}

	r.slots = append(r.slots[:pos], r.slots[pos+1:]...)
	for i := pos; i < len(r.slots); i++ {
		r.relabel(i)
	}

	switch {
	case len(r.slots) == 0:
		r.active = -1
		if r.onEmpty != nil {
			r.onEmpty()
		}
	case pos < r.active:
		r.active--
	case r.active >= len(r.slots):
		r.active = len(r.slots) - 1
	}
	return true
}

func (r *Registry) relabel(pos int) {
	s := r.slots[pos]
	n := pos + r.base
	if s.Title != "" {
		s.Label = label.FormatTitled(n, s.Title)
		return
	}
	s.Label = label.FormatDefault(n, r.env)
}

// SetActive selects pos. Out of range leaves the selection unchanged.
func (r *Registry) SetActive(pos int) bool {
	if pos < 0 || pos >= len(r.slots) {
		return false
	}
	r.active = pos
	return true
}

// ActivePosition is -1 when there are no tabs.
func (r *Registry) ActivePosition() int {
	return r.active
}

// Active returns the selected tab.
func (r *Registry) Active() (Slot, bool) {
	return r.At(r.active)
}

// At resolves a position to its tab.
func (r *Registry) At(pos int) (Slot, bool) {
	if pos < 0 || pos >= len(r.slots) {
		return Slot{}, false
	}
	return *r.slots[pos], true
}

// PositionOf returns h's position or -1.
func (r *Registry) PositionOf(h session.Handle) int {
	for i, s := range r.slots {
		if s.Widget.Handle() == h {
			return i
		}
	}
	return -1
}

// SetTitle records title for h and relabels its tab.
func (r *Registry) SetTitle(h session.Handle, title string) bool {
	pos := r.PositionOf(h)
	if pos < 0 {
		return false
	}
	r.slots[pos].Title = title
	r.relabel(pos)
	return true
}

// Slots returns the tabs in display order.
func (r *Registry) Slots() []Slot {
	out := make([]Slot, len(r.slots))
	for i, s := range r.slots {
		out[i] = *s
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.slots)
}

// ShowTabs reports whether the tab strip should be drawn.
func (r *Registry) ShowTabs() bool {
	return len(r.slots) > 1
}

// Base is the number shown on the first tab.
func (r *Registry) Base() int {
	return r.base
}
