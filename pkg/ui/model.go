// Package ui is the Bubble Tea front end: it feeds input and session
// events to the lifecycle controller and draws the tab strip and the
// active terminal.
package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/b/pterm/pkg/colors"
	"github.com/b/pterm/pkg/event"
	"github.com/b/pterm/pkg/lifecycle"
	"github.com/b/pterm/pkg/perf"
	"github.com/b/pterm/pkg/terminal"
)

// AppearanceChanged carries a reloaded appearance. Tabs opened afterwards
// use it; the strip restyles at once.
type AppearanceChanged struct {
	Appearance colors.Appearance
}

type Model struct {
	ctrl   *lifecycle.Controller
	chrome *Chrome
	keys   keyMap
	styles stripStyles
	log    *zap.Logger

	width  int
	height int
}

func New(ctrl *lifecycle.Controller, chrome *Chrome, a colors.Appearance, log *zap.Logger) *Model {
	return &Model{
		ctrl:   ctrl,
		chrome: chrome,
		keys:   defaultKeyMap(),
		styles: newStripStyles(a),
		log:    log.Named("ui"),
	}
}

// Init opens the first tab.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return event.NewTabRequested{} }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ctrl.Handle(event.WindowResized{Width: msg.Width, Height: msg.Height})

	case tea.KeyMsg:
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case AppearanceChanged:
		m.ctrl.SetAppearance(msg.Appearance)
		m.styles = newStripStyles(msg.Appearance)

	case event.Event:
		m.ctrl.Handle(msg)
	}
	return m, m.chrome.drain()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	reg := m.ctrl.Registry()
	switch {
	case key.Matches(msg, m.keys.NewTab):
		m.ctrl.Handle(event.NewTabRequested{})
		return
	case key.Matches(msg, m.keys.CloseTab):
		if slot, ok := reg.Active(); ok {
			m.ctrl.Handle(event.CloseRequested{Handle: slot.Widget.Handle()})
		}
		return
	case key.Matches(msg, m.keys.LastTab):
		m.ctrl.Handle(event.TabSwitched{Position: reg.Len() - 1})
		return
	case key.Matches(msg, m.keys.SwitchTab):
		if pos, ok := switchTarget(msg); ok {
			m.ctrl.Handle(event.TabSwitched{Position: pos})
		}
		return
	}

	slot, ok := reg.Active()
	if !ok {
		return
	}
	data := keyBytes(msg)
	if data == nil {
		return
	}
	if _, err := slot.Widget.Write(data); err != nil && !errors.Is(err, terminal.ErrNotRunning) {
		m.log.Debug("write to session failed", zap.String("session", slot.Widget.Handle().Short()), zap.Error(err))
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Y != 0 {
		return
	}
	reg := m.ctrl.Registry()
	if !reg.ShowTabs() {
		return
	}
	pos, ok := tabAt(layoutStrip(reg.Slots(), m.width), msg.X)
	if !ok {
		return
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		m.ctrl.Handle(event.TabSwitched{Position: pos})
	case tea.MouseButtonMiddle:
		if slot, ok := reg.At(pos); ok {
			m.ctrl.Handle(event.CloseRequested{Handle: slot.Widget.Handle()})
		}
	}
}

func (m *Model) View() string {
	if m.ctrl.Closed() {
		return ""
	}
	reg := m.ctrl.Registry()
	slot, ok := reg.Active()
	if !ok {
		return ""
	}

	cols, rows := m.ctrl.ContentSize()
	var content string
	perf.Track("render", func() { content = slot.Widget.View(cols, rows) })
	if !reg.ShowTabs() {
		return content
	}
	strip := renderStrip(m.styles, layoutStrip(reg.Slots(), m.width), reg.ActivePosition(), m.width)
	return strip + "\n" + content
}
