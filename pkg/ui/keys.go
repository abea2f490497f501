package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	NewTab    key.Binding
	CloseTab  key.Binding
	LastTab   key.Binding
	SwitchTab key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NewTab: key.NewBinding(
			key.WithKeys("alt+t"),
			key.WithHelp("alt+t", "new tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("alt+w"),
			key.WithHelp("alt+w", "close tab"),
		),
		LastTab: key.NewBinding(
			key.WithKeys("alt+0"),
			key.WithHelp("alt+0", "last tab"),
		),
		SwitchTab: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1…9", "go to tab"),
		),
	}
}

// switchTarget returns the 0-based position an alt+digit key selects.
func switchTarget(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

// keyBytes encodes a key press the way a terminal would send it to the
// program. Unknown keys encode to nil.
func keyBytes(msg tea.KeyMsg) []byte {
	var out []byte
	switch {
	case msg.Type == tea.KeyRunes:
		out = []byte(string(msg.Runes))
	case msg.Type == tea.KeySpace:
		out = []byte{' '}
	case msg.Type >= 0 && msg.Type < 0x20, msg.Type == 0x7f:
		// Control keys carry their own byte value.
		out = []byte{byte(msg.Type)}
	default:
		seq := keySequence(msg.Type)
		if seq == "" {
			return nil
		}
		out = []byte(seq)
	}
	if msg.Alt {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

func keySequence(kt tea.KeyType) string {
	switch kt {
	case tea.KeyUp:
		return "\x1b[A"
	case tea.KeyDown:
		return "\x1b[B"
	case tea.KeyRight:
		return "\x1b[C"
	case tea.KeyLeft:
		return "\x1b[D"
	case tea.KeyShiftTab:
		return "\x1b[Z"
	case tea.KeyShiftUp:
		return "\x1b[1;2A"
	case tea.KeyShiftDown:
		return "\x1b[1;2B"
	case tea.KeyShiftRight:
		return "\x1b[1;2C"
	case tea.KeyShiftLeft:
		return "\x1b[1;2D"
	case tea.KeyCtrlUp:
		return "\x1b[1;5A"
	case tea.KeyCtrlDown:
		return "\x1b[1;5B"
	case tea.KeyCtrlRight:
		return "\x1b[1;5C"
	case tea.KeyCtrlLeft:
		return "\x1b[1;5D"
	case tea.KeyHome:
		return "\x1b[H"
	case tea.KeyEnd:
		return "\x1b[F"
	case tea.KeyInsert:
		return "\x1b[2~"
	case tea.KeyDelete:
		return "\x1b[3~"
	case tea.KeyPgUp:
		return "\x1b[5~"
	case tea.KeyPgDown:
		return "\x1b[6~"
	case tea.KeyF1:
		return "\x1bOP"
	case tea.KeyF2:
		return "\x1bOQ"
	case tea.KeyF3:
		return "\x1bOR"
	case tea.KeyF4:
		return "\x1bOS"
	case tea.KeyF5:
		return "\x1b[15~"
	case tea.KeyF6:
		return "\x1b[17~"
	case tea.KeyF7:
		return "\x1b[18~"
	case tea.KeyF8:
		return "\x1b[19~"
	case tea.KeyF9:
		return "\x1b[20~"
	case tea.KeyF10:
		return "\x1b[21~"
	case tea.KeyF11:
		return "\x1b[23~"
	case tea.KeyF12:
		return "\x1b[24~"
	}
	return ""
}
