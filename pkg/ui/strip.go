package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/b/pterm/pkg/colors"
	"github.com/b/pterm/pkg/tabs"
)

const (
	ellipsis    = "…"
	tabPadding  = 1
	minTabWidth = 6
	// accentIndex is blue in the usual 16-colour palette layout.
	accentIndex = 4
)

// Elide shortens s to at most width cells by cutting out its middle.
func Elide(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}
	if width == 1 {
		return ellipsis
	}

	room := width - runewidth.StringWidth(ellipsis)
	headWidth := (room + 1) / 2
	tailWidth := room - headWidth

	head := runewidth.Truncate(s, headWidth, "")

	runes := []rune(s)
	start, w := len(runes), 0
	for start > 0 {
		rw := runewidth.RuneWidth(runes[start-1])
		if w+rw > tailWidth {
			break
		}
		w += rw
		start--
	}
	return head + ellipsis + string(runes[start:])
}

type stripStyles struct {
	active   lipgloss.Style
	inactive lipgloss.Style
	fill     lipgloss.Style
}

func newStripStyles(a colors.Appearance) stripStyles {
	accent := colors.Shade(a.Background, 0.25)
	if len(a.Palette) > accentIndex {
		accent = a.Palette[accentIndex]
	}
	inactiveBg := colors.Shade(a.Background, 0.08)

	return stripStyles{
		active: lipgloss.NewStyle().
			Bold(true).
			Padding(0, tabPadding).
			Foreground(hex(colors.EnsureContrast(a.Foreground, accent, 4.5))).
			Background(hex(accent)),
		inactive: lipgloss.NewStyle().
			Padding(0, tabPadding).
			Foreground(hex(colors.EnsureContrast(colors.Shade(a.Foreground, -0.3), inactiveBg, 3))).
			Background(hex(inactiveBg)),
		fill: lipgloss.NewStyle().Background(hex(a.Background)),
	}
}

func hex(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}

// tabCell is one tab's place in the strip, in cells from the left edge.
type tabCell struct {
	pos   int
	start int
	width int
	text  string
}

// layoutStrip splits width evenly between the tabs and elides labels that
// do not fit.
func layoutStrip(slots []tabs.Slot, width int) []tabCell {
	if len(slots) == 0 || width <= 0 {
		return nil
	}
	each := max(width/len(slots), minTabWidth)

	cells := make([]tabCell, 0, len(slots))
	x := 0
	for i, s := range slots {
		if x >= width {
			break
		}
		w := min(each, width-x)
		if w <= 2*tabPadding {
			break
		}
		text := Elide(s.Label, w-2*tabPadding)
		cells = append(cells, tabCell{pos: i, start: x, width: w, text: text})
		x += w
	}
	return cells
}

// tabAt returns the position of the tab drawn at column x.
func tabAt(cells []tabCell, x int) (int, bool) {
	for _, c := range cells {
		if x >= c.start && x < c.start+c.width {
			return c.pos, true
		}
	}
	return 0, false
}

func renderStrip(st stripStyles, cells []tabCell, active, width int) string {
	var b strings.Builder
	used := 0
	for _, c := range cells {
		style := st.inactive
		if c.pos == active {
			style = st.active
		}
		inner := c.width - 2*tabPadding
		b.WriteString(style.Render(runewidth.FillRight(c.text, inner)))
		used += c.width
	}
	if used < width {
		b.WriteString(st.fill.Render(strings.Repeat(" ", width-used)))
	}
	return b.String()
}
