package colors

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/b/pterm/pkg/config"
)

// ErrPalette wraps the first palette entry that failed to parse. Unlike
// foreground/background there is no fallback for it.
var ErrPalette = errors.New("invalid palette entry")

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// Font is passed through to every new terminal widget.
type Font struct {
	Family string
	Size   int
}

// Appearance is the parsed, shared look of every terminal in the window.
type Appearance struct {
	Font       Font
	Foreground colorful.Color
	Background colorful.Color
	Palette    []colorful.Color
}

// DefaultAppearance is white on black with no palette.
func DefaultAppearance() Appearance {
	return Appearance{
		Font:       Font{Family: "Monospace", Size: 12},
		Foreground: white,
		Background: black,
	}
}

// FromConfig parses cfg's colours. Foreground and background fall back to
// white on black (logged); any bad palette entry returns ErrPalette.
func FromConfig(cfg *config.Config, log *zap.Logger) (Appearance, error) {
	a := DefaultAppearance()
	a.Font = Font{Family: cfg.FontFamily, Size: cfg.FontSize}

	if fg, err := ParseColor(cfg.Colors.Foreground); err == nil {
		a.Foreground = fg
	} else {
		log.Warn("foreground color unusable, using white", zap.String("value", cfg.Colors.Foreground), zap.Error(err))
	}
	if bg, err := ParseColor(cfg.Colors.Background); err == nil {
		a.Background = bg
	} else {
		log.Warn("background color unusable, using black", zap.String("value", cfg.Colors.Background), zap.Error(err))
	}

	a.Palette = make([]colorful.Color, 0, len(cfg.Colors.Palette))
	for i, s := range cfg.Colors.Palette {
		c, err := ParseColor(s)
		if err != nil {
			return Appearance{}, fmt.Errorf("%w %d: %w", ErrPalette, i, err)
		}
		a.Palette = append(a.Palette, c)
	}
	return a, nil
}

// ForegroundHex returns the foreground as #rrggbb.
func (a Appearance) ForegroundHex() string {
	return a.Foreground.Clamped().Hex()
}

// BackgroundHex returns the background as #rrggbb.
func (a Appearance) BackgroundHex() string {
	return a.Background.Clamped().Hex()
}
