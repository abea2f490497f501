package colors

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Luminance is the WCAG relative luminance, 0 (black) to 1 (white).
func Luminance(c colorful.Color) float64 {
	c = c.Clamped()
	return 0.2126*gammaSRGB(c.R) + 0.7152*gammaSRGB(c.G) + 0.0722*gammaSRGB(c.B)
}

func gammaSRGB(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG ratio between two colours, 1 to 21.
func ContrastRatio(a, b colorful.Color) float64 {
	l1, l2 := Luminance(a), Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// IsLight reports whether c is closer to white than black.
func IsLight(c colorful.Color) bool {
	return Luminance(c) > 0.5
}

// TextColorFor picks black or white, whichever reads better on bg.
func TextColorFor(bg colorful.Color) colorful.Color {
	if ContrastRatio(black, bg) > ContrastRatio(white, bg) {
		return black
	}
	return white
}

// Shade moves c towards white (amount > 0) or black (amount < 0).
// amount is clamped to [-1, 1].
func Shade(c colorful.Color, amount float64) colorful.Color {
	amount = math.Max(-1, math.Min(1, amount))
	if amount >= 0 {
		return c.BlendRgb(white, amount).Clamped()
	}
	return c.BlendRgb(black, -amount).Clamped()
}

// EnsureContrast nudges fg towards black or white until it reaches minRatio
// against bg. If even the extreme cannot get there, the extreme is returned.
func EnsureContrast(fg, bg colorful.Color, minRatio float64) colorful.Color {
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	target := TextColorFor(bg)
	for step := 0.1; step < 1; step += 0.1 {
		c := fg.BlendRgb(target, step).Clamped()
		if ContrastRatio(c, bg) >= minRatio {
			return c
		}
	}
	return target
}
