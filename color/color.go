// Package color resolves theme color names into SGR escape
// sequences, downsampling to the xterm 256-color palette when the
// terminal does not advertise truecolor support.
package color

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Reset clears all character attributes.
const Reset = "\x1b[0m"

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// nameIndex maps every xterm palette name to its lowest index.
var nameIndex = buildNameIndex()

func buildNameIndex() map[string]uint8 {
	m := make(map[string]uint8, len(names256))
	for i, n := range names256 {
		if _, ok := m[n]; !ok {
			m[n] = uint8(i)
		}
	}
	return m
}

// Name returns the xterm name of a palette entry.
func Name(code uint8) string {
	return names256[code]
}

// names maps the ANSI color names to their palette index.
var names = map[string]uint8{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"white":          7,
	"gray":           8,
	"grey":           8,
	"bright-black":   8,
	"bright-red":     9,
	"bright-green":   10,
	"bright-yellow":  11,
	"bright-blue":    12,
	"bright-magenta": 13,
	"bright-cyan":    14,
	"bright-white":   15,
}

// palette holds the xterm default 256-color palette.
var palette = buildPalette()

func buildPalette() [256]Color {
	var p [256]Color
	system := []Color{
		{0x00, 0x00, 0x00}, {0x80, 0x00, 0x00}, {0x00, 0x80, 0x00}, {0x80, 0x80, 0x00},
		{0x00, 0x00, 0x80}, {0x80, 0x00, 0x80}, {0x00, 0x80, 0x80}, {0xc0, 0xc0, 0xc0},
		{0x80, 0x80, 0x80}, {0xff, 0x00, 0x00}, {0x00, 0xff, 0x00}, {0xff, 0xff, 0x00},
		{0x00, 0x00, 0xff}, {0xff, 0x00, 0xff}, {0x00, 0xff, 0xff}, {0xff, 0xff, 0xff},
	}
	copy(p[:16], system)
	levels := []uint8{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}
	for i := 16; i < 232; i++ {
		n := i - 16
		p[i] = Color{levels[n/36], levels[n/6%6], levels[n%6]}
	}
	for i := 232; i < 256; i++ {
		v := uint8(8 + 10*(i-232))
		p[i] = Color{v, v, v}
	}
	return p
}

// Parse resolves a color given as an ANSI name, an xterm palette
// name, a palette index or a hex value like #1c1c1c.
func Parse(s string) (Color, error) {
	if idx, ok := names[s]; ok {
		return palette[idx], nil
	}
	if idx, ok := nameIndex[s]; ok {
		return palette[idx], nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return Color{}, fmt.Errorf("color index %d out of range", n)
		}
		return palette[n], nil
	}
	if len(s) > 0 && s[0] == '#' {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("bad color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return Color{r, g, b}, nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// To256 returns the index of the closest color in the 256-color
// palette.
func (c Color) To256() uint8 {
	want := c.colorful()
	best := 0
	bestDist := -1.0
	for i, p := range palette {
		d := want.DistanceRgb(p.colorful())
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return uint8(best)
}

// truecolor reports whether the terminal advertises 24-bit color.
func truecolor() bool {
	v := os.Getenv("COLORTERM")
	return v == "truecolor" || v == "24bit"
}

// Fg returns the escape sequence selecting c as foreground color.
func (c Color) Fg() string {
	if truecolor() {
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
	}
	return fmt.Sprintf("\x1b[38;5;%dm", c.To256())
}

// Bg returns the escape sequence selecting c as background color.
func (c Color) Bg() string {
	if truecolor() {
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
	}
	return fmt.Sprintf("\x1b[48;5;%dm", c.To256())
}
