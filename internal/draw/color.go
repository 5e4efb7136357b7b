package draw

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque RGB color used for board cells.
type Color struct {
	c colorful.Color
}

// ParseColor parses "#rgb" or "#rrggbb".
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("draw: invalid color %q: %w", hex, err)
	}
	return Color{c: c}, nil
}

// RGB returns the 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return c.c.RGB255()
}

// Hex returns the "#rrggbb" form.
func (c Color) Hex() string {
	return c.c.Hex()
}

// Tcell converts the color for a tcell style.
func (c Color) Tcell() tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// fg returns the truecolor SGR sequence selecting c as foreground.
func (c Color) fg() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

// bg returns the truecolor SGR sequence selecting c as background.
func (c Color) bg() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
}
