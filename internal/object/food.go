package object

import (
	"github.com/tomz197/snake/internal/draw"
)

// Food is a cell drawn as an outlined square with a diagonal cross.
type Food struct {
	Cell
}

// NewFood creates food at pixel position (x, y).
func NewFood(x, y, width, height int, color draw.Color) *Food {
	return &Food{Cell: *NewCell(x, y, width, height, color)}
}

// Draw paints the food marker.
func (f *Food) Draw(s draw.Surface) {
	f.paint(s, draw.ShapeCross)
}
