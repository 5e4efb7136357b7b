// Package object holds the board entities: grid cells, food and the snake.
package object

import (
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/physics"
)

// DefaultPadding is the gap in pixels left around a painted cell.
const DefaultPadding = 2

// Cell is one grid-aligned block of the board. Its position never changes
// after construction; its color may.
type Cell struct {
	x, y    int
	width   int
	height  int
	padding int
	color   draw.Color
}

// NewCell creates a cell at pixel position (x, y).
func NewCell(x, y, width, height int, color draw.Color) *Cell {
	return &Cell{
		x:       x,
		y:       y,
		width:   width,
		height:  height,
		padding: DefaultPadding,
		color:   color,
	}
}

func (c *Cell) X() int            { return c.x }
func (c *Cell) Y() int            { return c.y }
func (c *Cell) Width() int        { return c.width }
func (c *Cell) Height() int       { return c.height }
func (c *Cell) Color() draw.Color { return c.color }

// Position returns the cell's pixel position.
func (c *Cell) Position() physics.Point {
	return physics.Point{X: c.x, Y: c.y}
}

// SetColor changes the color used by the next Draw.
func (c *Cell) SetColor(color draw.Color) {
	c.color = color
}

// SetPadding changes the gap left around the painted area. Values that
// would leave nothing to paint are ignored.
func (c *Cell) SetPadding(p int) {
	if p < 0 || 2*p >= c.width || 2*p >= c.height {
		return
	}
	c.padding = p
}

// At reports whether the cell sits at pixel position p.
func (c *Cell) At(p physics.Point) bool {
	return c.x == p.X && c.y == p.Y
}

// Draw paints the padded cell as a filled block.
func (c *Cell) Draw(s draw.Surface) {
	c.paint(s, draw.ShapeFilled)
}

func (c *Cell) paint(s draw.Surface, shape draw.Shape) {
	p := c.padding
	s.DrawCell(c.x+p, c.y+p, c.width-2*p, c.height-2*p, c.color, shape)
}

// Clear erases the cell's full bounding box.
func (c *Cell) Clear(s draw.Surface) {
	s.ClearCell(c.x, c.y, c.width, c.height)
}
