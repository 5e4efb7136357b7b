// Package physics provides board geometry and collision utilities for a
// grid-aligned board.
package physics

// Point is a pixel position on the board.
type Point struct {
	X, Y int
}

// Board is the playable rectangle in pixels and its grid pitch.
// Width and Height are multiples of CellW and CellH.
type Board struct {
	Width  int
	Height int
	CellW  int
	CellH  int
}

// Align builds a board from raw pixel dimensions: each dimension is
// rounded down to the pitch and one more cell is taken off as margin.
// Negative results are clamped to zero.
func Align(rawW, rawH, cellW, cellH int) Board {
	return Board{
		Width:  alignDim(rawW, cellW),
		Height: alignDim(rawH, cellH),
		CellW:  cellW,
		CellH:  cellH,
	}
}

func alignDim(dim, pitch int) int {
	if pitch <= 0 || dim <= 0 {
		return 0
	}
	d := dim - dim%pitch - pitch
	if d < 0 {
		return 0
	}
	return d
}

// Cols returns the number of grid columns.
func (b Board) Cols() int {
	if b.CellW <= 0 {
		return 0
	}
	return b.Width / b.CellW
}

// Rows returns the number of grid rows.
func (b Board) Rows() int {
	if b.CellH <= 0 {
		return 0
	}
	return b.Height / b.CellH
}

// Empty reports whether the board has no cells.
func (b Board) Empty() bool {
	return b.Cols() == 0 || b.Rows() == 0
}

// Contains reports whether the rectangle at (x, y) of size w x h lies
// entirely inside [0, Width) x [0, Height).
func (b Board) Contains(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x+w <= b.Width && y+h <= b.Height
}

// ToGrid converts a pixel position to grid indices.
func (b Board) ToGrid(p Point) (col, row int) {
	return p.X / b.CellW, p.Y / b.CellH
}

// ToPixel converts grid indices to a pixel position.
func (b Board) ToPixel(col, row int) Point {
	return Point{X: col * b.CellW, Y: row * b.CellH}
}
