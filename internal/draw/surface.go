// Package draw renders the snake board onto terminal surfaces.
package draw

// Shape selects how a cell is painted.
type Shape int

const (
	ShapeFilled Shape = iota // Solid block (snake)
	ShapeCross               // Outlined square with a diagonal cross (food)
)

// Size is a board size in pixels.
type Size struct {
	Width  int
	Height int
}

// Surface is the presentation boundary the game engine draws through.
// Coordinates are board pixels; every position handed to a surface is a
// multiple of the grid pitch the surface was created with.
type Surface interface {
	// Size reports the raw drawable area in pixels. The engine aligns it
	// to the grid before use.
	Size() (width, height int)
	// Reset paints the whole screen with background and the board area
	// (width x height pixels) with canvas.
	Reset(width, height int, canvas, background Color)
	DrawCell(x, y, width, height int, c Color, shape Shape)
	// ClearCell repaints the cell's bounding box with the canvas color.
	ClearCell(x, y, width, height int)
	DisplayScore(n int)
	// Prompt shows a question on the HUD. An empty question removes it.
	Prompt(question string)
	// Flush pushes buffered drawing to the terminal.
	Flush() error
}

// Options configures terminal surfaces.
type Options struct {
	CellWidth  int    // Grid pitch, horizontal pixels
	CellHeight int    // Grid pitch, vertical pixels
	ScoreLabel string // HUD label in front of the score
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = 40
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 40
	}
	if o.ScoreLabel == "" {
		o.ScoreLabel = "Score"
	}
	return o
}

// Terminal layout: one grid cell is two columns wide and one row high,
// and the first row holds the HUD.
const (
	columnsPerCell = 2
	hudRows        = 1
)

// Glyphs for one grid cell.
const (
	glyphFilled = "██"
	glyphCross  = "╳╳"
	glyphEmpty  = "  "
)

func glyphFor(shape Shape) string {
	if shape == ShapeCross {
		return glyphCross
	}
	return glyphFilled
}

// pixelSize converts a terminal size in characters to board pixels.
func pixelSize(cols, rows int, o Options) (width, height int) {
	if cols < 0 {
		cols = 0
	}
	if rows < hudRows {
		rows = hudRows
	}
	return (cols / columnsPerCell) * o.CellWidth, (rows - hudRows) * o.CellHeight
}

// cellSpan returns the grid indices covered by the pixel range [p, p+n).
// last < first when the range is empty.
func cellSpan(p, n, pitch int) (first, last int) {
	if n <= 0 || pitch <= 0 {
		return 0, -1
	}
	return p / pitch, (p + n - 1) / pitch
}
