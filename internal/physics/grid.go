package physics

// Occupancy is a bitmap of used cells over a board's grid. Positions are
// given in pixels and converted with the board pitch.
type Occupancy struct {
	board Board
	cols  int
	rows  int
	cells []bool
	used  int
}

// NewOccupancy creates an empty occupancy map for b.
func NewOccupancy(b Board) *Occupancy {
	cols, rows := b.Cols(), b.Rows()
	return &Occupancy{
		board: b,
		cols:  cols,
		rows:  rows,
		cells: make([]bool, cols*rows),
	}
}

// Mark flags the cell containing p. Positions off the board are ignored.
func (o *Occupancy) Mark(p Point) {
	idx, ok := o.index(p)
	if !ok || o.cells[idx] {
		return
	}
	o.cells[idx] = true
	o.used++
}

// Occupied reports whether the cell containing p is flagged.
// Positions off the board count as occupied.
func (o *Occupancy) Occupied(p Point) bool {
	idx, ok := o.index(p)
	if !ok {
		return true
	}
	return o.cells[idx]
}

// Free returns the number of unflagged cells.
func (o *Occupancy) Free() int {
	return len(o.cells) - o.used
}

// Each calls fn for every free cell inside the grid window
// [minCol, maxCol) x [minRow, maxRow), row by row.
func (o *Occupancy) Each(minCol, maxCol, minRow, maxRow int, fn func(p Point)) {
	minCol, maxCol = clampRange(minCol, maxCol, o.cols)
	minRow, maxRow = clampRange(minRow, maxRow, o.rows)
	for row := minRow; row < maxRow; row++ {
		for col := minCol; col < maxCol; col++ {
			if !o.cells[row*o.cols+col] {
				fn(o.board.ToPixel(col, row))
			}
		}
	}
}

func (o *Occupancy) index(p Point) (int, bool) {
	if p.X < 0 || p.Y < 0 {
		return 0, false
	}
	col, row := o.board.ToGrid(p)
	if col >= o.cols || row >= o.rows {
		return 0, false
	}
	return row*o.cols + col, true
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
