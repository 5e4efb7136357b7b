package object

import (
	"errors"
	"math/rand/v2"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/physics"
)

// ErrBoardSaturated is returned when no free cell is left to spawn on.
var ErrBoardSaturated = errors.New("object: board saturated")

// DefaultSpawnAttempts is how many random positions are tried before
// falling back to a scan of every free cell.
const DefaultSpawnAttempts = 64

// Spawner picks random free grid positions inside a board, keeping a
// margin of whole cells away from the edges.
type Spawner struct {
	Rand     *rand.Rand
	Board    physics.Board
	Margin   int // Cells kept free along every edge
	Attempts int // Random tries before the exhaustive scan
}

// window returns the grid index range positions are sampled from. The
// margin shrinks on boards too small to honour it.
func (sp Spawner) window() (minCol, maxCol, minRow, maxRow int) {
	cols, rows := sp.Board.Cols(), sp.Board.Rows()
	mx := min(max(sp.Margin, 0), (cols-1)/2)
	my := min(max(sp.Margin, 0), (rows-1)/2)
	return mx, cols - mx, my, rows - my
}

// RandomPosition returns a uniformly random grid-aligned position inside
// the spawn window.
func (sp Spawner) RandomPosition() (physics.Point, error) {
	if sp.Board.Empty() {
		return physics.Point{}, ErrBoardSaturated
	}
	minCol, maxCol, minRow, maxRow := sp.window()
	col := minCol + sp.Rand.IntN(maxCol-minCol)
	row := minRow + sp.Rand.IntN(maxRow-minRow)
	return sp.Board.ToPixel(col, row), nil
}

// FreePosition returns a random position inside the spawn window that
// no snake cell and none of exclude occupy. After Attempts random misses
// it picks uniformly among the remaining free cells of the window, then
// of the whole board, and reports ErrBoardSaturated when there are none.
func (sp Spawner) FreePosition(snake *Snake, exclude ...physics.Point) (physics.Point, error) {
	occ := physics.NewOccupancy(sp.Board)
	if snake != nil {
		for _, c := range snake.Cells() {
			occ.Mark(c.Position())
		}
	}
	for _, e := range exclude {
		occ.Mark(e)
	}
	if occ.Free() == 0 {
		return physics.Point{}, ErrBoardSaturated
	}

	attempts := sp.Attempts
	if attempts <= 0 {
		attempts = DefaultSpawnAttempts
	}
	for i := 0; i < attempts; i++ {
		p, err := sp.RandomPosition()
		if err != nil {
			return physics.Point{}, err
		}
		if !occ.Occupied(p) {
			return p, nil
		}
	}

	var free []physics.Point
	collect := func(p physics.Point) { free = append(free, p) }
	minCol, maxCol, minRow, maxRow := sp.window()
	occ.Each(minCol, maxCol, minRow, maxRow, collect)
	if len(free) == 0 {
		// The margin is only a preference; edge cells are still playable.
		occ.Each(0, sp.Board.Cols(), 0, sp.Board.Rows(), collect)
	}
	return free[sp.Rand.IntN(len(free))], nil
}

// SpawnFood creates food on a free cell.
func (sp Spawner) SpawnFood(snake *Snake, color draw.Color, exclude ...physics.Point) (*Food, error) {
	p, err := sp.FreePosition(snake, exclude...)
	if err != nil {
		return nil, err
	}
	return NewFood(p.X, p.Y, sp.Board.CellW, sp.Board.CellH, color), nil
}
