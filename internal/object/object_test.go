package object

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/physics"
)

var testColor, _ = draw.ParseColor("#ffffff")

// paintCall records one DrawCell or ClearCell.
type paintCall struct {
	x, y, w, h int
	shape      draw.Shape
	clear      bool
}

type stubSurface struct {
	draw.Surface
	calls []paintCall
}

func (s *stubSurface) DrawCell(x, y, w, h int, _ draw.Color, shape draw.Shape) {
	s.calls = append(s.calls, paintCall{x: x, y: y, w: w, h: h, shape: shape})
}

func (s *stubSurface) ClearCell(x, y, w, h int) {
	s.calls = append(s.calls, paintCall{x: x, y: y, w: w, h: h, clear: true})
}

func cellAt(x, y int) *Cell {
	return NewCell(x, y, 40, 40, testColor)
}

func TestCellPaintsPaddedArea(t *testing.T) {
	s := &stubSurface{}
	c := cellAt(80, 40)
	c.Draw(s)
	c.Clear(s)
	NewFood(0, 0, 40, 40, testColor).Draw(s)

	want := []paintCall{
		{x: 82, y: 42, w: 36, h: 36, shape: draw.ShapeFilled},
		{x: 80, y: 40, w: 40, h: 40, clear: true},
		{x: 2, y: 2, w: 36, h: 36, shape: draw.ShapeCross},
	}
	if len(s.calls) != len(want) {
		t.Fatalf("calls = %+v", s.calls)
	}
	for i := range want {
		if s.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, s.calls[i], want[i])
		}
	}
}

func TestCellSetPadding(t *testing.T) {
	tests := []struct {
		padding int
		want    int
	}{
		{0, 0},
		{5, 5},
		{19, 19},
		{20, DefaultPadding},
		{-1, DefaultPadding},
	}
	for _, tt := range tests {
		c := cellAt(0, 0)
		c.SetPadding(tt.padding)
		if c.padding != tt.want {
			t.Errorf("SetPadding(%d) -> %d, want %d", tt.padding, c.padding, tt.want)
		}
	}
}

func TestCellPosition(t *testing.T) {
	a := cellAt(40, 80)
	if a.Position() != (physics.Point{X: 40, Y: 80}) {
		t.Errorf("Position = %v", a.Position())
	}
	if !a.At(physics.Point{X: 40, Y: 80}) || a.At(physics.Point{X: 80, Y: 40}) {
		t.Error("At wrong")
	}
}

func TestSetDirection(t *testing.T) {
	tests := []struct {
		name    string
		current Direction
		next    Direction
		want    bool
	}{
		{"first heading", DirNone, DirLeft, true},
		{"none rejected", DirNone, DirNone, false},
		{"reverse horizontal", DirRight, DirLeft, false},
		{"reverse vertical", DirUp, DirDown, false},
		{"same heading", DirDown, DirDown, false},
		{"turn up", DirRight, DirUp, true},
		{"turn left", DirDown, DirLeft, true},
		{"clear heading", DirUp, DirNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnake(cellAt(0, 0))
			s.direction = tt.current
			if got := s.SetDirection(tt.next); got != tt.want {
				t.Errorf("SetDirection(%v) from %v = %v, want %v", tt.next, tt.current, got, tt.want)
			}
			want := tt.current
			if tt.want {
				want = tt.next
			}
			if s.Direction() != want {
				t.Errorf("direction = %v, want %v", s.Direction(), want)
			}
		})
	}
}

func TestDirectionHelpers(t *testing.T) {
	for _, d := range []Direction{DirLeft, DirRight, DirUp, DirDown} {
		if d.Reverse().Reverse() != d {
			t.Errorf("%v reversed twice", d)
		}
		if d.Orthogonal(d.Reverse()) || d.Orthogonal(d) {
			t.Errorf("%v orthogonal to its own axis", d)
		}
		dx, dy := d.Unit()
		rx, ry := d.Reverse().Unit()
		if dx != -rx || dy != -ry || (dx == 0) == (dy == 0) {
			t.Errorf("%v unit = %d,%d", d, dx, dy)
		}
	}
	if DirNone.Reverse() != DirNone || DirNone.Orthogonal(DirUp) || DirNone.String() != "None" {
		t.Error("DirNone helpers wrong")
	}
}

func TestSnakeTranslationUsesCellPitch(t *testing.T) {
	s := NewSnake(NewCell(0, 0, 20, 30, testColor))
	tests := []struct {
		d      Direction
		dx, dy int
	}{
		{DirLeft, -20, 0},
		{DirRight, 20, 0},
		{DirUp, 0, -30},
		{DirDown, 0, 30},
		{DirNone, 0, 0},
	}
	for _, tt := range tests {
		if dx, dy := s.Translation(tt.d); dx != tt.dx || dy != tt.dy {
			t.Errorf("Translation(%v) = %d,%d, want %d,%d", tt.d, dx, dy, tt.dx, tt.dy)
		}
	}
	if x, y := s.Speed(); x != 20 || y != 30 {
		t.Errorf("Speed = %d,%d", x, y)
	}
}

func TestSnakeQueue(t *testing.T) {
	s := NewSnake(cellAt(0, 0))
	s.AddHead(cellAt(40, 0))
	s.AddHead(cellAt(80, 0))

	if s.Len() != 3 || s.Head().X() != 80 || len(s.Body()) != 2 {
		t.Fatalf("len = %d head = %d body = %d", s.Len(), s.Head().X(), len(s.Body()))
	}
	if !s.BodyContains(physics.Point{X: 0, Y: 0}) || s.BodyContains(physics.Point{X: 80, Y: 0}) {
		t.Error("BodyContains must cover the tail and skip the head")
	}
	if !s.Contains(physics.Point{X: 80, Y: 0}) || s.Contains(physics.Point{X: 120, Y: 0}) {
		t.Error("Contains wrong")
	}

	tail := s.RemoveTail()
	if tail.X() != 0 || s.Len() != 2 || s.Cells()[0].X() != 40 {
		t.Errorf("RemoveTail returned %d, queue now %d long", tail.X(), s.Len())
	}
	if s.ContainsCell(tail) {
		t.Error("removed tail still contained")
	}

	s.RemoveTail()
	s.RemoveTail()
	if s.RemoveTail() != nil || s.Head() != nil || s.Body() != nil {
		t.Error("empty snake returned cells")
	}
}

func TestDrawAllSkipsNil(t *testing.T) {
	s := &stubSurface{}
	snake := NewSnake(cellAt(0, 0))
	snake.AddHead(cellAt(40, 0))
	DrawAll(s, snake, nil, NewFood(80, 0, 40, 40, testColor))
	if len(s.calls) != 3 {
		t.Errorf("calls = %d, want 3", len(s.calls))
	}
}

func testSpawner(cols, rows, margin int) Spawner {
	return Spawner{
		Rand:   rand.New(rand.NewPCG(3, 5)),
		Board:  physics.Board{Width: cols * 40, Height: rows * 40, CellW: 40, CellH: 40},
		Margin: margin,
	}
}

func TestRandomPositionStaysInsideMargin(t *testing.T) {
	sp := testSpawner(10, 8, 2)
	for i := 0; i < 500; i++ {
		p, err := sp.RandomPosition()
		if err != nil {
			t.Fatal(err)
		}
		col, row := sp.Board.ToGrid(p)
		if col < 2 || col >= 8 || row < 2 || row >= 6 || p.X%40 != 0 || p.Y%40 != 0 {
			t.Fatalf("position %v (grid %d,%d) outside the margin", p, col, row)
		}
	}
}

func TestRandomPositionShrinksMargin(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
	}{
		{"single cell", 1, 1},
		{"single row", 5, 1},
		{"two by two", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := testSpawner(tt.cols, tt.rows, 3)
			p, err := sp.RandomPosition()
			if err != nil {
				t.Fatalf("RandomPosition: %v", err)
			}
			if !sp.Board.Contains(p.X, p.Y, 40, 40) {
				t.Errorf("position %v off the board", p)
			}
		})
	}
}

func TestRandomPositionEmptyBoard(t *testing.T) {
	sp := testSpawner(0, 4, 0)
	if _, err := sp.RandomPosition(); !errors.Is(err, ErrBoardSaturated) {
		t.Errorf("err = %v, want ErrBoardSaturated", err)
	}
}

func TestFreePositionAvoidsSnakeAndExclusions(t *testing.T) {
	sp := testSpawner(3, 3, 0)
	snake := NewSnake(cellAt(0, 0))
	for _, p := range [][2]int{{40, 0}, {80, 0}, {80, 40}, {40, 40}, {0, 40}, {0, 80}} {
		snake.AddHead(cellAt(p[0], p[1]))
	}
	exclude := physics.Point{X: 40, Y: 80}

	for i := 0; i < 50; i++ {
		p, err := sp.FreePosition(snake, exclude)
		if err != nil {
			t.Fatal(err)
		}
		if p != (physics.Point{X: 80, Y: 80}) {
			t.Fatalf("FreePosition = %v, want the only free cell", p)
		}
	}
}

func TestFreePositionFallsBackToScan(t *testing.T) {
	sp := testSpawner(20, 20, 0)
	sp.Attempts = 1
	snake := NewSnake(cellAt(0, 0))
	for i := 1; i < 399; i++ {
		snake.AddHead(cellAt(i%20*40, i/20*40))
	}
	p, err := sp.FreePosition(snake)
	if err != nil {
		t.Fatal(err)
	}
	if p != (physics.Point{X: 19 * 40, Y: 19 * 40}) {
		t.Errorf("FreePosition = %v, want the last cell", p)
	}
}

func TestFreePositionIgnoresMarginWhenWindowFull(t *testing.T) {
	sp := testSpawner(3, 3, 1)
	snake := NewSnake(cellAt(40, 40))
	p, err := sp.FreePosition(snake)
	if err != nil {
		t.Fatalf("FreePosition: %v", err)
	}
	if p == (physics.Point{X: 40, Y: 40}) {
		t.Error("spawned on the snake")
	}
}

func TestFreePositionFullBoardSkipsAttempts(t *testing.T) {
	sp := testSpawner(2, 2, 0)
	sp.Attempts = 1 << 30
	snake := NewSnake(cellAt(0, 0))
	snake.AddHead(cellAt(40, 0))
	snake.AddHead(cellAt(40, 40))
	_, err := sp.FreePosition(snake, physics.Point{X: 0, Y: 40}, physics.Point{X: -40, Y: 0})
	if !errors.Is(err, ErrBoardSaturated) {
		t.Fatalf("err = %v, want ErrBoardSaturated", err)
	}
}

func TestSpawnFoodSaturated(t *testing.T) {
	sp := testSpawner(2, 1, 0)
	snake := NewSnake(cellAt(0, 0))
	food, err := sp.SpawnFood(snake, testColor, physics.Point{X: 40, Y: 0})
	if !errors.Is(err, ErrBoardSaturated) || food != nil {
		t.Fatalf("SpawnFood = %v, %v, want ErrBoardSaturated", food, err)
	}

	food, err = sp.SpawnFood(snake, testColor)
	if err != nil {
		t.Fatal(err)
	}
	if food.X() != 40 || food.Width() != 40 {
		t.Errorf("food at %d size %d", food.X(), food.Width())
	}
}
