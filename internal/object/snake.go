package object

import (
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/physics"
)

// Direction is the snake's heading.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "None"
	}
}

func (d Direction) horizontal() bool { return d == DirLeft || d == DirRight }
func (d Direction) vertical() bool   { return d == DirUp || d == DirDown }

// Orthogonal reports whether d and o lie on different axes.
func (d Direction) Orthogonal(o Direction) bool {
	return d.horizontal() && o.vertical() || d.vertical() && o.horizontal()
}

// Reverse returns the opposite heading.
func (d Direction) Reverse() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// Unit returns the axis signs of the heading; exactly one is non-zero
// unless d is DirNone.
func (d Direction) Unit() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	default:
		return 0, 0
	}
}

// Snake is an ordered queue of cells, tail first and head last.
type Snake struct {
	queue     []*Cell
	direction Direction
	stepX     int // Pixels per step on each axis (the grid pitch)
	stepY     int
}

// NewSnake creates a one-cell snake with no heading. Each step moves the
// head by the head cell's size.
func NewSnake(head *Cell) *Snake {
	return &Snake{
		queue: []*Cell{head},
		stepX: head.Width(),
		stepY: head.Height(),
	}
}

// Head returns the most recently added cell, or nil for an empty queue.
func (s *Snake) Head() *Cell {
	if len(s.queue) == 0 {
		return nil
	}
	return s.queue[len(s.queue)-1]
}

// Body returns every cell but the head, tail first.
func (s *Snake) Body() []*Cell {
	if len(s.queue) == 0 {
		return nil
	}
	return s.queue[:len(s.queue)-1]
}

// Cells returns the whole queue, tail first.
func (s *Snake) Cells() []*Cell { return s.queue }

func (s *Snake) Len() int             { return len(s.queue) }
func (s *Snake) Direction() Direction { return s.direction }

// Speed returns the per-step displacement on each axis.
func (s *Snake) Speed() (x, y int) { return s.stepX, s.stepY }

// SetDirection changes the heading. A heading is accepted only when the
// snake has none yet or the new one is orthogonal to it; anything else is
// ignored and false returned.
func (s *Snake) SetDirection(d Direction) bool {
	if d == DirNone {
		return false
	}
	if s.direction != DirNone && !s.direction.Orthogonal(d) {
		return false
	}
	s.direction = d
	return true
}

// Translation returns the displacement one step in direction d causes.
func (s *Snake) Translation(d Direction) (dx, dy int) {
	ux, uy := d.Unit()
	return ux * s.stepX, uy * s.stepY
}

// AddHead appends a new head.
func (s *Snake) AddHead(c *Cell) {
	s.queue = append(s.queue, c)
}

// RemoveTail removes and returns the oldest cell, or nil if empty.
func (s *Snake) RemoveTail() *Cell {
	if len(s.queue) == 0 {
		return nil
	}
	tail := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return tail
}

// ContainsCell reports whether any cell shares c's position.
func (s *Snake) ContainsCell(c *Cell) bool {
	return s.Contains(c.Position())
}

// Contains reports whether any cell sits at p.
func (s *Snake) Contains(p physics.Point) bool {
	for _, c := range s.queue {
		if c.At(p) {
			return true
		}
	}
	return false
}

// BodyContains is Contains restricted to Body.
func (s *Snake) BodyContains(p physics.Point) bool {
	for _, c := range s.Body() {
		if c.At(p) {
			return true
		}
	}
	return false
}

// Draw paints every cell.
func (s *Snake) Draw(surface draw.Surface) {
	for _, c := range s.queue {
		c.Draw(surface)
	}
}
