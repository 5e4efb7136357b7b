package draw

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/snake/internal/input"
)

// TcellSurface draws the board on a tcell screen. It is also the key and
// resize source for the tcell backend.
type TcellSurface struct {
	screen tcell.Screen
	opts   Options

	canvas     tcell.Color
	background tcell.Color
	width      int
	height     int
	score      int
	prompt     string
}

// NewTcellSurface wraps an initialised screen.
func NewTcellSurface(screen tcell.Screen, opts Options) *TcellSurface {
	return &TcellSurface{
		screen:     screen,
		opts:       opts.withDefaults(),
		canvas:     tcell.ColorDefault,
		background: tcell.ColorDefault,
	}
}

// Size implements Surface.
func (s *TcellSurface) Size() (int, int) {
	cols, rows := s.screen.Size()
	return pixelSize(cols, rows, s.opts)
}

// Reset implements Surface.
func (s *TcellSurface) Reset(width, height int, canvas, background Color) {
	s.width, s.height = width, height
	s.canvas, s.background = canvas.Tcell(), background.Tcell()

	s.screen.Fill(' ', tcell.StyleDefault.Background(s.background))
	cols := (width / s.opts.CellWidth) * columnsPerCell
	rows := height / s.opts.CellHeight
	style := tcell.StyleDefault.Background(s.canvas)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			s.screen.SetContent(col, row+hudRows, ' ', nil, style)
		}
	}
	s.drawHUD()
}

// DrawCell implements Surface.
func (s *TcellSurface) DrawCell(x, y, width, height int, c Color, shape Shape) {
	style := tcell.StyleDefault.Background(s.canvas).Foreground(c.Tcell())
	s.paint(x, y, width, height, glyphFor(shape), style)
}

// ClearCell implements Surface.
func (s *TcellSurface) ClearCell(x, y, width, height int) {
	s.paint(x, y, width, height, glyphEmpty, tcell.StyleDefault.Background(s.canvas))
}

func (s *TcellSurface) paint(x, y, width, height int, glyph string, style tcell.Style) {
	c0, c1 := cellSpan(x, width, s.opts.CellWidth)
	r0, r1 := cellSpan(y, height, s.opts.CellHeight)
	for gy := r0; gy <= r1; gy++ {
		for gx := c0; gx <= c1; gx++ {
			s.putString(gx*columnsPerCell, gy+hudRows, glyph, style)
		}
	}
}

func (s *TcellSurface) putString(col, row int, text string, style tcell.Style) int {
	for _, r := range text {
		s.screen.SetContent(col, row, r, nil, style)
		col++
	}
	return col
}

// DisplayScore implements Surface.
func (s *TcellSurface) DisplayScore(n int) {
	s.score = n
	s.drawHUD()
}

// Prompt implements Surface.
func (s *TcellSurface) Prompt(question string) {
	s.prompt = question
	s.drawHUD()
}

func (s *TcellSurface) drawHUD() {
	cols, _ := s.screen.Size()
	base := tcell.StyleDefault.Background(s.background)
	for col := 0; col < cols; col++ {
		s.screen.SetContent(col, 0, ' ', nil, base)
	}
	label := tcell.StyleDefault.Background(s.canvas).Foreground(s.background).Bold(true)
	col := s.putString(0, 0, fmt.Sprintf(" %s: %d ", s.opts.ScoreLabel, s.score), label)
	if s.prompt != "" {
		s.putString(col+2, 0, " "+s.prompt+" ", label)
	}
}

// Flush implements Surface.
func (s *TcellSurface) Flush() error {
	s.screen.Show()
	return nil
}

// Events polls the screen until ctx is done or the screen is finalised,
// publishing key codes and board-pixel sizes. Both channels are closed
// when polling stops.
func (s *TcellSurface) Events(ctx context.Context) (<-chan input.Key, <-chan Size) {
	keys := make(chan input.Key, 32)
	sizes := make(chan Size, 4)
	go func() {
		defer close(keys)
		defer close(sizes)
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				key := tcellKey(ev)
				if key == input.KeyNone {
					continue
				}
				select {
				case keys <- key:
				case <-ctx.Done():
					return
				}
			case *tcell.EventResize:
				s.screen.Sync()
				w, h := s.Size()
				select {
				case sizes <- Size{Width: w, Height: h}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return keys, sizes
}

// tcellKey maps a tcell key event to the game's key codes.
func tcellKey(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyCtrlC:
		return input.KeyQuit
	case tcell.KeyRune:
		return input.RuneKey(ev.Rune())
	}
	return input.KeyNone
}

var _ Surface = (*TcellSurface)(nil)
