package draw

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sgrReset = "\033[0m"

// ANSISurface draws the board with truecolor escape sequences on any
// writer: a local raw-mode terminal or an SSH session.
type ANSISurface struct {
	cw       *ChunkWriter
	sizeFunc TermSizeFunc
	opts     Options
	hud      lipgloss.Style

	canvas     Color
	background Color
	width      int // Board pixels
	height     int
	score      int
	prompt     string
}

// NewANSISurface creates a surface writing to w. sizeFunc reports the
// terminal size in characters; nil means the local terminal.
func NewANSISurface(w io.Writer, sizeFunc TermSizeFunc, opts Options) *ANSISurface {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	renderer := lipgloss.NewRenderer(w)
	return &ANSISurface{
		cw:       NewChunkWriter(w),
		sizeFunc: sizeFunc,
		opts:     opts.withDefaults(),
		hud:      renderer.NewStyle().Bold(true),
	}
}

// Size implements Surface.
func (s *ANSISurface) Size() (int, int) {
	cols, rows, err := s.sizeFunc()
	if err != nil {
		return 0, 0
	}
	return pixelSize(cols, rows, s.opts)
}

// Reset implements Surface.
func (s *ANSISurface) Reset(width, height int, canvas, background Color) {
	s.width, s.height = width, height
	s.canvas, s.background = canvas, background
	s.hud = s.hud.Foreground(lipgloss.Color(background.Hex())).Background(lipgloss.Color(canvas.Hex()))

	// Erase with the background color set so terminals with BCE fill it.
	s.cw.WriteString(sgrReset + background.bg() + "\033[2J")

	cols := (width / s.opts.CellWidth) * columnsPerCell
	rows := height / s.opts.CellHeight
	line := canvas.bg() + strings.Repeat(" ", cols)
	for row := 0; row < rows; row++ {
		s.cw.WriteAt(1, row+1+hudRows, line)
	}
	s.cw.WriteString(sgrReset)
	s.drawHUD()
}

// DrawCell implements Surface.
func (s *ANSISurface) DrawCell(x, y, width, height int, c Color, shape Shape) {
	s.paint(x, y, width, height, s.canvas.bg()+c.fg()+glyphFor(shape))
}

// ClearCell implements Surface.
func (s *ANSISurface) ClearCell(x, y, width, height int) {
	s.paint(x, y, width, height, s.canvas.bg()+glyphEmpty)
}

func (s *ANSISurface) paint(x, y, width, height int, text string) {
	c0, c1 := cellSpan(x, width, s.opts.CellWidth)
	r0, r1 := cellSpan(y, height, s.opts.CellHeight)
	for gy := r0; gy <= r1; gy++ {
		for gx := c0; gx <= c1; gx++ {
			s.cw.WriteAt(gx*columnsPerCell+1, gy+1+hudRows, text)
		}
	}
	s.cw.WriteString(sgrReset)
}

// DisplayScore implements Surface.
func (s *ANSISurface) DisplayScore(n int) {
	s.score = n
	s.drawHUD()
}

// Prompt implements Surface.
func (s *ANSISurface) Prompt(question string) {
	s.prompt = question
	s.drawHUD()
}

func (s *ANSISurface) drawHUD() {
	s.cw.MoveCursor(1, 1)
	s.cw.WriteString(sgrReset + s.background.bg() + "\033[2K")
	s.cw.WriteString(s.hud.Render(fmt.Sprintf(" %s: %d ", s.opts.ScoreLabel, s.score)))
	if s.prompt != "" {
		s.cw.WriteString(s.background.bg() + "  ")
		s.cw.WriteString(s.hud.Render(" " + s.prompt + " "))
	}
	s.cw.WriteString(sgrReset)
}

// Flush implements Surface.
func (s *ANSISurface) Flush() error {
	return s.cw.Flush()
}

var _ Surface = (*ANSISurface)(nil)
