package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

var (
	red   = mustColor("#ee334d")
	white = mustColor("#fff")
)

func mustColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		r, g, b uint8
		wantErr bool
	}{
		{"#ee334d", 0xee, 0x33, 0x4d, false},
		{"#fff", 0xff, 0xff, 0xff, false},
		{"#000000", 0, 0, 0, false},
		{"white", 0, 0, 0, true},
		{"#12", 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if r, g, b := c.RGB(); r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("RGB = %d,%d,%d, want %d,%d,%d", r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestColorSequences(t *testing.T) {
	if got := red.fg(); got != "\033[38;2;238;51;77m" {
		t.Errorf("fg = %q", got)
	}
	if got := white.bg(); got != "\033[48;2;255;255;255m" {
		t.Errorf("bg = %q", got)
	}
	if white.Hex() != "#ffffff" {
		t.Errorf("Hex = %s", white.Hex())
	}
}

func TestPixelSize(t *testing.T) {
	o := Options{}.withDefaults()
	tests := []struct {
		cols, rows   int
		wantW, wantH int
	}{
		{80, 24, 40 * 40, 23 * 40},
		{81, 25, 40 * 40, 24 * 40},
		{1, 1, 0, 0},
		{0, 0, 0, 0},
		{-5, -5, 0, 0},
	}
	for _, tt := range tests {
		if w, h := pixelSize(tt.cols, tt.rows, o); w != tt.wantW || h != tt.wantH {
			t.Errorf("pixelSize(%d, %d) = %d,%d, want %d,%d", tt.cols, tt.rows, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestCellSpan(t *testing.T) {
	tests := []struct {
		p, n        int
		first, last int
	}{
		{0, 40, 0, 0},
		{42, 36, 1, 1},
		{40, 80, 1, 2},
		{0, 0, 0, -1},
	}
	for _, tt := range tests {
		if first, last := cellSpan(tt.p, tt.n, 40); first != tt.first || last != tt.last {
			t.Errorf("cellSpan(%d, %d) = %d,%d, want %d,%d", tt.p, tt.n, first, last, tt.first, tt.last)
		}
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	cw.WriteAt(3, 2, "ab")
	cw.MoveCursor(1, 1)
	big := strings.Repeat("x", 3*maxChunkSize+7)
	cw.WriteString(big)

	if cw.Pending() == 0 || out.Len() != 0 {
		t.Fatal("writes not buffered until Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "\033[2;3Hab\033[1;1H"+big; got != want {
		t.Errorf("flushed %d bytes, want %d", len(got), len(want))
	}
	if cw.Pending() != 0 {
		t.Error("buffer not reset")
	}
}

func newTestANSI(cols, rows int) (*ANSISurface, *bytes.Buffer) {
	var out bytes.Buffer
	size := func() (int, int, error) { return cols, rows, nil }
	return NewANSISurface(&out, size, Options{ScoreLabel: "Points"}), &out
}

func TestANSISurfaceSize(t *testing.T) {
	s, _ := newTestANSI(41, 11)
	if w, h := s.Size(); w != 20*40 || h != 10*40 {
		t.Errorf("Size = %d,%d", w, h)
	}

	failing := NewANSISurface(&bytes.Buffer{}, func() (int, int, error) {
		return 0, 0, errors.New("not a terminal")
	}, Options{})
	if w, h := failing.Size(); w != 0 || h != 0 {
		t.Errorf("Size on error = %d,%d", w, h)
	}
}

func TestANSISurfaceDrawing(t *testing.T) {
	s, out := newTestANSI(20, 10)
	s.Reset(160, 120, red, white)
	s.DrawCell(42, 82, 36, 36, white, ShapeFilled)
	s.DrawCell(82, 2, 36, 36, white, ShapeCross)
	s.ClearCell(0, 0, 40, 40)
	s.DisplayScore(3)
	s.Prompt("Play again? (y/n)")
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	checks := []struct {
		name string
		want string
	}{
		{"erase with background", white.bg() + "\033[2J"},
		{"canvas rows", "\033[4;1H" + red.bg() + strings.Repeat(" ", 8)},
		{"snake cell at grid (1,2)", "\033[4;3H" + red.bg() + white.fg() + glyphFilled},
		{"food cell at grid (2,0)", "\033[2;5H" + red.bg() + white.fg() + glyphCross},
		{"cleared cell", "\033[2;1H" + red.bg() + glyphEmpty},
		{"score", "Points: 3"},
		{"prompt", "Play again? (y/n)"},
	}
	for _, c := range checks {
		if !strings.Contains(got, c.want) {
			t.Errorf("%s: output lacks %q", c.name, c.want)
		}
	}
	if strings.Contains(got, "\033[5;1H") {
		t.Error("canvas painted below the board")
	}
}

func TestANSISurfacePromptCleared(t *testing.T) {
	s, out := newTestANSI(20, 10)
	s.Reset(160, 120, red, white)
	s.Prompt("Paused")
	s.Flush()
	out.Reset()

	s.Prompt("")
	s.Flush()
	if strings.Contains(out.String(), "Paused") {
		t.Error("cleared prompt still rendered")
	}
}

func newTestTcell(t *testing.T, cols, rows int) (*TcellSurface, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return NewTcellSurface(screen, Options{}), screen
}

func contentAt(screen tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := screen.GetContent(x, y)
	return r, style
}

func TestTcellSurfaceDrawing(t *testing.T) {
	s, screen := newTestTcell(t, 20, 10)
	if w, h := s.Size(); w != 10*40 || h != 9*40 {
		t.Fatalf("Size = %d,%d", w, h)
	}

	s.Reset(160, 120, red, white)
	s.DrawCell(42, 82, 36, 36, white, ShapeFilled)
	s.DrawCell(82, 2, 36, 36, white, ShapeCross)
	s.DisplayScore(12)
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		x, y   int
		want   rune
		wantBg tcell.Color
	}{
		{"snake left half", 2, 3, '█', red.Tcell()},
		{"snake right half", 3, 3, '█', red.Tcell()},
		{"food", 4, 1, '╳', red.Tcell()},
		{"empty canvas", 0, 1, ' ', red.Tcell()},
		{"outside board", 10, 5, ' ', white.Tcell()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, style := contentAt(screen, tt.x, tt.y)
			_, bg, _ := style.Decompose()
			if r != tt.want || bg != tt.wantBg {
				t.Errorf("(%d,%d) = %q bg %v, want %q bg %v", tt.x, tt.y, r, bg, tt.want, tt.wantBg)
			}
		})
	}

	var hud strings.Builder
	for x := 0; x < 20; x++ {
		r, _ := contentAt(screen, x, 0)
		hud.WriteRune(r)
	}
	if !strings.Contains(hud.String(), "Score: 12") {
		t.Errorf("HUD = %q", hud.String())
	}

	s.ClearCell(40, 80, 40, 40)
	if r, _ := contentAt(screen, 2, 3); r != ' ' {
		t.Errorf("cleared cell shows %q", r)
	}
}
