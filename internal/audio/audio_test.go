package audio

import (
	"testing"
	"time"
)

func drain(t *testing.T, c Cue) int {
	t.Helper()
	s, err := cueStreamer(c)
	if err != nil {
		t.Fatalf("cueStreamer(%v): %v", c, err)
	}
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok || n == 0 {
			return total
		}
	}
}

func TestCueLengths(t *testing.T) {
	tests := []struct {
		cue  Cue
		want time.Duration
	}{
		{CueStart, 60 * time.Millisecond},
		{CueEat, 50 * time.Millisecond},
		{CueGameOver, 360 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			got := drain(t, tt.cue)
			want := sampleRate.N(tt.want)
			if got != want {
				t.Errorf("samples = %d, want %d", got, want)
			}
		})
	}
}

func TestUnknownCue(t *testing.T) {
	if _, err := cueStreamer(Cue(42)); err == nil {
		t.Error("expected error for unknown cue")
	}
	if got := Cue(42).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}

func TestNopIgnoresCues(t *testing.T) {
	var s Sink = Nop{}
	s.Play(CueEat)
	s.Play(CueGameOver)
}
