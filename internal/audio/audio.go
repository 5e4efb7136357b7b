// Package audio plays short tone cues for game events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a game event with a sound.
type Cue int

const (
	CueStart Cue = iota
	CueEat
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "Start"
	case CueEat:
		return "Eat"
	case CueGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// tone is one segment of a cue.
type tone struct {
	freq     float64
	duration time.Duration
}

var cueTones = map[Cue][]tone{
	CueStart:    {{freq: 660, duration: 60 * time.Millisecond}},
	CueEat:      {{freq: 880, duration: 50 * time.Millisecond}},
	CueGameOver: {{freq: 440, duration: 120 * time.Millisecond}, {freq: 220, duration: 240 * time.Millisecond}},
}

// Sink receives cues. Player and Nop implement it.
type Sink interface {
	Play(c Cue)
}

// Nop discards every cue.
type Nop struct{}

// Play implements Sink.
func (Nop) Play(Cue) {}

// Player renders cues on the system speaker.
type Player struct {
	mu     sync.Mutex
	closed bool
}

// NewPlayer initialises the speaker. The error is meant to be logged and
// the game continued with Nop.
func NewPlayer() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}
	return &Player{}, nil
}

// Play implements Sink. It never blocks on playback.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	s, err := cueStreamer(c)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Clear()
	speaker.Close()
}

// cueStreamer builds the tone sequence for c.
func cueStreamer(c Cue) (beep.Streamer, error) {
	tones, ok := cueTones[c]
	if !ok {
		return nil, fmt.Errorf("audio: no tones for cue %v", c)
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sampleRate.N(t.duration), sine))
	}
	return beep.Seq(parts...), nil
}

var (
	_ Sink = Nop{}
	_ Sink = (*Player)(nil)
)
