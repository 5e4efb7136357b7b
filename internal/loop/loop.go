// Package loop runs the snake game: the phase state machine, the tick
// step and the single goroutine that serialises input and timer events.
package loop

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/tomz197/snake/internal/audio"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/object"
	"github.com/tomz197/snake/internal/timer"
)

// PlayAgainPrompt is shown once per game over.
const PlayAgainPrompt = "Play again? (y/n)"

// Engine drives one game against one surface. It is not safe for
// concurrent use; Run is the only goroutine that should touch it.
type Engine struct {
	cfg     config.Game
	palette config.Palette
	surface draw.Surface
	sched   *timer.Scheduler
	rng     *rand.Rand
	log     *log.Logger
	sound   audio.Sink
	clock   clockwork.Clock

	state       State
	startedOnce bool // A life has begun since the engine was created
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock the tick timer runs on.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRand sets the random source for spawn positions.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithSound sets the sink for audio cues.
func WithSound(s audio.Sink) Option {
	return func(e *Engine) { e.sound = s }
}

// NewEngine validates cfg and creates an engine drawing on surface.
// Call Start (or Run) to set up the board.
func NewEngine(cfg config.Game, surface draw.Surface, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:     cfg,
		palette: palette,
		surface: surface,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = clockwork.NewRealClock()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	if e.sound == nil {
		e.sound = audio.Nop{}
	}
	e.sched = timer.New(e.clock)
	e.state.FPS = cfg.FPSMin
	return e, nil
}

// State returns a copy of the current state. Snake and Food are shared
// pointers and must not be mutated by the caller.
func (e *Engine) State() State {
	return e.state
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// Scheduler exposes the tick scheduler.
func (e *Engine) Scheduler() *timer.Scheduler {
	return e.sched
}

// Period returns the tick period for the current speed.
func (e *Engine) Period() time.Duration {
	return time.Duration(float64(time.Second) / e.state.FPS)
}

// Run sets up the board and then serialises key presses, resize
// notifications and tick fires until the game stops, keys is closed or
// ctx is done. The surface is flushed after every event.
func (e *Engine) Run(ctx context.Context, keys <-chan input.Key, resizes <-chan draw.Size) error {
	if err := e.Start(); err != nil {
		return err
	}
	if err := e.surface.Flush(); err != nil {
		return fmt.Errorf("loop: flush: %w", err)
	}

	for e.state.Phase != PhaseStopped {
		select {
		case <-ctx.Done():
			e.Quit()
			return nil
		case k, ok := <-keys:
			if !ok {
				e.Quit()
				return nil
			}
			e.HandleKey(k)
		case sz, ok := <-resizes:
			if !ok {
				resizes = nil
				continue
			}
			e.Resize(sz.Width, sz.Height)
		case <-e.sched.C():
			e.sched.Fire()
		}

		if err := e.surface.Flush(); err != nil {
			e.Quit()
			return fmt.Errorf("loop: flush: %w", err)
		}
	}
	return nil
}

// spawner returns a food spawner for the current board.
func (e *Engine) spawner() object.Spawner {
	return object.Spawner{
		Rand:     e.rng,
		Board:    e.state.Board,
		Margin:   e.cfg.SpawnMargin,
		Attempts: e.cfg.SpawnAttempts,
	}
}
