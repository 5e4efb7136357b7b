package loop

import (
	"fmt"

	"github.com/tomz197/snake/internal/audio"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/object"
	"github.com/tomz197/snake/internal/physics"
	"github.com/tomz197/snake/internal/timer"
)

// PausedPrompt is shown while the game is paused.
const PausedPrompt = "Paused"

// Start aligns the board to the surface and sets up the first life.
func (e *Engine) Start() error {
	w, h := e.surface.Size()
	e.state.Board = physics.Align(w, h, e.cfg.CellWidth, e.cfg.CellHeight)
	return e.init()
}

// init places a fresh snake and food and redraws everything. On error the
// previous entities are kept.
func (e *Engine) init() error {
	sp := e.spawner()
	headPos, err := sp.RandomPosition()
	if err != nil {
		return fmt.Errorf("loop: place snake on %dx%d board: %w", e.state.Board.Width, e.state.Board.Height, err)
	}
	snake := object.NewSnake(e.newCell(headPos, e.palette.Head))

	prev := e.state.Snake
	e.state.Snake = snake
	food, err := e.spawnFood()
	if err != nil {
		e.state.Snake = prev
		return fmt.Errorf("loop: place food on %dx%d board: %w", e.state.Board.Width, e.state.Board.Height, err)
	}
	e.state.Food = food
	e.state.Phase = PhaseIdle
	e.state.Reason = ReasonNone

	b := e.state.Board
	e.surface.Reset(b.Width, b.Height, e.palette.Canvas, e.palette.Background)
	object.DrawAll(e.surface, snake, food)
	e.surface.DisplayScore(e.state.Score)
	e.surface.Prompt("")

	e.log.Debug("board ready", "cols", b.Cols(), "rows", b.Rows(), "head", headPos, "food", food.Position())
	return nil
}

// HandleKey applies one key press according to the current phase.
// Keys that do not apply to the phase are ignored.
func (e *Engine) HandleKey(k input.Key) {
	if k == input.KeyQuit {
		e.Quit()
		return
	}

	switch e.state.Phase {
	case PhaseStopped:
		return
	case PhaseGameOver:
		switch k {
		case input.KeyY, input.KeyEnter:
			e.Answer(true)
		case input.KeyN, input.KeyEscape:
			e.Answer(false)
		}
		return
	}

	if k == input.KeySpace {
		e.togglePause()
		return
	}

	d := directionFor(k)
	if d == object.DirNone || e.state.Phase == PhasePaused {
		return
	}
	if !e.state.Snake.SetDirection(d) {
		return
	}
	if e.state.Phase == PhaseIdle {
		e.begin()
	}
}

// directionFor maps arrow key codes to headings.
func directionFor(k input.Key) object.Direction {
	switch k {
	case input.KeyLeft:
		return object.DirLeft
	case input.KeyRight:
		return object.DirRight
	case input.KeyUp:
		return object.DirUp
	case input.KeyDown:
		return object.DirDown
	default:
		return object.DirNone
	}
}

// begin starts ticking after the first accepted direction of a life.
func (e *Engine) begin() {
	e.state.Phase = PhaseRunning
	e.sched.Start(e.Tick, e.Period())
	e.sound.Play(audio.CueStart)
	e.log.Debug("start", "direction", e.state.Snake.Direction().String(), "fps", e.state.FPS)

	if e.cfg.Paused && !e.startedOnce {
		e.pause()
	}
	e.startedOnce = true
}

func (e *Engine) togglePause() {
	switch e.state.Phase {
	case PhaseRunning:
		e.pause()
	case PhasePaused:
		e.sched.Resume()
		e.state.Phase = PhaseRunning
		e.surface.Prompt("")
		e.log.Debug("resume", "remaining", e.sched.Remaining())
	}
}

func (e *Engine) pause() {
	e.sched.Pause()
	e.state.Phase = PhasePaused
	e.surface.Prompt(PausedPrompt)
	e.log.Debug("pause", "remaining", e.sched.Remaining())
}

// Resize takes new raw surface dimensions. It only has an effect while no
// life is in progress: the board is re-aligned and set up again.
func (e *Engine) Resize(width, height int) {
	if e.state.Phase != PhaseIdle {
		return
	}
	prev := e.state.Board
	e.state.Board = physics.Align(width, height, e.cfg.CellWidth, e.cfg.CellHeight)
	if err := e.init(); err != nil {
		e.state.Board = prev
		e.log.Warn("resize ignored", "width", width, "height", height, "err", err)
	}
}

// Answer resolves the game-over prompt: restart resets score, speed and
// entities; otherwise the engine stops.
func (e *Engine) Answer(restart bool) {
	if e.state.Phase != PhaseGameOver {
		return
	}
	if !restart {
		e.log.Info("stop", "score", e.state.Score)
		e.Quit()
		return
	}

	e.state.Score = 0
	e.state.FPS = e.cfg.FPSMin
	e.sched = timer.New(e.clock)
	if err := e.init(); err != nil {
		e.log.Error("restart", "err", err)
		e.Quit()
		return
	}
	e.log.Info("restart")
}

// Quit stops the engine from any phase.
func (e *Engine) Quit() {
	if e.state.Phase == PhaseStopped {
		return
	}
	e.sched.Stop()
	e.state.Phase = PhaseStopped
}
