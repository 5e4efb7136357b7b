package loop

import (
	"github.com/tomz197/snake/internal/object"
	"github.com/tomz197/snake/internal/physics"
)

// Phase is the engine's position in the life cycle of a game.
type Phase int

const (
	PhaseIdle     Phase = iota // Board set up, waiting for the first direction key
	PhaseRunning               // Ticking
	PhasePaused                // Tick timer suspended, state frozen
	PhaseGameOver              // Life ended, waiting for the restart answer
	PhaseStopped               // Player declined to restart or quit; input detached
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	case PhaseStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Reason explains why a life ended.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonWall      Reason = "wall"
	ReasonSelf      Reason = "self"
	ReasonBoardFull Reason = "board full"
)

// State is the per-game mutable state. The engine owns it exclusively;
// a fresh Snake and Food replace the old ones on every restart.
type State struct {
	Phase  Phase
	Board  physics.Board
	Snake  *object.Snake
	Food   *object.Food
	Score  int
	FPS    float64
	Reason Reason // Why the last life ended
}
