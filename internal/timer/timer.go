// Package timer implements a pausable single-shot scheduler for the game
// tick. Each fire disarms the scheduler; the callback re-arms it with a
// fresh period, so a slow tick delays the next one instead of stacking.
package timer

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// State is the scheduler's lifecycle position.
type State int

const (
	StateIdle    State = iota // Never started, or fired and not re-armed
	StateRunning              // Armed; C delivers when the delay elapses
	StatePaused               // Disarmed with a remaining delay recorded
	StateStopped              // Cancelled for good
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Scheduler runs a callback once after a delay. It is not safe for
// concurrent use: the owner selects on C and calls Fire from the same
// goroutine that calls Start, Pause, Resume and Stop.
type Scheduler struct {
	clock     clockwork.Clock
	timer     clockwork.Timer
	callback  func()
	started   time.Time
	remaining time.Duration
	state     State
}

// New creates an idle scheduler on clock. A nil clock means wall time.
func New(clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{clock: clock}
}

// Start arms the scheduler to call cb after period, replacing any
// pending or paused delay. A stopped scheduler ignores Start.
func (s *Scheduler) Start(cb func(), period time.Duration) {
	if s.state == StateStopped {
		return
	}
	s.disarm()
	s.callback = cb
	s.remaining = period
	s.arm()
}

// Pause disarms the timer and records how much of the delay is left.
func (s *Scheduler) Pause() {
	if s.state != StateRunning {
		return
	}
	s.disarm()
	s.remaining -= s.clock.Since(s.started)
	if s.remaining < 0 {
		s.remaining = 0
	}
	s.state = StatePaused
}

// Resume re-arms a paused scheduler with the remaining delay.
func (s *Scheduler) Resume() {
	if s.state != StatePaused {
		return
	}
	s.arm()
}

// Stop cancels the scheduler permanently.
func (s *Scheduler) Stop() {
	s.disarm()
	s.callback = nil
	s.state = StateStopped
}

// C returns the channel of the armed timer, or nil when not running.
// A receive from a nil channel blocks forever, so C can sit in a select
// unconditionally.
func (s *Scheduler) C() <-chan time.Time {
	if s.state != StateRunning || s.timer == nil {
		return nil
	}
	return s.timer.Chan()
}

// Fire runs the callback if the scheduler is still running. Call it after
// receiving from C.
func (s *Scheduler) Fire() {
	if s.state != StateRunning {
		return
	}
	cb := s.callback
	s.timer = nil
	s.remaining = 0
	s.state = StateIdle
	if cb != nil {
		cb()
	}
}

// Remaining returns the recorded delay: the full period while running,
// the leftover while paused.
func (s *Scheduler) Remaining() time.Duration {
	return s.remaining
}

// State returns the lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

func (s *Scheduler) arm() {
	s.started = s.clock.Now()
	s.timer = s.clock.NewTimer(s.remaining)
	s.state = StateRunning
}

// disarm stops the timer. A value already sitting in the old channel is
// never read because C hands out the new timer's channel.
func (s *Scheduler) disarm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
