package loop

import (
	"errors"

	"github.com/tomz197/snake/internal/audio"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/object"
	"github.com/tomz197/snake/internal/physics"
)

// Tick advances the game by one step. It only acts while running, and
// re-arms the scheduler before anything else so the next tick is queued
// at the period in force when this one started.
//
// Both collision checks look at the snake as it was before this step and
// at the same candidate head position; the body check runs first, so a
// cell that is both food and body ends the game.
func (e *Engine) Tick() {
	if e.state.Phase != PhaseRunning {
		return
	}
	e.sched.Start(e.Tick, e.Period())

	snake := e.state.Snake
	dir := snake.Direction()
	if dir == object.DirNone {
		return
	}
	oldHead := snake.Head()
	dx, dy := snake.Translation(dir)
	next := physics.Point{X: oldHead.X() + dx, Y: oldHead.Y() + dy}

	if !e.state.Board.Contains(next.X, next.Y, oldHead.Width(), oldHead.Height()) {
		e.gameOver(ReasonWall)
		return
	}
	if snake.BodyContains(next) {
		e.gameOver(ReasonSelf)
		return
	}

	full := false
	if e.state.Food != nil && e.state.Food.At(next) {
		full = !e.eat(next)
	} else if tail := snake.RemoveTail(); tail != nil {
		tail.Clear(e.surface)
	}

	newHead := e.newCell(next, e.palette.Head)
	snake.AddHead(newHead)
	newHead.Draw(e.surface)

	if snake.Len() > 1 {
		oldHead.SetColor(e.palette.Body)
		oldHead.Draw(e.surface)
	}

	if full {
		e.gameOver(ReasonBoardFull)
	}
}

// eat scores the food at next and places new food away from the snake
// and from next. It returns false when no free cell is left.
func (e *Engine) eat(next physics.Point) bool {
	e.state.Score++
	e.state.FPS = nextFPS(e.state.FPS, e.cfg.FPSMax)
	e.surface.DisplayScore(e.state.Score)
	e.sound.Play(audio.CueEat)

	e.state.Food.Clear(e.surface)
	food, err := e.spawnFood(next)
	if err != nil {
		if !errors.Is(err, object.ErrBoardSaturated) {
			e.log.Error("spawn food", "err", err)
		}
		e.state.Food = nil
		return false
	}
	e.state.Food = food
	food.Draw(e.surface)

	e.log.Debug("eat", "score", e.state.Score, "fps", e.state.FPS, "length", e.state.Snake.Len()+1)
	return true
}

// nextFPS applies the speed ramp: large gains far from the ceiling,
// shrinking near it, never above it.
func nextFPS(fps, ceiling float64) float64 {
	if fps >= ceiling {
		return ceiling
	}
	return min(ceiling, fps+(ceiling/fps)*config.FPSGain)
}

func (e *Engine) spawnFood(exclude ...physics.Point) (*object.Food, error) {
	food, err := e.spawner().SpawnFood(e.state.Snake, e.palette.Food, exclude...)
	if err != nil {
		return nil, err
	}
	food.SetPadding(e.cfg.Padding)
	return food, nil
}

func (e *Engine) newCell(p physics.Point, c draw.Color) *object.Cell {
	cell := object.NewCell(p.X, p.Y, e.state.Board.CellW, e.state.Board.CellH, c)
	cell.SetPadding(e.cfg.Padding)
	return cell
}

// gameOver ends the life and asks whether to play again.
func (e *Engine) gameOver(reason Reason) {
	e.sched.Stop()
	e.state.Phase = PhaseGameOver
	e.state.Reason = reason
	e.surface.Prompt(PlayAgainPrompt)
	e.sound.Play(audio.CueGameOver)
	e.log.Info("game over", "reason", string(reason), "score", e.state.Score, "length", e.state.Snake.Len())
}
