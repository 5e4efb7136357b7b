package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomz197/snake/internal/draw"
)

// Defaults for a new game.
const (
	DefaultCanvasColor     = "#ee334d"
	DefaultBackgroundColor = "#fff"
	DefaultSnakeHeadColor  = "#fff"
	DefaultSnakeBodyColor  = "#fff"
	DefaultFoodColor       = "#fff"
	DefaultCellWidth       = 40
	DefaultCellHeight      = 40
	DefaultPadding         = 2
	FPSMin                 = 6
	FPSMax                 = 24
	DefaultSpawnMargin     = 1 // Cells
	DefaultSpawnAttempts   = 64
	DefaultScoreLabel      = "Score"
)

// Speed ramp: every eat adds (FPSMax/fps)*FPSGain, capped at FPSMax.
const FPSGain = 0.05

// Game holds the tunable game parameters.
type Game struct {
	CanvasColor     string
	BackgroundColor string
	SnakeHeadColor  string
	SnakeBodyColor  string
	FoodColor       string
	CellWidth       int
	CellHeight      int
	Padding         int
	Paused          bool    // First life starts paused
	FPSMin          float64 // Initial speed, restored on restart
	FPSMax          float64 // Speed ceiling
	SpawnMargin     int
	SpawnAttempts   int
	ScoreLabel      string
}

// Default returns the stock configuration.
func Default() Game {
	return Game{
		CanvasColor:     DefaultCanvasColor,
		BackgroundColor: DefaultBackgroundColor,
		SnakeHeadColor:  DefaultSnakeHeadColor,
		SnakeBodyColor:  DefaultSnakeBodyColor,
		FoodColor:       DefaultFoodColor,
		CellWidth:       DefaultCellWidth,
		CellHeight:      DefaultCellHeight,
		Padding:         DefaultPadding,
		FPSMin:          FPSMin,
		FPSMax:          FPSMax,
		SpawnMargin:     DefaultSpawnMargin,
		SpawnAttempts:   DefaultSpawnAttempts,
		ScoreLabel:      DefaultScoreLabel,
	}
}

// FromEnv returns Default overridden by environment variables named
// prefix + "_" + field, e.g. SNAKE_FPS or SNAKE_CANVAS_COLOR.
func FromEnv(prefix string) Game {
	g := Default()
	key := func(name string) string { return prefix + "_" + name }

	g.CanvasColor = GetEnv(key("CANVAS_COLOR"), g.CanvasColor)
	g.BackgroundColor = GetEnv(key("BACKGROUND_COLOR"), g.BackgroundColor)
	g.SnakeHeadColor = GetEnv(key("HEAD_COLOR"), g.SnakeHeadColor)
	g.SnakeBodyColor = GetEnv(key("BODY_COLOR"), g.SnakeBodyColor)
	g.FoodColor = GetEnv(key("FOOD_COLOR"), g.FoodColor)
	g.CellWidth = GetEnvInt(key("CELL_WIDTH"), g.CellWidth)
	g.CellHeight = GetEnvInt(key("CELL_HEIGHT"), g.CellHeight)
	g.Padding = GetEnvInt(key("PADDING"), g.Padding)
	g.Paused = GetEnvBool(key("PAUSED"), g.Paused)
	g.FPSMin = GetEnvFloat(key("FPS"), g.FPSMin)
	g.FPSMax = GetEnvFloat(key("FPS_MAX"), g.FPSMax)
	g.SpawnMargin = GetEnvInt(key("SPAWN_MARGIN"), g.SpawnMargin)
	g.ScoreLabel = GetEnv(key("SCORE_LABEL"), g.ScoreLabel)
	return g
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid game configuration")

// Validate checks ranges and colors.
func (g Game) Validate() error {
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		return fmt.Errorf("%w: cell size %dx%d must be positive", ErrInvalid, g.CellWidth, g.CellHeight)
	}
	if g.Padding < 0 || 2*g.Padding >= g.CellWidth || 2*g.Padding >= g.CellHeight {
		return fmt.Errorf("%w: padding %d does not fit a %dx%d cell", ErrInvalid, g.Padding, g.CellWidth, g.CellHeight)
	}
	if !finite(g.FPSMin) || !finite(g.FPSMax) || g.FPSMin <= 0 || g.FPSMax < g.FPSMin {
		return fmt.Errorf("%w: fps range [%g, %g]", ErrInvalid, g.FPSMin, g.FPSMax)
	}
	if g.SpawnMargin < 0 {
		return fmt.Errorf("%w: negative spawn margin %d", ErrInvalid, g.SpawnMargin)
	}
	if _, err := g.Palette(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Palette holds the parsed colors.
type Palette struct {
	Canvas     draw.Color
	Background draw.Color
	Head       draw.Color
	Body       draw.Color
	Food       draw.Color
}

// Palette parses the configured colors.
func (g Game) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		dst *draw.Color
		hex string
	}{
		{&p.Canvas, g.CanvasColor},
		{&p.Background, g.BackgroundColor},
		{&p.Head, g.SnakeHeadColor},
		{&p.Body, g.SnakeBodyColor},
		{&p.Food, g.FoodColor},
	}
	for _, f := range fields {
		c, err := draw.ParseColor(f.hex)
		if err != nil {
			return Palette{}, err
		}
		*f.dst = c
	}
	return p, nil
}

// SurfaceOptions returns the draw options matching the grid settings.
func (g Game) SurfaceOptions() draw.Options {
	return draw.Options{
		CellWidth:  g.CellWidth,
		CellHeight: g.CellHeight,
		ScoreLabel: g.ScoreLabel,
	}
}
