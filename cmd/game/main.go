package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/snake/internal/audio"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop"
)

// resizePollInterval is how often the ANSI backend checks the terminal size.
const resizePollInterval = 250 * time.Millisecond

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run plays one session and returns the process exit code. Deferred
// cleanup (log file, speaker, terminal state) completes before it returns.
func run(args []string, stderr io.Writer) int {
	cfg := config.FromEnv("SNAKE")

	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.SetOutput(stderr)
	backend := fs.String("backend", config.GetEnv("SNAKE_BACKEND", "ansi"), "terminal backend: ansi or tcell")
	sound := fs.Bool("sound", config.GetEnvBool("SNAKE_SOUND", false), "play sound cues")
	logPath := fs.String("log", config.GetEnv("SNAKE_LOG", ""), "write debug log to this file")
	seed := fs.Uint64("seed", 0, "random seed (0 picks one)")
	fs.Float64Var(&cfg.FPSMin, "fps", cfg.FPSMin, "initial ticks per second")
	fs.Float64Var(&cfg.FPSMax, "fps-max", cfg.FPSMax, "speed ceiling in ticks per second")
	fs.IntVar(&cfg.CellWidth, "cell-width", cfg.CellWidth, "grid pitch in pixels, horizontal")
	fs.IntVar(&cfg.CellHeight, "cell-height", cfg.CellHeight, "grid pitch in pixels, vertical")
	fs.BoolVar(&cfg.Paused, "paused", cfg.Paused, "start the first game paused")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 2
	}

	logger, closeLog, err := newLogger(*logPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	opts := []loop.Option{loop.WithLogger(logger)}
	if *seed != 0 {
		opts = append(opts, loop.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	}
	if *sound {
		player, err := audio.NewPlayer()
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts = append(opts, loop.WithSound(player))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *backend {
	case "ansi":
		err = runANSI(ctx, cfg, opts)
	case "tcell":
		err = runTcell(ctx, cfg, opts)
	default:
		err = fmt.Errorf("unknown backend %q", *backend)
	}
	if err != nil {
		logger.Error("game ended", "err", err)
		fmt.Fprintf(stderr, "game error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger logs to path, or discards when path is empty: stdout is the
// game board.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "snake",
	})
	return logger, func() { _ = f.Close() }, nil
}

func runANSI(ctx context.Context, cfg config.Game, opts []loop.Option) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	draw.HideCursor(os.Stdout)
	defer func() {
		draw.ClearScreen(os.Stdout)
		draw.ShowCursor(os.Stdout)
	}()

	surface := draw.NewANSISurface(os.Stdout, nil, cfg.SurfaceOptions())
	engine, err := loop.NewEngine(cfg, surface, opts...)
	if err != nil {
		return err
	}

	keys := input.StartStream(ctx, bufio.NewReader(os.Stdin))
	return engine.Run(ctx, keys.Keys(), watchSize(ctx, surface))
}

// watchSize polls the surface size and reports changes.
func watchSize(ctx context.Context, surface draw.Surface) <-chan draw.Size {
	sizes := make(chan draw.Size, 1)
	go func() {
		ticker := time.NewTicker(resizePollInterval)
		defer ticker.Stop()
		w, h := surface.Size()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			nw, nh := surface.Size()
			if nw == w && nh == h {
				continue
			}
			w, h = nw, nh
			select {
			case sizes <- draw.Size{Width: w, Height: h}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return sizes
}

func runTcell(ctx context.Context, cfg config.Game, opts []loop.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	surface := draw.NewTcellSurface(screen, cfg.SurfaceOptions())
	engine, err := loop.NewEngine(cfg, surface, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	keys, sizes := surface.Events(ctx)
	return engine.Run(ctx, keys, sizes)
}
