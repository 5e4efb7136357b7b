package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/server"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake-ssh",
	})
	if config.GetEnvBool("SNAKE_DEBUG", false) {
		logger.SetLevel(log.DebugLevel)
	}

	cfg := config.FromEnv("SNAKE")
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid game configuration", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	sessions := server.New()
	h := &handler{cfg: cfg, sessions: sessions, log: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.DebugLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "sessions", sessions.Count())
	if !sessions.Shutdown(15 * time.Second) {
		logger.Warn("sessions still running after timeout", "sessions", sessions.Count())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// handler runs one single-player game per SSH session.
type handler struct {
	cfg      config.Game
	sessions *server.Server
	log      *log.Logger
}

func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		gs := h.sessions.Register(sess.Context(), sess.User())
		defer h.sessions.Unregister(gs.ID)
		logger := h.log.With("session", gs.ID, "user", sess.User())
		logger.Info("game session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizes := newSizeTracker(pty.Window.Width, pty.Window.Height)
		surface := draw.NewANSISurface(sess, sizes.getSize, h.cfg.SurfaceOptions())

		engine, err := loop.NewEngine(h.cfg, surface, loop.WithLogger(logger))
		if err != nil {
			logger.Error("engine setup failed", "err", err)
			return
		}

		draw.HideCursor(sess)
		keys := input.StartStream(gs.Context(), bufio.NewReader(sess))
		err = engine.Run(gs.Context(), keys.Keys(), resizes(gs.Context(), winCh, sizes, surface))
		draw.ClearScreen(sess)
		draw.ShowCursor(sess)

		st := engine.State()
		if err != nil {
			logger.Error("game error", "err", err)
		} else {
			fmt.Fprintf(sess, "Thanks for playing! Final score: %d\r\n", st.Score)
		}
		logger.Info("game session ended", "score", st.Score, "duration", time.Since(gs.Started).Round(time.Second))
		next(sess)
	}
}

// resizes records window changes and forwards the surface size in board
// pixels.
func resizes(ctx context.Context, winCh <-chan ssh.Window, tracker *sizeTracker, surface draw.Surface) <-chan draw.Size {
	out := make(chan draw.Size, 1)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case win, ok := <-winCh:
				if !ok {
					return
				}
				tracker.update(win.Width, win.Height)
				w, h := surface.Size()
				select {
				case out <- draw.Size{Width: w, Height: h}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
