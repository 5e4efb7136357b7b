// Package server keeps track of the game sessions a host is running so
// they can be ended together on shutdown.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one player's game on a shared host.
type Session struct {
	ID      string // Random UUID, used to correlate log lines
	User    string
	Started time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Context is cancelled when the session is unregistered or the server
// shuts down. The session's engine should run on it.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Server is a registry of live sessions.
type Server struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
}

// New creates an empty registry.
func New() *Server {
	return &Server{
		sessions: make(map[string]*Session),
	}
}

// Register adds a session for user whose context derives from ctx. After
// Shutdown the returned session is already cancelled.
func (s *Server) Register(ctx context.Context, user string) *Session {
	sctx, cancel := context.WithCancel(ctx)
	sess := &Session{
		ID:      uuid.NewString(),
		User:    user,
		Started: time.Now(),
		ctx:     sctx,
		cancel:  cancel,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		cancel()
		return sess
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Unregister removes a session and cancels its context.
func (s *Server) Unregister(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.cancel()
	}
}

// Count returns the number of live sessions.
func (s *Server) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown cancels every session and waits until all of them have
// unregistered or timeout elapses. It reports whether every session left.
func (s *Server) Shutdown(timeout time.Duration) bool {
	s.mu.Lock()
	s.closed = true
	for _, sess := range s.sessions {
		sess.cancel()
	}
	s.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
