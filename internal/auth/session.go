// Package auth tracks the signed-in state of the current run and expires
// it after a period of inactivity.
package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultIdleTimeout matches the backend's session window.
const DefaultIdleTimeout = 30 * time.Minute

// Authenticator verifies credentials against the backend.
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
}

// Session holds the logged-in flag and the inactivity timer. Every
// authenticated action calls Touch; the timer logs the session out when no
// action arrives within the idle window.
type Session struct {
	auth        Authenticator
	timer       *time.Timer
	onExpire    func()
	idleTimeout time.Duration
	loggedIn    bool
	mu          sync.Mutex
}

// NewSession creates a logged-out session. onExpire runs (off the caller's
// goroutine) when the idle window elapses; it may be nil.
func NewSession(auth Authenticator, idleTimeout time.Duration, onExpire func()) *Session {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Session{auth: auth, idleTimeout: idleTimeout, onExpire: onExpire}
}

// Login verifies the credentials and, on success, marks the session
// authenticated and starts the idle timer.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if err := s.auth.Login(ctx, username, password); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.resetTimerLocked()
	return nil
}

// LoggedIn reports whether the session is currently authenticated.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Touch restarts the idle window. A touch on a logged-out session is a
// no-op.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loggedIn {
		return
	}
	s.resetTimerLocked()
}

// Logout clears the authenticated flag and stops the idle timer.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked()
}

func (s *Session) resetTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.idleTimeout, s.expire)
}

func (s *Session) expire() {
	s.mu.Lock()
	if !s.loggedIn {
		s.mu.Unlock()
		return
	}
	s.logoutLocked()
	s.mu.Unlock()

	slog.Info("session expired after inactivity", "idle_timeout", s.idleTimeout)
	if s.onExpire != nil {
		s.onExpire()
	}
}

func (s *Session) logoutLocked() {
	s.loggedIn = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
