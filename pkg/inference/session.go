package inference

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Session is a long-lived handle to one inference profile. Operations
// submitted through RunExclusive are consumed by a single worker in FIFO
// order, so no two operations on the same session ever overlap. A failed
// operation does not poison the ones queued behind it.
type Session struct {
	// ID identifies the session in logs.
	ID string

	// Profile is the profile this session was established for.
	Profile Profile

	conn   Conn
	logger *slog.Logger

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*sessionTask
	closed bool

	workerDone chan struct{}
}

type sessionTask struct {
	run  func(Conn) error
	errc chan error
}

// newSession wraps an established connection and starts its worker.
func newSession(profile Profile, conn Conn, logger *slog.Logger) *Session {
	s := &Session{
		ID:         uuid.NewString(),
		Profile:    profile,
		conn:       conn,
		logger:     logger.With("profile", profile.Name),
		workerDone: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.worker()
	return s
}

// RunExclusive queues op and blocks until it has run. Ops on the same session
// run strictly in arrival order; ops on different sessions are independent.
func (s *Session) RunExclusive(op func(Conn) error) error {
	t := &sessionTask{run: op, errc: make(chan error, 1)}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return WrapError(s.Profile.Name, ErrSessionClosed)
	}
	s.queue = append(s.queue, t)
	s.cond.Signal()
	s.mu.Unlock()

	return <-t.errc
}

// worker consumes queued tasks one at a time until the session closes.
// Tasks still queued at close time fail with ErrSessionClosed.
func (s *Session) worker() {
	defer close(s.workerDone)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			remaining := s.queue
			s.queue = nil
			s.mu.Unlock()
			for _, t := range remaining {
				t.errc <- WrapError(s.Profile.Name, ErrSessionClosed)
			}
			return
		}
		t := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		t.errc <- s.runTask(t)
	}
}

// runTask executes one task, converting a panic into an error so a broken
// operation cannot take the worker down with it.
func (s *Session) runTask(t *sessionTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = WrapError(s.Profile.Name, fmt.Errorf("operation panic: %v", r))
			s.logger.Error("session operation panicked", "panic", r)
		}
	}()
	return t.run(s.conn)
}

// Close stops accepting work, waits for the worker to drain, and closes the
// underlying connection.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()

	<-s.workerDone
	return s.conn.Close()
}

// Manager owns the cached per-profile sessions. It is the process-wide
// context object that replaces ambient globals: the gateway holds a Manager,
// not package state.
type Manager struct {
	engine Engine
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager backed by the given engine.
func NewManager(engine Engine) *Manager {
	return &Manager{
		engine:   engine,
		logger:   slog.Default().With("component", "inference.manager"),
		sessions: make(map[string]*Session),
	}
}

// NewManagerWithLogger creates a session manager with a custom logger.
func NewManagerWithLogger(engine Engine, logger *slog.Logger) *Manager {
	m := NewManager(engine)
	m.logger = logger.With("component", "inference.manager")
	return m
}

// Connect returns the cached session for the profile, establishing it on
// first use. Concurrent callers for the same profile share one dial.
func (m *Manager) Connect(ctx context.Context, profile Profile) (*Session, error) {
	if m.engine == nil {
		return nil, ErrEngineUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[profile.Name]; ok {
		return s, nil
	}

	conn, err := m.engine.Open(ctx, profile)
	if err != nil {
		return nil, WrapError(profile.Name, err)
	}

	s := newSession(profile, conn, m.logger)
	m.sessions[profile.Name] = s
	m.logger.Info("session established", "profile", profile.Name, "session_id", s.ID)
	return s, nil
}

// SessionCount returns the number of established sessions.
func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll closes every established session. A failure closing one session is
// logged and does not prevent closing the others; the last error is returned.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var lastErr error
	for _, s := range sessions {
		if err := s.Close(); err != nil {
			m.logger.Warn("session close failed", "profile", s.Profile.Name, "error", err)
			lastErr = err
		}
	}
	return lastErr
}
