package inference

import (
	"context"
	"io"
	"sync"
)

// MockEngine implements Engine for testing.
// All methods can be customized via function fields.
type MockEngine struct {
	// OpenFunc is called when Open is invoked.
	// If nil, returns a MockConn serving Frames.
	OpenFunc func(ctx context.Context, profile Profile) (Conn, error)

	// Frames is served by the default connection, one stream per Infer call.
	Frames []*ResultFrame

	mu    sync.Mutex
	opens []Profile
}

// Open calls OpenFunc and records the profile.
func (m *MockEngine) Open(ctx context.Context, profile Profile) (Conn, error) {
	m.mu.Lock()
	m.opens = append(m.opens, profile)
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, profile)
	}
	return &MockConn{Frames: m.Frames}, nil
}

// Opens returns the profiles passed to Open, in order.
func (m *MockEngine) Opens() []Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]Profile, len(m.opens))
	copy(result, m.opens)
	return result
}

// MockConn implements Conn for testing.
type MockConn struct {
	// InferFunc is called when Infer is invoked.
	// If nil, returns a stream over Frames, or Err if set.
	InferFunc func(ctx context.Context, image []byte) (FrameStream, error)

	// Frames served by the default stream.
	Frames []*ResultFrame

	// Err is returned by the default Infer when set.
	Err error

	mu         sync.Mutex
	inferCalls int
	closed     bool
}

// Infer calls InferFunc and records the call.
func (c *MockConn) Infer(ctx context.Context, image []byte) (FrameStream, error) {
	c.mu.Lock()
	c.inferCalls++
	c.mu.Unlock()

	if c.InferFunc != nil {
		return c.InferFunc(ctx, image)
	}
	if c.Err != nil {
		return nil, c.Err
	}
	return NewStaticStream(c.Frames...), nil
}

// Close marks the connection closed.
func (c *MockConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// InferCalls returns the number of Infer invocations.
func (c *MockConn) InferCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inferCalls
}

// Closed reports whether Close was called.
func (c *MockConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// staticStream serves a fixed sequence of frames.
type staticStream struct {
	frames []*ResultFrame
	pos    int
}

// NewStaticStream returns a FrameStream over a fixed frame sequence.
func NewStaticStream(frames ...*ResultFrame) FrameStream {
	return &staticStream{frames: frames}
}

// Recv returns the next frame, or io.EOF when exhausted.
func (s *staticStream) Recv() (*ResultFrame, error) {
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}
	frame := s.frames[s.pos]
	s.pos++
	return frame, nil
}

// Close exhausts the stream.
func (s *staticStream) Close() error {
	s.pos = len(s.frames)
	return nil
}

// Verify interfaces at compile time.
var (
	_ Engine      = (*MockEngine)(nil)
	_ Conn        = (*MockConn)(nil)
	_ FrameStream = (*staticStream)(nil)
)
