package capture

import "sync"

// MockCamera is a test camera returning canned frames.
type MockCamera struct {
	// FrameFunc overrides Frame when set.
	FrameFunc func() ([]byte, error)
	// FrameData is returned by every Frame call when FrameFunc is nil.
	FrameData []byte
	// Err is returned by Frame when set.
	Err error

	mu     sync.Mutex
	frames int
	closed bool
}

var _ Camera = (*MockCamera)(nil)

func (m *MockCamera) Frame() ([]byte, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrCameraClosed
	}
	m.frames++
	m.mu.Unlock()

	if m.FrameFunc != nil {
		return m.FrameFunc()
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.FrameData, nil
}

func (m *MockCamera) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// FrameCalls reports how many frames were requested.
func (m *MockCamera) FrameCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Closed reports whether Close was called.
func (m *MockCamera) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
