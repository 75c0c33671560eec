package speech

import (
	"context"
	"sync"
)

// MockSpeaker implements Speaker for testing. SpeakFunc can be set to
// customize behavior; every call is recorded.
type MockSpeaker struct {
	SpeakFunc func(ctx context.Context, text string) error

	mu     sync.Mutex
	spoken []string
	closed bool
}

var _ Speaker = (*MockSpeaker)(nil)

func (m *MockSpeaker) Speak(ctx context.Context, text string) error {
	m.mu.Lock()
	m.spoken = append(m.spoken, text)
	m.mu.Unlock()

	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text)
	}
	return nil
}

func (m *MockSpeaker) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Spoken returns the utterances received so far.
func (m *MockSpeaker) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.spoken))
	copy(out, m.spoken)
	return out
}

// Closed reports whether Close was called.
func (m *MockSpeaker) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockHaptic implements Haptic for testing, recording every cue.
type MockHaptic struct {
	PlayFunc func(cue HapticCue) error

	mu   sync.Mutex
	cues []HapticCue
}

var _ Haptic = (*MockHaptic)(nil)

func (m *MockHaptic) Play(cue HapticCue) error {
	m.mu.Lock()
	m.cues = append(m.cues, cue)
	m.mu.Unlock()

	if m.PlayFunc != nil {
		return m.PlayFunc(cue)
	}
	return nil
}

func (m *MockHaptic) Close() error { return nil }

// Cues returns the cues played so far.
func (m *MockHaptic) Cues() []HapticCue {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]HapticCue, len(m.cues))
	copy(out, m.cues)
	return out
}
