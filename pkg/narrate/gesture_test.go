package narrate

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// gestureRecorder counts fired actions behind a mutex so timer goroutines
// can report safely.
type gestureRecorder struct {
	mu           sync.Mutex
	singleTaps   int
	longPresses  int
	doubleTaps   int
	spoken       []string
	repeatActive bool
}

func (r *gestureRecorder) actions() GestureActions {
	return GestureActions{
		SingleTap: func() { r.mu.Lock(); r.singleTaps++; r.mu.Unlock() },
		LongPress: func() { r.mu.Lock(); r.longPresses++; r.mu.Unlock() },
		DoubleTap: func() { r.mu.Lock(); r.doubleTaps++; r.mu.Unlock() },
		Speak: func(text string) {
			r.mu.Lock()
			r.spoken = append(r.spoken, text)
			r.mu.Unlock()
		},
		RepeatActive: func() bool {
			r.mu.Lock()
			defer r.mu.Unlock()
			return r.repeatActive
		},
	}
}

func (r *gestureRecorder) counts() (single, long, double int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.singleTaps, r.longPresses, r.doubleTaps
}

func (r *gestureRecorder) lastSpoken() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.spoken) == 0 {
		return ""
	}
	return r.spoken[len(r.spoken)-1]
}

const (
	testLongPress = 40 * time.Millisecond
	testTapWindow = 30 * time.Millisecond
	testSettle    = 100 * time.Millisecond
)

func testDispatcher(r *gestureRecorder) *Dispatcher {
	g := NewDispatcher(r.actions(), slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithLongPressDelay(testLongPress),
		WithDoubleTapWindow(testTapWindow),
	)
	g.IntroduceOnStartup()
	return g
}

func TestDispatcher_SingleTap(t *testing.T) {
	r := &gestureRecorder{}
	g := testDispatcher(r)

	g.Press()
	g.Release()
	g.Click()
	time.Sleep(testSettle)

	single, long, double := r.counts()
	if single != 1 || long != 0 || double != 0 {
		t.Errorf("got single=%d long=%d double=%d, want 1/0/0", single, long, double)
	}
}

func TestDispatcher_LongPressFiresWithoutRelease(t *testing.T) {
	r := &gestureRecorder{}
	g := testDispatcher(r)

	g.Press()
	time.Sleep(testLongPress + 20*time.Millisecond)

	if _, long, _ := r.counts(); long != 1 {
		t.Fatalf("long press should fire before release, got %d", long)
	}

	// The platform still synthesizes a click on release; it must be swallowed.
	g.Release()
	g.Click()
	time.Sleep(testSettle)

	single, long, double := r.counts()
	if single != 0 || long != 1 || double != 0 {
		t.Errorf("got single=%d long=%d double=%d, want 0/1/0", single, long, double)
	}
}

func TestDispatcher_ReleaseBeforeDelayCancelsLongPress(t *testing.T) {
	r := &gestureRecorder{}
	g := testDispatcher(r)

	g.Press()
	g.Release()
	time.Sleep(testLongPress + 20*time.Millisecond)

	if _, long, _ := r.counts(); long != 0 {
		t.Errorf("released before the delay, long press must not fire (got %d)", long)
	}
}

func TestDispatcher_DoubleTap(t *testing.T) {
	r := &gestureRecorder{}
	g := testDispatcher(r)

	g.Click()
	g.Click()
	time.Sleep(testSettle)

	single, _, double := r.counts()
	if double != 1 {
		t.Errorf("expected 1 double tap, got %d", double)
	}
	if single != 0 {
		t.Errorf("double tap must suppress the single-tap action, got %d", single)
	}
}

func TestDispatcher_SlowSecondClickIsTwoSingleTaps(t *testing.T) {
	r := &gestureRecorder{}
	g := testDispatcher(r)

	g.Click()
	time.Sleep(testTapWindow + 20*time.Millisecond)
	g.Click()
	time.Sleep(testSettle)

	single, _, double := r.counts()
	if single != 2 || double != 0 {
		t.Errorf("got single=%d double=%d, want 2/0", single, double)
	}
}

func TestDispatcher_FirstTapSpeaksIntroductionOnly(t *testing.T) {
	r := &gestureRecorder{}
	g := NewDispatcher(r.actions(), slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithLongPressDelay(testLongPress),
		WithDoubleTapWindow(testTapWindow),
	)

	g.Click()
	time.Sleep(testSettle)

	if r.lastSpoken() != IntroText {
		t.Errorf("first tap should speak the introduction, got %q", r.lastSpoken())
	}
	if single, _, _ := r.counts(); single != 0 {
		t.Errorf("first tap must not trigger a capture, got %d", single)
	}

	// The next tap acts normally.
	g.Click()
	time.Sleep(testSettle)
	if single, _, _ := r.counts(); single != 1 {
		t.Errorf("second tap should act, got %d", single)
	}
}

func TestDispatcher_TapDuringAutoRepeatSpeaksReminder(t *testing.T) {
	r := &gestureRecorder{repeatActive: true}
	g := testDispatcher(r)

	g.Click()
	time.Sleep(testSettle)

	if r.lastSpoken() != ReminderText {
		t.Errorf("expected reminder, got %q", r.lastSpoken())
	}
	if single, _, _ := r.counts(); single != 0 {
		t.Errorf("tap during auto-repeat must not re-trigger capture, got %d", single)
	}
}

func TestDispatcher_DoubleTapStillWorksDuringAutoRepeat(t *testing.T) {
	r := &gestureRecorder{repeatActive: true}
	g := testDispatcher(r)

	g.Click()
	g.Click()
	time.Sleep(testSettle)

	if _, _, double := r.counts(); double != 1 {
		t.Errorf("double tap should toggle auto-repeat off, got %d", double)
	}
}
