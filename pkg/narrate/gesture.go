package narrate

import (
	"log/slog"
	"sync"
	"time"
)

// Default gesture timing.
const (
	DefaultLongPressDelay  = 650 * time.Millisecond
	DefaultDoubleTapWindow = 260 * time.Millisecond
)

// GestureActions are the callbacks a Dispatcher drives. All of them are
// invoked without internal locks held, so they may call back into the
// dispatcher.
type GestureActions struct {
	// SingleTap triggers a one-shot capture and description.
	SingleTap func()
	// LongPress triggers the detailed analysis pass.
	LongPress func()
	// DoubleTap toggles auto-repeat.
	DoubleTap func()
	// Speak plays fixed utterances (introduction, reminder).
	Speak func(text string)
	// RepeatActive reports whether auto-repeat is currently on.
	RepeatActive func() bool
}

// Dispatcher disambiguates press, release, and click events from a single
// physical control into taps, double taps, and long presses.
//
// A long press fires as soon as the hold delay elapses, without waiting for
// release; the click the platform synthesizes on release is then swallowed.
// A click arms a pending-tap window: a second click inside it is a double
// tap, silence is a single tap. The very first tap of a session speaks the
// introduction instead of acting.
type Dispatcher struct {
	actions         GestureActions
	longPressDelay  time.Duration
	doubleTapWindow time.Duration
	logger          *slog.Logger

	mu              sync.Mutex
	longPressTimer  *time.Timer
	pendingTapTimer *time.Timer
	longPressFired  bool
	tapPending      bool
	introSpoken     bool
}

// GestureOption customizes dispatcher timing.
type GestureOption func(*Dispatcher)

// WithLongPressDelay overrides the hold duration for a long press.
func WithLongPressDelay(d time.Duration) GestureOption {
	return func(g *Dispatcher) { g.longPressDelay = d }
}

// WithDoubleTapWindow overrides the second-click window for a double tap.
func WithDoubleTapWindow(d time.Duration) GestureOption {
	return func(g *Dispatcher) { g.doubleTapWindow = d }
}

// NewDispatcher creates a gesture dispatcher.
func NewDispatcher(actions GestureActions, logger *slog.Logger, opts ...GestureOption) *Dispatcher {
	g := &Dispatcher{
		actions:         actions,
		longPressDelay:  DefaultLongPressDelay,
		doubleTapWindow: DefaultDoubleTapWindow,
		logger:          logger.With("component", "narrate.gesture"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Press starts a physical press, arming the long-press timer.
func (g *Dispatcher) Press() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.longPressFired = false
	g.stopLongPressLocked()
	g.longPressTimer = time.AfterFunc(g.longPressDelay, g.onLongPress)
}

// Release ends a physical press. If the long-press timer has not fired the
// release becomes a candidate tap, delivered separately as Click.
func (g *Dispatcher) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLongPressLocked()
}

// Click handles the synthesized click that follows press and release.
func (g *Dispatcher) Click() {
	g.mu.Lock()

	// A long press already consumed this physical gesture.
	if g.longPressFired {
		g.longPressFired = false
		g.mu.Unlock()
		return
	}

	// First interaction of the session: introduce, act on nothing.
	if !g.introSpoken {
		g.introSpoken = true
		g.mu.Unlock()
		g.logger.Info("speaking introduction")
		if g.actions.Speak != nil {
			g.actions.Speak(IntroText)
		}
		return
	}

	// Second click inside the window: double tap.
	if g.tapPending {
		g.tapPending = false
		if g.pendingTapTimer != nil {
			g.pendingTapTimer.Stop()
			g.pendingTapTimer = nil
		}
		g.mu.Unlock()
		g.logger.Debug("double tap")
		if g.actions.DoubleTap != nil {
			g.actions.DoubleTap()
		}
		return
	}

	g.tapPending = true
	g.pendingTapTimer = time.AfterFunc(g.doubleTapWindow, g.onTapWindowElapsed)
	g.mu.Unlock()
}

// IntroduceOnStartup marks the introduction as already spoken, for clients
// that play it during startup instead of on first tap.
func (g *Dispatcher) IntroduceOnStartup() {
	g.mu.Lock()
	g.introSpoken = true
	g.mu.Unlock()
}

func (g *Dispatcher) onLongPress() {
	g.mu.Lock()
	g.longPressFired = true
	g.longPressTimer = nil
	g.mu.Unlock()

	g.logger.Debug("long press")
	if g.actions.LongPress != nil {
		g.actions.LongPress()
	}
}

func (g *Dispatcher) onTapWindowElapsed() {
	g.mu.Lock()
	if !g.tapPending {
		g.mu.Unlock()
		return
	}
	g.tapPending = false
	g.pendingTapTimer = nil
	g.mu.Unlock()

	if g.actions.RepeatActive != nil && g.actions.RepeatActive() {
		g.logger.Debug("tap during auto-repeat, reminding")
		if g.actions.Speak != nil {
			g.actions.Speak(ReminderText)
		}
		return
	}

	g.logger.Debug("single tap")
	if g.actions.SingleTap != nil {
		g.actions.SingleTap()
	}
}

func (g *Dispatcher) stopLongPressLocked() {
	if g.longPressTimer != nil {
		g.longPressTimer.Stop()
		g.longPressTimer = nil
	}
}
