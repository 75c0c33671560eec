package narrate

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultRepeatInterval is the auto-repeat cycle period.
const DefaultRepeatInterval = 2500 * time.Millisecond

// CycleFunc runs one capture-and-describe cycle and returns the scene's
// dedup bucket plus the utterance for it. Failures map to BucketError and
// an error utterance rather than an error return.
type CycleFunc func() (Bucket, string)

// Repeater runs capture cycles on a fixed period while active. A tick that
// arrives while the previous cycle is still in flight is dropped, not
// queued, and a cycle's result is only announced when its bucket differs
// from the previous cycle's.
type Repeater struct {
	interval time.Duration
	cycle    CycleFunc
	announce func(text string)
	logger   *slog.Logger

	mu         sync.Mutex
	active     bool
	busy       bool
	lastBucket Bucket
	stop       chan struct{}
}

// RepeaterOption customizes a Repeater.
type RepeaterOption func(*Repeater)

// WithRepeatInterval overrides the cycle period.
func WithRepeatInterval(d time.Duration) RepeaterOption {
	return func(r *Repeater) { r.interval = d }
}

// NewRepeater creates an inactive repeater.
func NewRepeater(cycle CycleFunc, announce func(text string), logger *slog.Logger, opts ...RepeaterOption) *Repeater {
	r := &Repeater{
		interval: DefaultRepeatInterval,
		cycle:    cycle,
		announce: announce,
		logger:   logger.With("component", "narrate.autorepeat"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Active reports whether the repeat loop is running.
func (r *Repeater) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Toggle flips the loop state and returns the new state.
func (r *Repeater) Toggle() bool {
	if r.Active() {
		r.Deactivate()
		return false
	}
	r.Activate()
	return true
}

// Activate starts the loop, clears dedup state, and runs the first cycle
// immediately instead of waiting out the first period.
func (r *Repeater) Activate() {
	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return
	}
	r.active = true
	r.lastBucket = ""
	r.stop = make(chan struct{})
	stop := r.stop
	r.mu.Unlock()

	r.logger.Info("auto-repeat on", "interval", r.interval)
	r.tick()

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.tick()
			case <-stop:
				return
			}
		}
	}()
}

// Deactivate stops the loop and clears dedup state, so a reactivation
// always announces its first result. An in-flight cycle is not interrupted,
// but its result is discarded.
func (r *Repeater) Deactivate() {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return
	}
	r.active = false
	r.lastBucket = ""
	close(r.stop)
	r.mu.Unlock()

	r.logger.Info("auto-repeat off")
}

// tick launches one cycle unless the previous one is still running.
func (r *Repeater) tick() {
	r.mu.Lock()
	if !r.active || r.busy {
		r.mu.Unlock()
		return
	}
	r.busy = true
	r.mu.Unlock()

	go r.runCycle()
}

func (r *Repeater) runCycle() {
	bucket, text := r.cycle()

	r.mu.Lock()
	r.busy = false
	if !r.active {
		r.mu.Unlock()
		return
	}
	changed := bucket != r.lastBucket
	r.lastBucket = bucket
	r.mu.Unlock()

	if changed && text != "" {
		r.announce(text)
	}
}
