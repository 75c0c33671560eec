package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sightline/go-sightline/pkg/capture"
	"github.com/sightline/go-sightline/pkg/narrate"
	"github.com/sightline/go-sightline/pkg/server"
	"github.com/sightline/go-sightline/pkg/speech"
)

// inferClient is the API surface the app consumes, satisfied by Client.
type inferClient interface {
	Infer(ctx context.Context, mode string, debug bool, image []byte) (*server.InferResponse, error)
}

// requestTimeout bounds one capture-and-describe round trip.
const requestTimeout = 45 * time.Second

// App wires the camera, the inference API, and the narration state machines
// into the user-facing behavior: tap to describe, hold for details, double
// tap for automatic descriptions.
type App struct {
	client    inferClient
	camera    capture.Camera
	announcer *speech.Announcer
	logger    *slog.Logger

	gestures *narrate.Dispatcher
	repeater *narrate.Repeater

	mu   sync.Mutex
	busy bool
}

// New assembles the client application.
func New(client *Client, camera capture.Camera, announcer *speech.Announcer, logger *slog.Logger) *App {
	return newApp(client, camera, announcer, logger)
}

func newApp(client inferClient, camera capture.Camera, announcer *speech.Announcer, logger *slog.Logger) *App {
	a := &App{
		client:    client,
		camera:    camera,
		announcer: announcer,
		logger:    logger.With("component", "app"),
	}

	a.repeater = narrate.NewRepeater(a.repeatCycle, a.announceText, logger)
	a.gestures = narrate.NewDispatcher(narrate.GestureActions{
		SingleTap:    a.describeOnce,
		LongPress:    a.describeDetailed,
		DoubleTap:    a.toggleRepeat,
		Speak:        a.announceText,
		RepeatActive: a.repeater.Active,
	}, logger)

	return a
}

// Gestures exposes the dispatcher for the input source to drive.
func (a *App) Gestures() *narrate.Dispatcher {
	return a.gestures
}

// Close stops auto-repeat and releases the camera and announcer.
func (a *App) Close() error {
	a.repeater.Deactivate()
	err := a.camera.Close()
	if aerr := a.announcer.Close(); err == nil {
		err = aerr
	}
	return err
}

// describeOnce runs one detect round trip, guarded so a tap during an
// outstanding request is dropped instead of piling up.
func (a *App) describeOnce() {
	if !a.tryAcquire() {
		return
	}
	go func() {
		defer a.release()
		a.captureAndAnnounce(ModeDetect)
	}()
}

// describeDetailed runs the slower detailed pass.
func (a *App) describeDetailed() {
	if !a.tryAcquire() {
		return
	}
	a.announce(speech.Announcement{Cue: speech.CueTap})
	go func() {
		defer a.release()
		a.captureAndAnnounce(ModeDetail)
	}()
}

// toggleRepeat flips auto-repeat and confirms the new state aloud.
func (a *App) toggleRepeat() {
	if a.repeater.Toggle() {
		a.announce(speech.Announcement{Text: narrate.RepeatOnText, Cue: speech.CueTap})
	} else {
		a.announce(speech.Announcement{Text: narrate.RepeatOffText, Cue: speech.CueTap})
	}
}

// repeatCycle is one auto-repeat iteration: detect and summarize, mapping
// failures to the error sentinel so they deduplicate.
func (a *App) repeatCycle() (narrate.Bucket, string) {
	count, top, err := a.observe(ModeDetect)
	if err != nil {
		a.logger.Warn("repeat cycle failed", "error", err)
		return narrate.BucketError, narrate.CaptureErrorText
	}

	position := ""
	if top != nil {
		position = top.Position
	}
	return narrate.SceneBucket(count, position), narrate.Describe(count, top)
}

// captureAndAnnounce performs one user-initiated round trip and speaks the
// outcome.
func (a *App) captureAndAnnounce(mode string) {
	count, top, err := a.observe(mode)
	if err != nil {
		a.logger.Error("describe failed", "mode", mode, "error", err)
		a.announce(speech.Announcement{Text: narrate.CaptureErrorText, Cue: speech.CueError})
		return
	}
	a.announce(speech.Announcement{Text: narrate.Describe(count, top), Cue: speech.CueSuccess})
}

// observe captures a frame, queries the server, and reduces the response to
// narration inputs.
func (a *App) observe(mode string) (int, *narrate.Person, error) {
	frame, err := a.camera.Frame()
	if err != nil {
		return 0, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := a.client.Infer(ctx, mode, false, frame)
	if err != nil {
		return 0, nil, err
	}

	count := len(resp.People)
	if count == 0 {
		return 0, nil, nil
	}

	first := resp.People[0]
	top := &narrate.Person{Position: first.Position}
	if first.Gender != nil {
		top.Gender = *first.Gender
	}
	if first.Activity != nil {
		top.Activity = *first.Activity
	}
	return count, top, nil
}

func (a *App) announce(ann speech.Announcement) {
	if err := a.announcer.Announce(ann); err != nil {
		a.logger.Warn("announce failed", "error", err)
	}
}

func (a *App) announceText(text string) {
	a.announce(speech.Announcement{Text: text})
}

func (a *App) tryAcquire() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy {
		a.logger.Debug("request already in flight, dropping")
		return false
	}
	a.busy = true
	return true
}

func (a *App) release() {
	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()
}
