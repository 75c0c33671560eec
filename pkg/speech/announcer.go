package speech

import (
	"context"
	"log/slog"
	"sync"
)

// Announcement pairs an utterance with an optional haptic cue.
type Announcement struct {
	Text string
	Cue  HapticCue
}

// defaultQueueDepth bounds the pending utterance queue. Speech is slow; a
// backlog longer than this is stale by the time it would play.
const defaultQueueDepth = 8

// Announcer serializes speech through a single consumer so utterances play
// one at a time in submission order. Haptic cues fire immediately on submit,
// never waiting behind queued speech.
type Announcer struct {
	speaker Speaker
	haptic  Haptic
	logger  *slog.Logger

	queue  chan string
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewAnnouncer starts the speech consumer.
func NewAnnouncer(speaker Speaker, haptic Haptic, logger *slog.Logger) *Announcer {
	ctx, cancel := context.WithCancel(context.Background())
	a := &Announcer{
		speaker: speaker,
		haptic:  haptic,
		logger:  logger.With("component", "speech.announcer"),
		queue:   make(chan string, defaultQueueDepth),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go a.run(ctx)
	return a
}

// Announce submits an announcement. The haptic cue plays right away; the text
// joins the speech queue. A full queue drops the utterance rather than block
// the caller.
func (a *Announcer) Announce(ann Announcement) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrAnnouncerClosed
	}
	if ann.Text != "" {
		select {
		case a.queue <- ann.Text:
		default:
			a.logger.Warn("speech queue full, dropping utterance", "text", ann.Text)
		}
	}
	a.mu.Unlock()

	if ann.Cue != "" && a.haptic != nil {
		if err := a.haptic.Play(ann.Cue); err != nil {
			a.logger.Warn("haptic cue failed", "cue", string(ann.Cue), "error", err)
		}
	}
	return nil
}

// Say is shorthand for a speech-only announcement.
func (a *Announcer) Say(text string) error {
	return a.Announce(Announcement{Text: text})
}

// Close stops the consumer, interrupting any in-flight utterance, and
// releases the speaker and haptic backends.
func (a *Announcer) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	a.cancel()
	close(a.queue)
	<-a.done

	err := a.speaker.Close()
	if a.haptic != nil {
		if herr := a.haptic.Close(); err == nil {
			err = herr
		}
	}
	return err
}

func (a *Announcer) run(ctx context.Context) {
	defer close(a.done)
	for text := range a.queue {
		if ctx.Err() != nil {
			continue
		}
		if err := a.speaker.Speak(ctx, text); err != nil && ctx.Err() == nil {
			a.logger.Error("utterance failed", "error", err)
		}
	}
}
