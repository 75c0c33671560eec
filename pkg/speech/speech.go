// Package speech provides spoken and haptic output for the client.
//
// Speech goes through a queued announcer so utterances never overlap and
// always play in submission order. Haptic cues bypass the queue entirely;
// they fire the moment an announcement is accepted.
package speech

import (
	"context"
	"errors"
)

// Speaker converts text to audible speech. Speak blocks until playback
// finishes or the context is cancelled.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Close() error
}

// HapticCue identifies a vibration pattern.
type HapticCue string

const (
	// CueTap is a single short pulse, acknowledging input.
	CueTap HapticCue = "tap"
	// CueSuccess is a double pulse, played when a capture produced a result.
	CueSuccess HapticCue = "success"
	// CueError is a long pulse, played when a capture failed.
	CueError HapticCue = "error"
)

// Haptic plays vibration cues. Play must not block on hardware.
type Haptic interface {
	Play(cue HapticCue) error
	Close() error
}

var (
	// ErrAnnouncerClosed is returned when announcing after Close.
	ErrAnnouncerClosed = errors.New("speech: announcer closed")
	// ErrSpeakerUnavailable indicates no usable speech backend was found.
	ErrSpeakerUnavailable = errors.New("speech: no speech backend available")
)
