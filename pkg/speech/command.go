package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// CommandSpeaker shells out to the platform speech synthesizer. It keeps the
// client free of audio stack dependencies; the OS owns the output device.
type CommandSpeaker struct {
	binary string
	args   []string
	logger *slog.Logger
}

var _ Speaker = (*CommandSpeaker)(nil)

// NewCommandSpeaker locates a speech synthesizer binary for the current
// platform. macOS uses say; Linux tries espeak-ng then espeak.
func NewCommandSpeaker(logger *slog.Logger) (*CommandSpeaker, error) {
	candidates := [][]string{{"espeak-ng"}, {"espeak"}}
	if runtime.GOOS == "darwin" {
		candidates = [][]string{{"say"}}
	}

	for _, c := range candidates {
		if path, err := exec.LookPath(c[0]); err == nil {
			return &CommandSpeaker{
				binary: path,
				args:   c[1:],
				logger: logger.With("component", "speech.command", "binary", c[0]),
			}, nil
		}
	}
	return nil, ErrSpeakerUnavailable
}

// Speak runs the synthesizer and waits for playback to finish.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	args := append(append([]string{}, s.args...), text)
	cmd := exec.CommandContext(ctx, s.binary, args...)
	if err := cmd.Run(); err != nil {
		s.logger.Error("speech command failed", "error", err)
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}

func (s *CommandSpeaker) Close() error { return nil }

// LogHaptic is a haptic backend that records cues to the log. It stands in on
// hardware without a vibration motor.
type LogHaptic struct {
	logger *slog.Logger
}

var _ Haptic = (*LogHaptic)(nil)

// NewLogHaptic creates a log-backed haptic output.
func NewLogHaptic(logger *slog.Logger) *LogHaptic {
	return &LogHaptic{logger: logger.With("component", "speech.haptic")}
}

func (h *LogHaptic) Play(cue HapticCue) error {
	h.logger.Debug("haptic cue", "cue", string(cue))
	return nil
}

func (h *LogHaptic) Close() error { return nil }
