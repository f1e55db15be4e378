// Package audio plays the game's sound cues.
//
// The simulation only emits core.Cue values. Gate decides which cues are
// audible under the current settings and forwards them to a Player:
// SoundManager synthesizes them through the beep speaker, Silent drops them.
package audio

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflight/internal/core"
)

// Player turns cues into sound.
type Player interface {
	Play(cue core.Cue)
	StartTheme()
	StopTheme()
	Close()
}

// Silent is a Player that plays nothing.
type Silent struct{}

// Play discards the cue.
func (Silent) Play(core.Cue) {}

// StartTheme does nothing.
func (Silent) StartTheme() {}

// StopTheme does nothing.
func (Silent) StopTheme() {}

// Close does nothing.
func (Silent) Close() {}

// New returns a speaker-backed player, or Silent if the audio device cannot
// be opened. A missing sound card never stops the game.
func New(logger *log.Logger) Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sm := NewSoundManager()
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
		return Silent{}
	}
	logger.Debug("audio initialized", "rate", int(sampleRate))
	return sm
}
