package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/skyflight/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Cue lengths
const (
	whooshLength = 180 * time.Millisecond
	hitLength    = 350 * time.Millisecond
	chimeNote    = 90 * time.Millisecond
)

// SoundManager mixes synthesized cues into the beep speaker.
// Every method is a no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	theme       *beep.Ctrl
	initialized bool
}

// NewSoundManager creates a manager with an empty mixer.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play mixes in the sound for cue.
func (sm *SoundManager) Play(cue core.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := cueStreamer(cue)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// StartTheme starts the background loop, or resumes it if paused.
func (sm *SoundManager) StartTheme() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	if sm.theme != nil {
		sm.theme.Paused = false
		return
	}
	sm.theme = &beep.Ctrl{Streamer: withVolume(NewThemeGenerator(sampleRate), 0.35)}
	sm.mixer.Add(sm.theme)
}

// StopTheme pauses the background loop.
func (sm *SoundManager) StopTheme() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.theme == nil {
		return
	}
	speaker.Lock()
	sm.theme.Paused = true
	speaker.Unlock()
}

// Close silences everything and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.mixer = &beep.Mixer{}
	sm.theme = nil
	sm.initialized = false
}

// cueStreamer builds the finite streamer for cue, or nil for unknown cues.
func cueStreamer(cue core.Cue) beep.Streamer {
	switch cue {
	case core.CueImpulse:
		return beep.Take(sampleRate.N(whooshLength), NewWhooshGenerator(sampleRate, whooshLength))
	case core.CueCollision:
		return beep.Take(sampleRate.N(hitLength), NewHitGenerator(sampleRate))
	case core.CueShield:
		return chime()
	default:
		return nil
	}
}

// chime is two rising sine notes.
func chime() beep.Streamer {
	notes := make([]beep.Streamer, 0, 2)
	for _, freq := range []float64{880, 1320} {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			continue
		}
		notes = append(notes, withVolume(beep.Take(sampleRate.N(chimeNote), tone), 0.3))
	}
	return beep.Seq(notes...)
}

// withVolume scales s by a linear factor.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

var _ Player = (*SoundManager)(nil)
