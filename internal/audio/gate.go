package audio

import (
	"sync"

	"github.com/vovakirdan/skyflight/internal/config"
	"github.com/vovakirdan/skyflight/internal/core"
)

// Audible reports whether cue plays under s. The hit sound needs both
// toggles; everything else follows the master toggle.
func Audible(cue core.Cue, s config.Settings) bool {
	switch cue {
	case core.CueCollision:
		return s.Sound && s.HitSound
	default:
		return s.Sound
	}
}

// Gate filters cues through the player's settings.
// It is safe for use from the UI goroutine and the game loop at once.
type Gate struct {
	mu       sync.Mutex
	player   Player
	settings config.Settings
	theme    bool // Theme was requested by the caller
	playing  bool // Theme is currently sounding
}

// NewGate wraps p with settings s.
func NewGate(p Player, s config.Settings) *Gate {
	if p == nil {
		p = Silent{}
	}
	return &Gate{player: p, settings: s}
}

// Settings returns the current settings.
func (g *Gate) Settings() config.Settings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings
}

// SetSettings applies new settings, starting or stopping the theme to match.
func (g *Gate) SetSettings(s config.Settings) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.settings = s
	g.syncTheme()
}

// Play forwards cue if it is audible.
func (g *Gate) Play(cue core.Cue) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if Audible(cue, g.settings) {
		g.player.Play(cue)
	}
}

// PlayAll forwards each cue of a tick in order.
func (g *Gate) PlayAll(cues []core.Cue) {
	for _, c := range cues {
		g.Play(c)
	}
}

// StartTheme requests the background loop; it sounds only while Sound is on.
func (g *Gate) StartTheme() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.theme = true
	g.syncTheme()
}

// StopTheme cancels the background loop.
func (g *Gate) StopTheme() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.theme = false
	g.syncTheme()
}

// Close stops the theme and releases the player.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.theme = false
	g.syncTheme()
	g.player.Close()
}

// syncTheme must be called with mu held.
func (g *Gate) syncTheme() {
	want := g.theme && g.settings.Sound
	switch {
	case want && !g.playing:
		g.player.StartTheme()
	case !want && g.playing:
		g.player.StopTheme()
	}
	g.playing = want
}

var _ Player = (*Gate)(nil)
