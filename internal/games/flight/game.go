// Package flight implements the side-scrolling flight game: a flyer that
// climbs on impulses and falls under gravity while obstacle pairs scroll
// past, plus a timed shield pickup that forgives crashes.
//
// Round holds the simulation. Game adapts a Round to the platform: it maps
// input frames to impulses, handles pause and renders into a core.Screen.
package flight

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/skyflight/internal/config"
	"github.com/vovakirdan/skyflight/internal/core"
)

const (
	// ID is the game identifier used for score slots and CLI output.
	ID = "skyflight"
	// Title is the display name.
	Title = "Sky Flight"
)

// Clock supplies wall-clock time to the shield timer.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }

// RandFactory builds the random source for a round from its seed.
type RandFactory func(seed int64) Rand

func defaultRandFactory(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithRandFactory replaces the math/rand source factory.
func WithRandFactory(f RandFactory) Option {
	return func(g *Game) { g.newRand = f }
}

// Game drives one Round at a time on behalf of the platform.
type Game struct {
	cfg     config.FlightConfig
	runtime core.RuntimeConfig
	round   *Round
	clock   Clock
	newRand RandFactory

	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration // Shield windows do not run while paused
	background  int           // City scroll offset in board units
}

// New validates cfg and returns a game with a first round ready.
func New(cfg config.FlightConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flight: %w", err)
	}
	g := &Game{
		cfg:     cfg,
		clock:   SystemClock{},
		newRand: defaultRandFactory,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return Title
}

// Reset discards the current round and starts a new one.
// A zero seed picks one from the clock.
func (g *Game) Reset(rc core.RuntimeConfig) {
	seed := rc.Seed
	if seed == 0 {
		seed = g.clock.Now().UnixNano()
	}
	g.runtime = rc
	g.round = newRound(g.cfg, g.newRand(seed))
	g.paused = false
	g.pausedAt = time.Time{}
	g.pausedTotal = 0
	g.background = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.round.Running() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.togglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	rep := g.round.Step(in.Has(core.ActionImpulse), g.now())
	g.background += g.cfg.Physics.BackgroundSpeed

	return core.StepResult{State: g.State(), Cues: rep.Cues}
}

func (g *Game) togglePause() {
	now := g.clock.Now()
	if g.paused {
		g.pausedTotal += now.Sub(g.pausedAt)
		g.paused = false
		return
	}
	g.paused = true
	g.pausedAt = now
}

// now is the clock reading with paused time removed. While paused it stays
// at the moment the pause began.
func (g *Game) now() time.Time {
	if g.paused {
		return g.pausedAt.Add(-g.pausedTotal)
	}
	return g.clock.Now().Add(-g.pausedTotal)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:        g.round.Score(),
		GameOver:     !g.round.Running(),
		Paused:       g.paused,
		ShieldActive: g.round.PowerUps().IsActive(g.now()),
	}
}

// Result returns the outcome of the current round.
func (g *Game) Result() Result {
	return g.round.Result()
}

// Round exposes the underlying simulation.
func (g *Game) Round() *Round {
	return g.round
}

// Config returns the flight configuration.
func (g *Game) Config() config.FlightConfig {
	return g.cfg
}
