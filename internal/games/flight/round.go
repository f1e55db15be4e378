package flight

import (
	"fmt"
	"time"

	"github.com/vovakirdan/skyflight/internal/config"
	"github.com/vovakirdan/skyflight/internal/core"
)

// Phase is the round's state machine position.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason records why a round ended.
type EndReason int

const (
	EndNone        EndReason = iota // Still running
	EndCollision                    // Hit an obstacle segment
	EndOutOfBounds                  // Left the board vertically
)

// String returns a short description of the reason.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndCollision:
		return "collision"
	case EndOutOfBounds:
		return "out of bounds"
	default:
		return "unknown"
	}
}

// Result is what a finished round reports to the caller.
type Result struct {
	Score  int
	Reason EndReason
	Ticks  uint64
}

// TickReport describes what happened during one Step.
type TickReport struct {
	Scored  int        // Pairs passed this tick
	Spawned bool       // A shield pickup appeared
	Cues    []core.Cue // Audio cues in emission order
	Ended   bool       // The round transitioned to PhaseEnded
}

// Round is one play session: a fresh flyer, an empty track and no shield.
// It owns every entity of the session; a new round is a new Round.
type Round struct {
	cfg    config.FlightConfig
	body   *Body
	track  *Track
	power  *PowerUps
	score  int
	phase  Phase
	reason EndReason
	tick   uint64
}

// NewRound validates cfg and starts a round in PhaseRunning.
func NewRound(cfg config.FlightConfig, rng Rand) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("flight: %w", err)
	}
	return newRound(cfg, rng), nil
}

// newRound builds a round from an already validated config.
func newRound(cfg config.FlightConfig, rng Rand) *Round {
	body := NewBody(
		float64(cfg.Player.X),
		float64(cfg.Board.Height/2),
		cfg.Player.Width,
		cfg.Player.Height,
		cfg.Physics.Gravity,
		cfg.Physics.Impulse,
	)

	track := NewTrack(TrackConfig{
		BoardW:    cfg.Board.Width,
		BoardH:    cfg.Board.Height,
		PairWidth: cfg.Obstacles.Width,
		Spacing:   cfg.Obstacles.Spacing,
		GapHeight: cfg.Obstacles.GapHeight,
		Margin:    cfg.Obstacles.Margin,
	}, rng)

	minY, maxY := cfg.ShieldYRange()
	power := NewPowerUps(PowerUpConfig{
		SpawnX:   cfg.Board.Width + cfg.Shield.SpawnOffset,
		MinY:     minY,
		MaxY:     maxY,
		Size:     cfg.Shield.Size,
		Duration: cfg.Shield.Duration,
		Interval: cfg.Shield.ScoreInterval,
	}, rng)

	return &Round{
		cfg:   cfg,
		body:  body,
		track: track,
		power: power,
		phase: PhaseRunning,
	}
}

// Step advances the round by one tick. impulse is whether the player flapped
// during the tick; now is the wall-clock time used for the shield window.
// Stepping an ended round does nothing.
func (r *Round) Step(impulse bool, now time.Time) TickReport {
	var rep TickReport
	if r.phase != PhaseRunning {
		return rep
	}
	r.tick++

	// Physics
	if impulse {
		r.body.ApplyImpulse()
		rep.Cues = append(rep.Cues, core.CueImpulse)
	}
	r.body.Integrate()

	// Track and scoring
	speed := r.cfg.Physics.ScrollSpeed
	r.track.SpawnIfNeeded()
	r.track.Advance(speed)

	// Score before pruning so a pair leaving the board still counts
	_, passed := r.track.CheckScoring(r.cfg.Player.X)
	for range passed {
		r.score++
		rep.Scored++
		if r.power.TrySpawn(r.score) {
			rep.Spawned = true
		}
	}
	r.track.Prune()

	// Shield pickup and expiry
	box := r.body.Rect()
	r.power.Advance(speed)
	if r.power.TryCollect(box, now) {
		rep.Cues = append(rep.Cues, core.CueShield)
	}
	r.power.DeactivateIfExpired(now)

	// Terminal conditions use this tick's shield status
	if !r.power.IsActive(now) {
		switch {
		case r.track.CheckCollision(box):
			r.end(EndCollision)
		case r.outOfBounds():
			r.end(EndOutOfBounds)
		}
	}

	if r.phase == PhaseEnded {
		rep.Ended = true
		rep.Cues = append(rep.Cues, core.CueCollision)
	}
	return rep
}

// outOfBounds reports whether the flyer's top edge left [0, board height].
func (r *Round) outOfBounds() bool {
	return r.body.Y < 0 || r.body.Y > float64(r.cfg.Board.Height)
}

// end performs the Running -> Ended transition.
func (r *Round) end(reason EndReason) {
	r.phase = PhaseEnded
	r.reason = reason
}

// Score returns the pairs passed so far.
func (r *Round) Score() int {
	return r.score
}

// Phase returns the current phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// Running reports whether the round is still in play.
func (r *Round) Running() bool {
	return r.phase == PhaseRunning
}

// Tick returns the number of ticks simulated.
func (r *Round) Tick() uint64 {
	return r.tick
}

// Result returns the round outcome; Reason is EndNone while running.
func (r *Round) Result() Result {
	return Result{Score: r.score, Reason: r.reason, Ticks: r.tick}
}

// Body returns the flyer.
func (r *Round) Body() *Body {
	return r.body
}

// Track returns the obstacle track.
func (r *Round) Track() *Track {
	return r.track
}

// PowerUps returns the shield manager.
func (r *Round) PowerUps() *PowerUps {
	return r.power
}

// Config returns the configuration the round was built with.
func (r *Round) Config() config.FlightConfig {
	return r.cfg
}
