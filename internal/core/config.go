package core

// RuntimeConfig contains platform settings passed to a game on reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Score        int  // Current score
	GameOver     bool // Whether the round has ended
	Paused       bool // Whether the game is paused
	ShieldActive bool // Whether the player is currently invulnerable
}

// Cue is a discrete audio event emitted by the simulation.
// The audio layer decides whether a cue is audible.
type Cue int

const (
	CueImpulse   Cue = iota // Player flapped
	CueCollision            // Round ended on an obstacle or a boundary
	CueShield               // Shield pickup collected
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueImpulse:
		return "impulse"
	case CueCollision:
		return "collision"
	case CueShield:
		return "shield"
	default:
		return "unknown"
	}
}

// StepResult is returned by a game after each simulation tick.
type StepResult struct {
	State GameState
	Cues  []Cue // Audio cues raised during this tick, in order
}
