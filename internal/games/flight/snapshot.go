package flight

import (
	"time"

	"github.com/vovakirdan/skyflight/internal/core"
)

// FrameCount is the number of player sprite frames.
const FrameCount = 3

// FrameTicks is how many ticks each sprite frame is shown.
const FrameTicks = 5

// Snapshot is everything a renderer needs for one frame, in board units.
type Snapshot struct {
	Tick     uint64
	BoardW   int
	BoardH   int
	Score    int
	Phase    Phase
	Reason   EndReason
	Paused   bool
	Player   core.Rect
	PlayerVY float64
	Frame    int // Sprite frame index in [0, FrameCount)

	Obstacles []core.Rect // Top and bottom segments, oldest pair first
	Pickup    *core.Rect  // Nil when no pickup is live

	ShieldActive    bool
	ShieldRemaining time.Duration

	Background int // City scroll offset
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	r := g.round
	now := g.now()
	width := r.Track().Width()

	obstacles := make([]core.Rect, 0, r.Track().Len()*2)
	for _, p := range r.Track().Pairs() {
		obstacles = append(obstacles, p.TopRect(width), p.BottomRect(width, g.cfg.Board.Height))
	}

	var pickup *core.Rect
	if p := r.PowerUps().Pickup(); p != nil {
		rect := p.Rect()
		pickup = &rect
	}

	return Snapshot{
		Tick:            r.Tick(),
		BoardW:          g.cfg.Board.Width,
		BoardH:          g.cfg.Board.Height,
		Score:           r.Score(),
		Phase:           r.Phase(),
		Reason:          r.Result().Reason,
		Paused:          g.paused,
		Player:          r.Body().Rect(),
		PlayerVY:        r.Body().VY,
		Frame:           SpriteFrame(r.Tick()),
		Obstacles:       obstacles,
		Pickup:          pickup,
		ShieldActive:    r.PowerUps().IsActive(now),
		ShieldRemaining: r.PowerUps().Remaining(now),
		Background:      g.background,
	}
}

// SpriteFrame returns the animation frame shown at tick.
func SpriteFrame(tick uint64) int {
	return int((tick / FrameTicks) % FrameCount)
}
