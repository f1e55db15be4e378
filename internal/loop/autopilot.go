package loop

import (
	"github.com/vovakirdan/skyflight/internal/core"
	"github.com/vovakirdan/skyflight/internal/games/flight"
)

// Autopilot flaps when the flyer is about to sink through the floor of the
// next gap. It is good enough to pass pairs, not to play forever.
type Autopilot struct {
	// Bias moves the floor down (positive) or up (negative), in board units.
	Bias int
}

// floorMargin keeps the flyer's bottom edge this far above the gap floor.
const floorMargin = 10

// Next implements InputSource.
func (a Autopilot) Next(snap flight.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if snap.Phase != flight.PhaseRunning {
		return in
	}

	floor := snap.BoardH/2 + snap.Player.H
	if _, gapBottom, ok := nextGap(snap); ok {
		floor = gapBottom
	}
	floor += a.Bias - floorMargin

	// Predict one tick ahead so fast falls flap early enough
	if float64(snap.Player.Bottom())+snap.PlayerVY > float64(floor) {
		in.Set(core.ActionImpulse)
	}
	return in
}

// nextGap returns the gap of the first pair whose trailing edge is not yet
// behind the flyer.
func nextGap(snap flight.Snapshot) (top, bottom int, ok bool) {
	for i := 0; i+1 < len(snap.Obstacles); i += 2 {
		upper, lower := snap.Obstacles[i], snap.Obstacles[i+1]
		if upper.Right() >= snap.Player.X {
			return upper.Bottom(), lower.Y, true
		}
	}
	return 0, 0, false
}

// Script replays a fixed sequence of input frames, then idles.
type Script struct {
	Frames []core.InputFrame
	pos    int
}

// Next implements InputSource.
func (s *Script) Next(flight.Snapshot) core.InputFrame {
	if s.pos >= len(s.Frames) {
		return core.NewInputFrame()
	}
	in := s.Frames[s.pos]
	s.pos++
	return in
}
