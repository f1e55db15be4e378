package flight

import "github.com/vovakirdan/skyflight/internal/core"

// Rand is the random source used for gap and pickup placement.
// *rand.Rand satisfies it; tests can supply a scripted sequence.
type Rand interface {
	Intn(n int) int
}

// randRange returns a uniform value in [lo, hi].
func randRange(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// ObstaclePair is a top and bottom segment with a passable gap between them.
type ObstaclePair struct {
	X         int  // Left edge
	GapTop    int  // Height of the top segment (gap starts here)
	GapBottom int  // Y where the bottom segment starts
	Scored    bool // Whether the player has already passed this pair
}

// TopRect returns the upper segment.
func (p ObstaclePair) TopRect(width int) core.Rect {
	return core.NewRect(p.X, 0, width, p.GapTop)
}

// BottomRect returns the lower segment, reaching the bottom of the board.
func (p ObstaclePair) BottomRect(width, boardH int) core.Rect {
	return core.NewRect(p.X, p.GapBottom, width, boardH-p.GapBottom)
}

// TrackConfig holds the geometry a Track needs.
type TrackConfig struct {
	BoardW, BoardH int
	PairWidth      int
	Spacing        int
	GapHeight      int
	Margin         int
}

// Track owns the ordered obstacle pairs of one round, oldest first.
type Track struct {
	pairs []ObstaclePair
	rng   Rand
	cfg   TrackConfig
}

// NewTrack creates an empty track.
func NewTrack(cfg TrackConfig, rng Rand) *Track {
	return &Track{
		pairs: make([]ObstaclePair, 0, 8),
		rng:   rng,
		cfg:   cfg,
	}
}

// SpawnIfNeeded appends a pair at the right edge when the track is empty or
// the newest pair has scrolled past the spawn line. Reports whether it spawned.
func (t *Track) SpawnIfNeeded() bool {
	if len(t.pairs) > 0 && t.pairs[len(t.pairs)-1].X >= t.cfg.BoardW-t.cfg.Spacing {
		return false
	}

	lo := t.cfg.Margin
	hi := t.cfg.BoardH - t.cfg.GapHeight - t.cfg.Margin
	gapTop := randRange(t.rng, lo, hi)

	t.pairs = append(t.pairs, ObstaclePair{
		X:         t.cfg.BoardW,
		GapTop:    gapTop,
		GapBottom: gapTop + t.cfg.GapHeight,
	})
	return true
}

// Advance moves every pair left by speed.
func (t *Track) Advance(speed int) {
	for i := range t.pairs {
		t.pairs[i].X -= speed
	}
}

// CheckScoring marks pairs whose trailing edge is strictly left of playerX.
// Each pair is reported once over its lifetime.
func (t *Track) CheckScoring(playerX int) (bool, []ObstaclePair) {
	var newly []ObstaclePair
	for i := range t.pairs {
		p := &t.pairs[i]
		if !p.Scored && p.X+t.cfg.PairWidth < playerX {
			p.Scored = true
			newly = append(newly, *p)
		}
	}
	return len(newly) > 0, newly
}

// CheckCollision tests the box against both segments of every pair.
func (t *Track) CheckCollision(box core.Rect) bool {
	for _, p := range t.pairs {
		if box.Intersects(p.TopRect(t.cfg.PairWidth)) || box.Intersects(p.BottomRect(t.cfg.PairWidth, t.cfg.BoardH)) {
			return true
		}
	}
	return false
}

// Prune drops pairs that are entirely past the left edge.
func (t *Track) Prune() int {
	kept := t.pairs[:0]
	for _, p := range t.pairs {
		if p.X+t.cfg.PairWidth > 0 {
			kept = append(kept, p)
		}
	}
	removed := len(t.pairs) - len(kept)
	t.pairs = kept
	return removed
}

// Pairs returns the pairs currently on the track.
func (t *Track) Pairs() []ObstaclePair {
	return t.pairs
}

// Len returns the number of pairs on the track.
func (t *Track) Len() int {
	return len(t.pairs)
}

// Place appends a pair as-is, bypassing the spawn rules.
// Used for scripted scenarios and tests.
func (t *Track) Place(p ObstaclePair) {
	t.pairs = append(t.pairs, p)
}

// Width returns the horizontal size of every pair.
func (t *Track) Width() int {
	return t.cfg.PairWidth
}
