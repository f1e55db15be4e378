package flight

import "github.com/vovakirdan/skyflight/internal/core"

// Body is the flyer's vertical state. Horizontal position and hitbox size
// are fixed for the whole round.
type Body struct {
	X, Y    float64 // Top-left corner; Y grows downward
	VY      float64 // Vertical velocity per tick (negative = up)
	W, H    int     // Hitbox size
	gravity float64
	impulse float64
}

// NewBody places a body at (x, y) at rest.
func NewBody(x, y float64, w, h int, gravity, impulse float64) *Body {
	return &Body{X: x, Y: y, W: w, H: h, gravity: gravity, impulse: impulse}
}

// ApplyImpulse sets the velocity to the impulse constant.
// The previous velocity is discarded, so repeated flaps never stack.
func (b *Body) ApplyImpulse() {
	b.VY = b.impulse
}

// Integrate advances one tick: gravity into velocity, then velocity into position.
// Nothing is clamped here; leaving the board is the round's concern.
func (b *Body) Integrate() {
	b.VY += b.gravity
	b.Y += b.VY
}

// Rect returns the hitbox, truncating the fractional position to board units.
func (b *Body) Rect() core.Rect {
	return core.NewRect(int(b.X), int(b.Y), b.W, b.H)
}
