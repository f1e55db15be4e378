package flight

import (
	"time"

	"github.com/vovakirdan/skyflight/internal/core"
)

// Pickup is a collectible shield scrolling toward the player.
type Pickup struct {
	X, Y int // Top-left corner
	Size int // Edge length of the square hitbox
}

// Rect returns the pickup hitbox.
func (p Pickup) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Size, p.Size)
}

// ShieldStatus is the player's invulnerability window.
type ShieldStatus struct {
	Active      bool
	ActivatedAt time.Time
}

// PowerUpConfig holds pickup placement and shield timing.
type PowerUpConfig struct {
	SpawnX     int           // X where pickups appear
	MinY, MaxY int           // Inclusive spawn range for the pickup's y
	Size       int           // Pickup edge length
	Duration   time.Duration // Invulnerability window
	Interval   int           // Spawn on scores that are multiples of this
}

// PowerUps owns the optional live pickup and the shield status of one round.
type PowerUps struct {
	pickup *Pickup
	status ShieldStatus
	rng    Rand
	cfg    PowerUpConfig
}

// NewPowerUps creates a manager with no pickup and the shield down.
func NewPowerUps(cfg PowerUpConfig, rng Rand) *PowerUps {
	return &PowerUps{rng: rng, cfg: cfg}
}

// TrySpawn places a pickup when score is a positive multiple of the interval
// and no pickup is live. Call it once per score increment.
func (m *PowerUps) TrySpawn(score int) bool {
	if score <= 0 || score%m.cfg.Interval != 0 || m.pickup != nil {
		return false
	}
	m.pickup = &Pickup{
		X:    m.cfg.SpawnX,
		Y:    randRange(m.rng, m.cfg.MinY, m.cfg.MaxY),
		Size: m.cfg.Size,
	}
	return true
}

// Advance scrolls the live pickup left and discards it once fully off-board.
func (m *PowerUps) Advance(speed int) {
	if m.pickup == nil {
		return
	}
	m.pickup.X -= speed
	if m.pickup.X+m.pickup.Size <= 0 {
		m.pickup = nil
	}
}

// TryCollect consumes the pickup if it overlaps box, raising the shield at now.
// Collecting while shielded restarts the window.
func (m *PowerUps) TryCollect(box core.Rect, now time.Time) bool {
	if m.pickup == nil || !box.Intersects(m.pickup.Rect()) {
		return false
	}
	m.pickup = nil
	m.status = ShieldStatus{Active: true, ActivatedAt: now}
	return true
}

// IsActive reports whether the shield protects the player at now.
func (m *PowerUps) IsActive(now time.Time) bool {
	return m.status.Active && !m.expired(now)
}

// DeactivateIfExpired drops the shield once more than the window has elapsed.
// Reports whether it deactivated on this call.
func (m *PowerUps) DeactivateIfExpired(now time.Time) bool {
	if !m.status.Active || !m.expired(now) {
		return false
	}
	m.status.Active = false
	return true
}

// Remaining returns how long the shield still lasts, or zero if it is down.
func (m *PowerUps) Remaining(now time.Time) time.Duration {
	if !m.status.Active {
		return 0
	}
	left := m.cfg.Duration - now.Sub(m.status.ActivatedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Pickup returns the live pickup, or nil.
func (m *PowerUps) Pickup() *Pickup {
	return m.pickup
}

// Status returns the current shield status.
func (m *PowerUps) Status() ShieldStatus {
	return m.status
}

func (m *PowerUps) expired(now time.Time) bool {
	return now.Sub(m.status.ActivatedAt) > m.cfg.Duration
}
