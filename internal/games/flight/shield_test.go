package flight

import (
	"testing"
	"time"

	"github.com/vovakirdan/skyflight/internal/core"
)

func testPowerUpConfig() PowerUpConfig {
	return PowerUpConfig{
		SpawnX:   700,
		MinY:     200,
		MaxY:     600,
		Size:     40,
		Duration: 10 * time.Second,
		Interval: 2,
	}
}

func TestPowerUpsSpawnOnEvenScore(t *testing.T) {
	tests := []struct {
		score int
		want  bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, false},
		{4, true},
	}

	for _, tt := range tests {
		m := NewPowerUps(testPowerUpConfig(), &scriptedRand{values: []int{50}})
		if got := m.TrySpawn(tt.score); got != tt.want {
			t.Errorf("TrySpawn(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestPowerUpsSingleLivePickup(t *testing.T) {
	m := NewPowerUps(testPowerUpConfig(), &scriptedRand{values: []int{50}})

	if !m.TrySpawn(2) {
		t.Fatal("expected spawn at score 2")
	}
	if m.TrySpawn(4) {
		t.Error("spawned a second pickup while one is live")
	}

	p := m.Pickup()
	if p == nil || p.X != 700 || p.Y != 250 || p.Size != 40 {
		t.Errorf("pickup = %+v", p)
	}
}

func TestPowerUpsMissedPickupDiscarded(t *testing.T) {
	m := NewPowerUps(testPowerUpConfig(), &scriptedRand{})
	m.TrySpawn(2)

	// 700 + 40 units must scroll by before it is gone
	for i := 0; i < 184; i++ {
		m.Advance(4)
	}
	if m.Pickup() == nil {
		t.Fatal("pickup discarded while still on board")
	}
	m.Advance(4)
	m.Advance(4)
	if m.Pickup() != nil {
		t.Errorf("pickup at X=%d not discarded", m.Pickup().X)
	}
	if !m.TrySpawn(4) {
		t.Error("no spawn after the missed pickup left the board")
	}
}

func TestPowerUpsCollect(t *testing.T) {
	now := time.Unix(1000, 0)
	m := NewPowerUps(testPowerUpConfig(), &scriptedRand{})
	m.TrySpawn(2)
	p := *m.Pickup()

	miss := core.NewRect(p.X-100, p.Y, 60, 60)
	if m.TryCollect(miss, now) {
		t.Fatal("collected without overlap")
	}

	hit := core.NewRect(p.X-30, p.Y, 60, 60)
	if !m.TryCollect(hit, now) {
		t.Fatal("overlap did not collect")
	}
	if m.Pickup() != nil {
		t.Error("pickup not removed after collection")
	}
	if !m.IsActive(now) || m.Status().ActivatedAt != now {
		t.Errorf("status = %+v", m.Status())
	}

	if m.TryCollect(hit, now.Add(time.Second)) {
		t.Error("second collect with no live pickup succeeded")
	}
	if m.Status().ActivatedAt != now {
		t.Error("failed collect changed the activation time")
	}
}

func TestPowerUpsExpiry(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewPowerUps(testPowerUpConfig(), &scriptedRand{})
	m.TrySpawn(2)
	p := m.Pickup()
	m.TryCollect(p.Rect(), start)

	tests := []struct {
		elapsed time.Duration
		active  bool
	}{
		{0, true},
		{5 * time.Second, true},
		{10 * time.Second, true},
		{10*time.Second + time.Millisecond, false},
	}

	for _, tt := range tests {
		if got := m.IsActive(start.Add(tt.elapsed)); got != tt.active {
			t.Errorf("IsActive(+%v) = %v, want %v", tt.elapsed, got, tt.active)
		}
	}

	if m.DeactivateIfExpired(start.Add(10 * time.Second)) {
		t.Error("deactivated at exactly the window length")
	}
	if !m.DeactivateIfExpired(start.Add(10*time.Second + time.Millisecond)) {
		t.Error("did not deactivate past the window")
	}
	if m.Status().Active {
		t.Error("status still active")
	}
	if m.Remaining(start.Add(11*time.Second)) != 0 {
		t.Error("Remaining() non-zero after expiry")
	}
}

func TestPowerUpsRecollectRestartsWindow(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewPowerUps(testPowerUpConfig(), &scriptedRand{})

	m.TrySpawn(2)
	m.TryCollect(m.Pickup().Rect(), start)
	m.TrySpawn(4)
	m.TryCollect(m.Pickup().Rect(), start.Add(8*time.Second))

	if !m.IsActive(start.Add(15 * time.Second)) {
		t.Error("second pickup did not restart the window")
	}
	if got := m.Remaining(start.Add(15 * time.Second)); got != 3*time.Second {
		t.Errorf("Remaining() = %v, want 3s", got)
	}
}
