package flight

import "testing"

func TestBodyIntegrate(t *testing.T) {
	b := NewBody(100, 350, 60, 60, 0.5, -10)

	prev := b.VY
	for i := 0; i < 20; i++ {
		y := b.Y
		b.Integrate()
		if b.VY != prev+0.5 {
			t.Fatalf("tick %d: VY = %v, want %v", i, b.VY, prev+0.5)
		}
		if b.Y != y+b.VY {
			t.Fatalf("tick %d: Y = %v, want %v", i, b.Y, y+b.VY)
		}
		prev = b.VY
	}
}

func TestBodyImpulseDoesNotAccumulate(t *testing.T) {
	tests := []struct {
		name string
		vy   float64
	}{
		{"at rest", 0},
		{"falling", 7.5},
		{"rising", -25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(100, 350, 60, 60, 0.5, -10)
			b.VY = tt.vy
			b.ApplyImpulse()
			b.ApplyImpulse()
			if b.VY != -10 {
				t.Errorf("VY = %v, want -10", b.VY)
			}
		})
	}
}

func TestBodyRectTruncates(t *testing.T) {
	b := NewBody(100, 350.9, 60, 60, 0.5, -10)
	r := b.Rect()
	if r.X != 100 || r.Y != 350 || r.W != 60 || r.H != 60 {
		t.Errorf("Rect() = %+v", r)
	}
}
