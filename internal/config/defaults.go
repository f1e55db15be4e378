package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flight.yaml
var defaultFlightYAML []byte

// DefaultFlightConfig returns the built-in tuning: a 500x700 board at 60 ticks
// per second with 200-unit gaps every 200 units.
func DefaultFlightConfig() FlightConfig {
	return FlightConfig{
		Board: Board{
			Width:  500,
			Height: 700,
		},
		Physics: Physics{
			Gravity:         0.5,
			Impulse:         -10,
			ScrollSpeed:     4,
			BackgroundSpeed: 1,
		},
		Obstacles: Obstacles{
			Width:     80,
			Spacing:   200,
			GapHeight: 200,
			Margin:    100,
		},
		Player: Player{
			X:      100,
			Width:  60,
			Height: 60,
		},
		Shield: Shield{
			Size:          40,
			SpawnOffset:   200,
			MinY:          200,
			BottomMargin:  100,
			Duration:      10 * time.Second,
			ScoreInterval: 2,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultFlightYAML
}
