// Package config provides YAML-based configuration for the flight game:
// board and physics tuning, validation, and the persisted audio settings.
package config

import "time"

// FlightConfig contains every tunable parameter of a round.
// Values are in board units (the board is a fixed logical canvas that the
// renderer scales to the terminal) and per-tick rates.
type FlightConfig struct {
	Board     Board     `yaml:"board"`
	Physics   Physics   `yaml:"physics"`
	Obstacles Obstacles `yaml:"obstacles"`
	Player    Player    `yaml:"player"`
	Shield    Shield    `yaml:"shield"`
}

// Board defines the logical playfield size.
type Board struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Physics defines per-tick motion constants.
type Physics struct {
	Gravity         float64 `yaml:"gravity"`          // Added to velocity every tick
	Impulse         float64 `yaml:"impulse"`          // Velocity set by a flap (negative = up)
	ScrollSpeed     int     `yaml:"scroll_speed"`     // Obstacle and pickup movement per tick
	BackgroundSpeed int     `yaml:"background_speed"` // Parallax city movement per tick
}

// Obstacles defines the obstacle pair geometry.
type Obstacles struct {
	Width     int `yaml:"width"`      // Horizontal size of both segments
	Spacing   int `yaml:"spacing"`    // Distance from the right edge before the next spawn
	GapHeight int `yaml:"gap_height"` // Vertical opening between segments
	Margin    int `yaml:"margin"`     // Minimum segment height at top and bottom
}

// Player defines the flyer's fixed column and hitbox.
type Player struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Shield defines the invulnerability pickup.
type Shield struct {
	Size          int           `yaml:"size"`           // Pickup hitbox edge length
	SpawnOffset   int           `yaml:"spawn_offset"`   // Distance past the right edge where pickups appear
	MinY          int           `yaml:"min_y"`          // Lowest spawn y (top of range)
	BottomMargin  int           `yaml:"bottom_margin"`  // Spawn range ends at board height minus this
	Duration      time.Duration `yaml:"duration"`       // Invulnerability window
	ScoreInterval int           `yaml:"score_interval"` // Spawn when score is a multiple of this
}

// GapTopRange returns the inclusive range the top segment height is drawn from.
func (c FlightConfig) GapTopRange() (lo, hi int) {
	return c.Obstacles.Margin, c.Board.Height - c.Obstacles.GapHeight - c.Obstacles.Margin
}

// ShieldYRange returns the inclusive range a pickup's y is drawn from.
func (c FlightConfig) ShieldYRange() (lo, hi int) {
	return c.Shield.MinY, c.Board.Height - c.Shield.BottomMargin
}
