package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultFlightConfigIsValid(t *testing.T) {
	if err := DefaultFlightConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := ParseFlight(DefaultYAML())
	if err != nil {
		t.Fatalf("ParseFlight(embedded) failed: %v", err)
	}
	if cfg != DefaultFlightConfig() {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, DefaultFlightConfig())
	}
}

func TestParseFlightPartialOverride(t *testing.T) {
	doc := []byte(`
physics:
  scroll_speed: 6
shield:
  duration: 5s
`)
	cfg, err := ParseFlight(doc)
	if err != nil {
		t.Fatalf("ParseFlight() failed: %v", err)
	}

	if cfg.Physics.ScrollSpeed != 6 {
		t.Errorf("ScrollSpeed = %d, expected 6", cfg.Physics.ScrollSpeed)
	}
	if cfg.Shield.Duration != 5*time.Second {
		t.Errorf("Duration = %s, expected 5s", cfg.Shield.Duration)
	}
	// Untouched keys keep defaults
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("Gravity = %v, expected default 0.5", cfg.Physics.Gravity)
	}
	if cfg.Obstacles.GapHeight != 200 {
		t.Errorf("GapHeight = %d, expected default 200", cfg.Obstacles.GapHeight)
	}
}

func TestGapTopRange(t *testing.T) {
	lo, hi := DefaultFlightConfig().GapTopRange()
	if lo != 100 || hi != 400 {
		t.Errorf("GapTopRange() = [%d, %d], expected [100, 400]", lo, hi)
	}

	lo, hi = DefaultFlightConfig().ShieldYRange()
	if lo != 200 || hi != 600 {
		t.Errorf("ShieldYRange() = [%d, %d], expected [200, 600]", lo, hi)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlightConfig)
		code   string
	}{
		{"zero board", func(c *FlightConfig) { c.Board.Height = 0 }, "BOARD_SIZE"},
		{"no gravity", func(c *FlightConfig) { c.Physics.Gravity = 0 }, "GRAVITY"},
		{"downward impulse", func(c *FlightConfig) { c.Physics.Impulse = 3 }, "IMPULSE"},
		{"stopped scroll", func(c *FlightConfig) { c.Physics.ScrollSpeed = 0 }, "SCROLL_SPEED"},
		{"negative margin", func(c *FlightConfig) { c.Obstacles.Margin = -1 }, "OBSTACLE_SIZE"},
		{"gap near board height", func(c *FlightConfig) { c.Obstacles.GapHeight = 550 }, "GAP_RANGE"},
		{"player off board", func(c *FlightConfig) { c.Player.X = 480 }, "PLAYER_X"},
		{"no shield duration", func(c *FlightConfig) { c.Shield.Duration = 0 }, "SHIELD_DURATION"},
		{"zero interval", func(c *FlightConfig) { c.Shield.ScoreInterval = 0 }, "SHIELD_INTERVAL"},
		{"empty shield range", func(c *FlightConfig) { c.Shield.MinY = 650 }, "SHIELD_RANGE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlightConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if verr.Code != tc.code {
				t.Errorf("Validate() code = %s, expected %s", verr.Code, tc.code)
			}
		})
	}
}

func TestGapExactlyFillsBoard(t *testing.T) {
	// Gap plus both margins equal to the board height leaves a single valid placement
	cfg := DefaultFlightConfig()
	cfg.Obstacles.GapHeight = 500
	if err := cfg.Validate(); err != nil {
		t.Errorf("gap + margins == board height should be valid, got %v", err)
	}
}

func TestLoadFlightCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flight.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  spacing: 250\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlight(path)
	if err != nil {
		t.Fatalf("LoadFlight() failed: %v", err)
	}
	if cfg.Obstacles.Spacing != 250 {
		t.Errorf("Spacing = %d, expected 250", cfg.Obstacles.Spacing)
	}
}

func TestLoadFlightErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFlight(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFlight() with missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [not, a, map]"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlight(bad); err == nil {
		t.Error("LoadFlight() with malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("obstacles:\n  gap_height: 690\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFlight(invalid)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("LoadFlight() with invalid values = %v, expected wrapped ValidationError", err)
	}
}

func TestLoadFlightSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	// Nothing on disk: embedded default
	cfg, err := LoadFlight("")
	if err != nil {
		t.Fatalf("LoadFlight() failed: %v", err)
	}
	if cfg != DefaultFlightConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	// Local ./configs wins over the embedded default
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "flight.yaml"), []byte("physics:\n  scroll_speed: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadFlight("")
	if cfg.Physics.ScrollSpeed != 5 {
		t.Errorf("ScrollSpeed = %d, expected 5 from ./configs", cfg.Physics.ScrollSpeed)
	}

	// User directory wins over ./configs
	userDir := filepath.Join(home, ".skyflight", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "flight.yaml"), []byte("physics:\n  scroll_speed: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadFlight("")
	if cfg.Physics.ScrollSpeed != 7 {
		t.Errorf("ScrollSpeed = %d, expected 7 from user config", cfg.Physics.ScrollSpeed)
	}
}
