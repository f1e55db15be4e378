package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings are the player's audio toggles. They gate sound only and never
// affect physics or scoring.
type Settings struct {
	Sound    bool `yaml:"sound"`     // Master switch for all cues and music
	HitSound bool `yaml:"hit_sound"` // Collision cue, only audible when Sound is on
}

// DefaultSettings returns settings with all audio enabled.
func DefaultSettings() Settings {
	return Settings{Sound: true, HitSound: true}
}

// DefaultSettingsPath returns ~/.skyflight/settings.yaml, or empty if home is unavailable.
func DefaultSettingsPath() string {
	dir, err := DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "settings.yaml")
}

// LoadSettings reads settings from path.
// A missing or unreadable file yields the defaults along with the error, so
// callers can log it and carry on.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("config: failed to read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("config: failed to parse settings %s: %w", path, err)
	}
	return s, nil
}

// SaveSettings writes settings to path, creating the parent directory.
func SaveSettings(path string, s Settings) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory for %s: %w", path, err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: cannot encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: cannot write settings %s: %w", path, err)
	}
	return nil
}
