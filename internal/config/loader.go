package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFlight loads and validates the flight configuration.
// Search order: customPath -> ~/.skyflight/configs/flight.yaml -> ./configs/flight.yaml -> embedded default.
// Files only need to mention the keys they change; everything else keeps its default.
func LoadFlight(customPath string) (FlightConfig, error) {
	cfg, err := readFlight(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: invalid flight config: %w", err)
	}
	return cfg, nil
}

// readFlight resolves the first readable config in the search order.
func readFlight(customPath string) (FlightConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultFlightConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseFlight(data)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flight.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseFlight(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "flight.yaml")); err == nil {
		if cfg, err := ParseFlight(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseFlight(defaultFlightYAML)
	if err != nil {
		return DefaultFlightConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseFlight decodes a YAML document over the built-in defaults.
func ParseFlight(data []byte) (FlightConfig, error) {
	cfg := DefaultFlightConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultFlightConfig(), err
	}
	return cfg, nil
}

// MarshalFlight encodes a configuration as YAML.
func MarshalFlight(cfg FlightConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir, err := DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
