package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("missing settings should not be an error, got %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, expected defaults", s)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := Settings{Sound: true, HitSound: false}

	if err := SaveSettings(path, want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadSettings() = %+v, expected %+v", got, want)
	}
}

func TestLoadSettingsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("sound: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err == nil {
		t.Error("corrupt settings should report an error")
	}
	if s != DefaultSettings() {
		t.Errorf("corrupt settings should fall back to defaults, got %+v", s)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.skyflight/scores.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if got != filepath.Join(home, ".skyflight", "scores.db") {
		t.Errorf("ExpandHome() = %q", got)
	}

	if got, _ := ExpandHome("./local.db"); got != "./local.db" {
		t.Errorf("relative path should be unchanged, got %q", got)
	}
	if got, _ := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("~user form should be unchanged, got %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("SKYFLIGHT_TEST_VALUE", "set")
	if GetEnv("SKYFLIGHT_TEST_VALUE", "fallback") != "set" {
		t.Error("GetEnv should return the set value")
	}
	if GetEnv("SKYFLIGHT_TEST_UNSET_VALUE", "fallback") != "fallback" {
		t.Error("GetEnv should return the fallback for unset keys")
	}
}
