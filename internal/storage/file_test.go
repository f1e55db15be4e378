package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreMissingFile(t *testing.T) {
	f, err := NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.Load()
	if err != nil || got != 0 {
		t.Errorf("Load() = %d, %v; want 0, nil", got, err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "highscore.txt")
	f, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.Save(17); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := f.Load()
	if err != nil || got != 17 {
		t.Errorf("Load() = %d, %v; want 17, nil", got, err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "17" {
		t.Errorf("file content = %q, want plain integer", data)
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".highscore-*"))
	if len(matches) != 0 {
		t.Errorf("temporary files left behind: %v", matches)
	}
}

func TestFileStoreContents(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{"plain", "25", 25, false},
		{"trailing newline", "25\n", 25, false},
		{"garbage", "abc", 0, true},
		{"empty", "", 0, true},
		{"negative", "-3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "highscore.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			f, _ := NewFileStore(path)

			got, err := f.Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Load() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFileStoreRejectsNegative(t *testing.T) {
	f, _ := NewFileStore(filepath.Join(t.TempDir(), "highscore.txt"))
	if err := f.Save(-1); err == nil {
		t.Error("Save(-1) succeeded")
	}
}
