package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/skyflight/internal/config"
)

// FileStore keeps the best score as a decimal integer in a text file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file is created on the
// first Save.
func NewFileStore(path string) (*FileStore, error) {
	expanded, err := config.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &FileStore{path: expanded}, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the stored best. A missing file is 0 with no error; an
// unreadable or corrupt file is 0 with an error describing why.
func (f *FileStore) Load() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("storage: corrupt high score file %s: %w", f.path, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("storage: negative high score %d in %s", value, f.path)
	}
	return value, nil
}

// Save writes value through a temporary file and rename, so a crash never
// leaves a half-written score behind.
func (f *FileStore) Save(value int) error {
	if value < 0 {
		return fmt.Errorf("storage: high score must not be negative, got %d", value)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.WriteString(strconv.Itoa(value)); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	return nil
}
