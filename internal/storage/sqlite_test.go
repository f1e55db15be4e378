package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("skyflight", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("practice", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("skyflight", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}
	if scores[0].Slot != "skyflight" {
		t.Errorf("Slot = %q", scores[0].Slot)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}

	other, err := store.TopScores("practice", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 practice score, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{3, 9, 1, 4} {
		store.SaveScore("test", score)
	}

	recent, err := store.RecentScores("test", 3)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	want := []int{4, 1, 9}
	if len(recent) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(recent))
	}
	for i, w := range want {
		if recent[i].Score != w {
			t.Errorf("recent[%d] = %d, want %d", i, recent[i].Score, w)
		}
	}
}

func TestStoreHighScoreSlots(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("skyflight")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for an empty slot, got %d", high)
	}

	slot := store.Slot("skyflight")
	if err := slot.Save(12); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := slot.Save(7); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := slot.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got != 12 {
		t.Errorf("Load() = %d, a lower save must keep 12", got)
	}

	if other, _ := store.Slot("practice").Load(); other != 0 {
		t.Errorf("slots are not isolated: practice = %d", other)
	}
}

func TestStoreInterleavedSubmitsKeepBest(t *testing.T) {
	store := openTestStore(t)
	if err := store.SetHighScore("skyflight", 5); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}

	// Two sessions read the same best before either saves
	a, b := store.Slot("skyflight"), store.Slot("skyflight")
	prevA, _ := a.Load()
	prevB, _ := b.Load()
	if prevA != 5 || prevB != 5 {
		t.Fatalf("loads = %d, %d, want 5, 5", prevA, prevB)
	}
	if err := a.Save(10); err != nil {
		t.Fatalf("Save(10) failed: %v", err)
	}
	if err := b.Save(7); err != nil {
		t.Fatalf("Save(7) failed: %v", err)
	}

	if got, _ := store.HighScore("skyflight"); got != 10 {
		t.Errorf("HighScore() = %d, want 10", got)
	}

	// Submit against a stale read takes the same path
	stale := staleStore{HighScoreStore: b, value: 5}
	Submit(stale, 8, nil)
	if got, _ := store.HighScore("skyflight"); got != 10 {
		t.Errorf("HighScore() after stale submit = %d, want 10", got)
	}
}

// staleStore reports an outdated best but saves through to the real slot.
type staleStore struct {
	HighScoreStore
	value int
}

func (s staleStore) Load() (int, error) { return s.value, nil }

func TestStoreHighScoreRejectsNegative(t *testing.T) {
	store := openTestStore(t)
	if err := store.SetHighScore("skyflight", -1); err == nil {
		t.Error("SetHighScore(-1) succeeded")
	}
}

func TestStoreHighScorePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Slot("skyflight").Save(42)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if got, _ := store.HighScore("skyflight"); got != 42 {
		t.Errorf("HighScore() after reopen = %d, want 42", got)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("skyflight", 100)
	store.SaveScore("skyflight", 200)
	store.SetHighScore("skyflight", 200)
	store.SaveScore("practice", 300)
	store.SetHighScore("practice", 300)

	if err := store.ClearScores("skyflight"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("skyflight", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if high, _ := store.HighScore("skyflight"); high != 0 {
		t.Errorf("Expected high score cleared, got %d", high)
	}

	if scores, _ := store.TopScores("practice", 10); len(scores) != 1 {
		t.Error("Other slots should not be affected by clearing")
	}
	if high, _ := store.HighScore("practice"); high != 300 {
		t.Errorf("Other slot high score = %d, want 300", high)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("skyflight")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, score := range []int{2, 4, 6} {
		store.SaveScore("skyflight", score)
	}
	store.SetHighScore("skyflight", 6)

	stats, err := store.GetGameStats("skyflight")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 6 || stats.TotalScore != 12 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 4 {
		t.Errorf("AvgScore = %v, want 4", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not populated")
	}
}
