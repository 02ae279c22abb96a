package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, -30, 200} {
		if _, err := store.SaveScore("whack_classic", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("whack_big", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("whack_classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Sorted descending, negative scores last
	want := []int{200, 100, -30}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}

	big, err := store.TopScores("whack_big", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(big) != 1 {
		t.Errorf("Expected 1 big-garden score, got %d", len(big))
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
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.HighScore("whack_classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if ok {
		t.Error("Expected no high score for an empty game")
	}

	// An all-negative history still has a high score
	store.SaveScore("whack_classic", -100)
	store.SaveScore("whack_classic", -40)

	high, ok, err := store.HighScore("whack_classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if !ok || high != -40 {
		t.Errorf("HighScore() = %d, %v, expected -40, true", high, ok)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("whack_classic", 100)
	store.SaveScore("whack_classic", 200)
	store.SaveScore("whack_wide", 300)

	if err := store.ClearScores("whack_classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("whack_classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}

	wide, _ := store.TopScores("whack_wide", 10)
	if len(wide) != 1 {
		t.Errorf("Wide scores should not be affected by clearing classic")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
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

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.SaveRun(Run{
		Layout:      "classic",
		Score:       -30,
		BenignHits:  2,
		HostileHits: 1,
		Spawned:     40,
		Missed:      37,
		Duration:    90,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if saved.ID == 0 {
		t.Error("SaveRun() should fill in the row id")
	}
	if _, err := uuid.Parse(saved.RunID); err != nil {
		t.Errorf("run id %q is not a uuid: %v", saved.RunID, err)
	}

	got, err := store.RunByID(saved.RunID)
	if err != nil || got == nil {
		t.Fatalf("RunByID() = %v, %v", got, err)
	}
	if got.Score != -30 || got.Missed != 37 || got.Layout != "classic" {
		t.Errorf("RunByID() = %+v", got)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("unknown run should be nil, nil, got %v, %v", missing, err)
	}

	// A caller-provided id is kept, and must be unique
	fixed := uuid.NewString()
	if _, err := store.SaveRun(Run{RunID: fixed, Layout: "wide", Score: 50}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{RunID: fixed, Layout: "wide"}); err == nil {
		t.Error("duplicate run id should fail")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i, l := range []string{"classic", "wide", "classic"} {
		if _, err := store.SaveRun(Run{Layout: l, Score: i}); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 || all[0].Score != 2 {
		t.Errorf("expected 3 runs newest first, got %+v", all)
	}

	classic, err := store.RecentRuns("classic", 1)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(classic) != 1 || classic[0].Layout != "classic" || classic[0].Score != 2 {
		t.Errorf("RecentRuns(classic, 1) = %+v", classic)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("whack_classic", 100)
	store.SaveScore("whack_classic", -50)
	store.SaveScore("whack_big", 10)

	stats, err := store.GetGameStats("whack_classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 100 || stats.TotalScore != 50 || stats.AvgScore != 25 {
		t.Errorf("stats = %+v", stats)
	}

	empty, err := store.GetGameStats("whack_wide")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["whack_big"].HighScore != 10 {
		t.Errorf("all stats = %+v", all)
	}
}
