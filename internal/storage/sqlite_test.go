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

func saveScores(t *testing.T, store *Store, gameID string, scores ...int) {
	t.Helper()
	for _, sc := range scores {
		if _, err := store.SaveScore(ScoreEntry{GameID: gameID, Score: sc}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	saveScores(t, store, "blocks", 1200)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("blocks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1200 {
		t.Errorf("HighScore() after reopen = %d, expected 1200", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entry := ScoreEntry{
		RunID:     "5f0c2d55-5c1e-4c86-9d36-a3c0d1c4a7b1",
		GameID:    "blocks",
		Score:     4200,
		Lines:     31,
		Level:     4,
		Character: "miner",
	}
	if _, err := store.SaveScore(entry); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	saveScores(t, store, "blocks", 100, 9000)
	saveScores(t, store, "blocks_sprint", 500)

	scores, err := store.TopScores("blocks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	if scores[0].Score != 9000 || scores[1].Score != 4200 || scores[2].Score != 100 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	got := scores[1]
	if got.RunID != entry.RunID {
		t.Errorf("RunID = %q, expected %q", got.RunID, entry.RunID)
	}
	if got.Lines != 31 || got.Level != 4 || got.Character != "miner" {
		t.Errorf("stored entry = %+v, expected lines 31 level 4 miner", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	// Generated run ids are unique and level defaults to 1.
	if scores[0].RunID == "" || scores[0].RunID == scores[2].RunID {
		t.Errorf("generated RunIDs should be unique, got %q and %q", scores[0].RunID, scores[2].RunID)
	}
	if scores[0].Level != 1 {
		t.Errorf("default Level = %d, expected 1", scores[0].Level)
	}

	sprint, err := store.TopScores("blocks_sprint", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(sprint) != 1 {
		t.Errorf("Expected 1 sprint score, got %d", len(sprint))
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)

	entry := ScoreEntry{RunID: "run-1", GameID: "blocks", Score: 10}
	if _, err := store.SaveScore(entry); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore(entry); err == nil {
		t.Error("saving the same run twice should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "blocks", 100, 200, 300, 400, 500)

	scores, err := store.TopScores("blocks", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10.
	scores, _ = store.TopScores("blocks", 0)
	if len(scores) != 5 {
		t.Errorf("TopScores(0) returned %d, expected 5", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blocks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	saveScores(t, store, "blocks", 100, 300, 200)

	high, err = store.HighScore("blocks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "blocks", 100, 200)
	saveScores(t, store, "blocks_sprint", 300)

	if err := store.ClearScores("blocks"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("blocks", 10); len(scores) != 0 {
		t.Errorf("Expected 0 blocks scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("blocks_sprint", 10); len(scores) != 1 {
		t.Error("Sprint scores should not be affected by clearing blocks")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)
	for i := range 20 {
		saveScores(t, store, "blocks", i*10)
	}

	scores, err := store.AllScores("blocks")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("blocks")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore(ScoreEntry{GameID: "blocks", Score: 100, Lines: 4, Level: 1})
	store.SaveScore(ScoreEntry{GameID: "blocks", Score: 300, Lines: 12, Level: 2})
	store.SaveScore(ScoreEntry{GameID: "blocks_sprint", Score: 50, Lines: 40, Level: 5})

	stats, err = store.GetGameStats("blocks")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.TotalScore != 400 || stats.TotalLines != 16 {
		t.Errorf("totals = %d/%d, expected 400/16", stats.TotalScore, stats.TotalLines)
	}
	if stats.BestLevel != 2 {
		t.Errorf("BestLevel = %d, expected 2", stats.BestLevel)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllGamesStats() returned %d games, expected 2", len(all))
	}
	if all["blocks_sprint"].TotalLines != 40 {
		t.Errorf("sprint TotalLines = %d, expected 40", all["blocks_sprint"].TotalLines)
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

func TestStoreExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.blocks/blocks.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".blocks", "blocks.db")); err != nil {
		t.Errorf("Database not created under HOME: %v", err)
	}
}
