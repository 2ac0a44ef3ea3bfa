package storage

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(Run{MazeID: "classic", Player: "ada", Score: score, Outcome: OutcomeLost}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	// Different maze
	if _, err := store.SaveRun(Run{MazeID: "gallery", Score: 500, Outcome: OutcomeWon}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
	if runs[0].Player != "ada" || runs[0].MazeID != "classic" {
		t.Errorf("Unexpected run fields: %+v", runs[0])
	}

	gallery, err := store.TopRuns("gallery", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(gallery) != 1 || gallery[0].Player != "anonymous" {
		t.Errorf("Expected 1 anonymous gallery run, got %+v", gallery)
	}
}

func TestStoreRunIDs(t *testing.T) {
	store := openStore(t)

	id, err := store.SaveRun(Run{MazeID: "classic", Outcome: OutcomeWon})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Generated ID %q is not a UUID: %v", id, err)
	}

	// Caller-chosen IDs are kept, duplicates rejected
	if got, err := store.SaveRun(Run{ID: "fixed", MazeID: "classic", Outcome: OutcomeWon}); err != nil || got != "fixed" {
		t.Fatalf("SaveRun(fixed) = %q, %v", got, err)
	}
	if _, err := store.SaveRun(Run{ID: "fixed", MazeID: "classic", Outcome: OutcomeWon}); err == nil {
		t.Error("Duplicate run ID should fail")
	}
}

func TestStoreRejectsInvalidRuns(t *testing.T) {
	store := openStore(t)

	tests := []struct {
		name string
		run  Run
	}{
		{"missing maze", Run{Outcome: OutcomeWon}},
		{"unknown outcome", Run{MazeID: "classic", Outcome: "quit"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.SaveRun(tc.run); !errors.Is(err, ErrInvalidRun) {
				t.Errorf("SaveRun() = %v, expected ErrInvalidRun", err)
			}
		})
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{MazeID: "test", Score: (i + 1) * 100, Outcome: OutcomeLost})
	}

	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openStore(t)

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for an unplayed maze, got %d", high)
	}

	store.SaveRun(Run{MazeID: "classic", Score: 100, Outcome: OutcomeLost})
	store.SaveRun(Run{MazeID: "classic", Score: 300, Outcome: OutcomeWon})
	store.SaveRun(Run{MazeID: "classic", Score: 200, Outcome: OutcomeLost})

	high, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openStore(t)

	store.SaveRun(Run{MazeID: "classic", Score: 100, Outcome: OutcomeLost})
	store.SaveRun(Run{MazeID: "classic", Score: 200, Outcome: OutcomeLost})
	store.SaveRun(Run{MazeID: "gallery", Score: 300, Outcome: OutcomeLost})

	if err := store.ClearRuns("classic"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	classic, _ := store.TopRuns("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic runs after clear, got %d", len(classic))
	}
	gallery, _ := store.TopRuns("gallery", 10)
	if len(gallery) != 1 {
		t.Errorf("Gallery runs should not be affected by clearing classic")
	}
}

func TestStoreStats(t *testing.T) {
	store := openStore(t)

	empty, err := store.Stats("classic")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unplayed maze stats = %+v", empty)
	}

	store.SaveRun(Run{MazeID: "classic", Score: 100, Kills: 1, Outcome: OutcomeLost})
	store.SaveRun(Run{MazeID: "classic", Score: 900, Kills: 2, Outcome: OutcomeWon})
	store.SaveRun(Run{MazeID: "gallery", Score: 50, Outcome: OutcomeLost})

	st, err := store.Stats("classic")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.Wins != 1 || st.HighScore != 900 || st.AvgScore != 500 || st.TotalKills != 3 {
		t.Errorf("Classic stats = %+v", st)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["gallery"].Runs != 1 {
		t.Errorf("AllStats() = %+v", all)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openStore(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.SaveRun(Run{MazeID: "classic", Score: i, Outcome: OutcomeLost}); err != nil {
				t.Errorf("SaveRun() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	st, err := store.Stats("classic")
	if err != nil {
		t.Fatal(err)
	}
	if st.Runs != 20 {
		t.Errorf("Expected 20 runs, got %d", st.Runs)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a := openStore(t)
	b := openStore(t)

	a.SaveRun(Run{MazeID: "classic", Score: 100, Outcome: OutcomeLost})

	high, err := b.HighScore("classic")
	if err != nil {
		t.Fatal(err)
	}
	if high != 0 {
		t.Errorf("Second store saw the first store's run: high = %d", high)
	}
}
