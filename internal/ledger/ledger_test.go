package ledger_test

import (
	"path/filepath"
	"testing"

	"github.com/abenherik/nba-milestones-sub001/internal/ledger"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	l := ledger.New(path, "milestones.db")
	if l.RunID == "" {
		t.Fatal("expected a run id")
	}
	if err := l.MarkCleared("players"); err != nil {
		t.Fatalf("MarkCleared: %v", err)
	}
	if err := l.RecordBatch("players", 500); err != nil {
		t.Fatalf("RecordBatch: %v", err)
	}
	if err := l.RecordBatch("players", 137); err != nil {
		t.Fatalf("RecordBatch: %v", err)
	}
	if err := l.MarkDone("teams"); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}

	loaded, err := ledger.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.RunID != l.RunID {
		t.Errorf("run id changed across reload: %s vs %s", loaded.RunID, l.RunID)
	}

	players := loaded.State("players")
	if !players.Cleared {
		t.Error("players should be recorded as cleared")
	}
	if players.Committed != 637 {
		t.Errorf("expected 637 committed rows, got %d", players.Committed)
	}
	if players.Done {
		t.Error("players should not be done")
	}
	if !loaded.State("teams").Done {
		t.Error("teams should be done")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := ledger.Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing ledger")
	}
}

func TestStateCreatesRecord(t *testing.T) {
	l := ledger.New("", "milestones.db")
	st := l.State("milestones")
	if st == nil || st.Committed != 0 || st.Cleared || st.Done {
		t.Errorf("unexpected fresh state: %+v", st)
	}
}
