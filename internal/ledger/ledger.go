package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// TableState tracks how far one table got in a run. Pages commit in
// order, so a single contiguous committed-row count is enough to resume.
type TableState struct {
	Cleared   bool  `json:"cleared"`
	Committed int64 `json:"committed"`
	Done      bool  `json:"done"`
}

// Ledger is the persisted per-run record of committed batches. It is
// written after every committed batch so an interrupted run can resume
// without re-migrating finished work.
type Ledger struct {
	RunID     string                 `json:"run_id"`
	Source    string                 `json:"source"`
	StartedAt time.Time              `json:"started_at"`
	Tables    map[string]*TableState `json:"tables"`

	path string
}

// New starts a fresh ledger, discarding any previous file at path.
func New(path, source string) *Ledger {
	return &Ledger{
		RunID:     uuid.NewString(),
		Source:    source,
		StartedAt: time.Now(),
		Tables:    make(map[string]*TableState),
		path:      path,
	}
}

// Load reads an existing ledger for a resumed run.
func Load(path string) (*Ledger, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	var l Ledger
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("failed to parse ledger %s: %w", path, err)
	}
	if l.Tables == nil {
		l.Tables = make(map[string]*TableState)
	}
	l.path = path
	return &l, nil
}

// State returns the (possibly new) state record for a table.
func (l *Ledger) State(table string) *TableState {
	st, ok := l.Tables[table]
	if !ok {
		st = &TableState{}
		l.Tables[table] = st
	}
	return st
}

// MarkCleared records that the destination table was emptied.
func (l *Ledger) MarkCleared(table string) error {
	l.State(table).Cleared = true
	return l.save()
}

// RecordBatch adds one committed page to the table's contiguous total.
func (l *Ledger) RecordBatch(table string, rows int64) error {
	l.State(table).Committed += rows
	return l.save()
}

// MarkDone records the table's terminal state.
func (l *Ledger) MarkDone(table string) error {
	l.State(table).Done = true
	return l.save()
}

// save writes atomically: temp file in the same directory, then rename.
func (l *Ledger) save() error {
	if l.path == "" {
		return nil
	}
	body, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	tmp := l.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create ledger dir: %w", err)
	}
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("failed to replace ledger: %w", err)
	}
	return nil
}
