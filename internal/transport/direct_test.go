package transport_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/abenherik/nba-milestones-sub001/internal/dialect"
	"github.com/abenherik/nba-milestones-sub001/internal/schema"
	"github.com/abenherik/nba-milestones-sub001/internal/transport"

	_ "modernc.org/sqlite"
)

// narrowDialect simulates a backend whose parameter budget only fits two
// rows per statement.
type narrowDialect struct {
	dialect.SQLiteDialect
}

func (d *narrowDialect) MaxRowsPerInsert(cols int) int { return 2 }

func openDest(t *testing.T) *transport.Direct {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dest.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(`CREATE TABLE teams (id INTEGER PRIMARY KEY, city TEXT, name TEXT)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	return transport.NewDirect(db, "sqlite")
}

func teamsTable() *schema.Table {
	return &schema.Table{
		Name:      "teams",
		Columns:   []string{"id", "city", "name"},
		OrderBy:   "id",
		ChunkSize: 2,
	}
}

func TestApplyRowsSingleBatch(t *testing.T) {
	d := openDest(t)
	ctx := context.Background()

	rows := []schema.Row{
		{int64(1), "Cleveland", "Cavaliers"},
		{int64(2), "Golden State", "Warriors"},
	}
	if err := d.ApplyRows(ctx, teamsTable(), rows); err != nil {
		t.Fatalf("ApplyRows: %v", err)
	}

	n, err := d.Count(ctx, "teams")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
}

func TestApplyRowsIsAtomic(t *testing.T) {
	d := openDest(t)
	d.Attempts = 1
	ctx := context.Background()

	// Second row violates the primary key; the whole batch must roll back.
	rows := []schema.Row{
		{int64(1), "Cleveland", "Cavaliers"},
		{int64(1), "Golden State", "Warriors"},
	}
	if err := d.ApplyRows(ctx, teamsTable(), rows); err == nil {
		t.Fatal("expected constraint error")
	}

	n, err := d.Count(ctx, "teams")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("partial batch became visible: %d rows", n)
	}
}

func TestApplyRowsSplitsOverParameterBudget(t *testing.T) {
	d := openDest(t)
	d.Dialect = &narrowDialect{}
	ctx := context.Background()

	rows := []schema.Row{
		{int64(1), "Cleveland", "Cavaliers"},
		{int64(2), "Golden State", "Warriors"},
		{int64(3), "Boston", "Celtics"},
		{int64(4), "Miami", "Heat"},
		{int64(5), "Denver", "Nuggets"},
	}
	if err := d.ApplyRows(ctx, teamsTable(), rows); err != nil {
		t.Fatalf("ApplyRows: %v", err)
	}

	n, err := d.Count(ctx, "teams")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 5 {
		t.Errorf("expected all 5 rows across split statements, got %d", n)
	}
}

func TestSplitPageStaysAtomic(t *testing.T) {
	d := openDest(t)
	d.Dialect = &narrowDialect{}
	d.Attempts = 1
	ctx := context.Background()

	// The duplicate key sits in the third statement; rows written by the
	// earlier statements of the same page must roll back with it.
	rows := []schema.Row{
		{int64(1), "Cleveland", "Cavaliers"},
		{int64(2), "Golden State", "Warriors"},
		{int64(3), "Boston", "Celtics"},
		{int64(4), "Miami", "Heat"},
		{int64(1), "Denver", "Nuggets"},
	}
	if err := d.ApplyRows(ctx, teamsTable(), rows); err == nil {
		t.Fatal("expected constraint error")
	}

	n, err := d.Count(ctx, "teams")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("partial page became visible: %d rows", n)
	}
}

func TestClear(t *testing.T) {
	d := openDest(t)
	ctx := context.Background()

	if err := d.ApplyRows(ctx, teamsTable(), []schema.Row{{int64(1), "Boston", "Celtics"}}); err != nil {
		t.Fatalf("ApplyRows: %v", err)
	}
	if err := d.Clear(ctx, teamsTable()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	n, _ := d.Count(ctx, "teams")
	if n != 0 {
		t.Errorf("expected empty table after clear, got %d rows", n)
	}
}
