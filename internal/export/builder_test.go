package export_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/abenherik/nba-milestones-sub001/internal/export"
	"github.com/abenherik/nba-milestones-sub001/internal/schema"
)

func TestChunkBoundaryIntegrity(t *testing.T) {
	b := export.NewBuilder(120)

	var script strings.Builder
	for i := 0; i < 40; i++ {
		stmt := fmt.Sprintf("INSERT INTO \"teams\" (\"id\") VALUES (%d)", i)
		b.Add(stmt)
		script.WriteString(stmt + ";\n")
	}

	chunks := b.Chunks()
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks under a 120-byte budget, got %d", len(chunks))
	}

	var joined strings.Builder
	for i, c := range chunks {
		if c.Index != i+1 {
			t.Errorf("chunk %d has index %d", i, c.Index)
		}
		if len(c.SQL) > 120 {
			t.Errorf("chunk %d exceeds budget: %d bytes", c.Index, len(c.SQL))
		}
		if !strings.HasSuffix(c.SQL, ";\n") {
			t.Errorf("chunk %d ends mid-statement: %q", c.Index, c.SQL[len(c.SQL)-10:])
		}
		joined.WriteString(c.SQL)
	}

	if joined.String() != script.String() {
		t.Error("concatenated chunks do not reproduce the original script")
	}
}

func TestOversizedStatementGetsOwnChunk(t *testing.T) {
	b := export.NewBuilder(50)
	b.Add("DELETE FROM \"teams\"")
	big := "INSERT INTO \"teams\" (\"name\") VALUES ('" + strings.Repeat("x", 200) + "')"
	b.Add(big)
	b.Add("DELETE FROM \"players\"")

	chunks := b.Chunks()
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if !strings.Contains(chunks[1].SQL, big) {
		t.Error("oversized statement was not kept whole")
	}
	if strings.Count(chunks[1].SQL, ";\n") != 1 {
		t.Error("oversized statement should be alone in its chunk")
	}
}

func TestBudgetCountsBytesNotRunes(t *testing.T) {
	stmt := `INSERT INTO "players" ("full_name") VALUES ('Luka Dončić')`
	terminated := stmt + ";\n"
	byteLen := len(terminated)
	runeLen := utf8.RuneCountInString(terminated)
	if byteLen <= runeLen {
		t.Fatal("fixture must contain multi-byte runes")
	}

	// Two statements fit the budget rune-wise but not byte-wise; byte
	// accounting must split them so no chunk exceeds the endpoint's cap.
	b := export.NewBuilder(byteLen + runeLen)
	b.Add(stmt)
	b.Add(stmt)

	chunks := b.Chunks()
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if len(c.SQL) > b.Budget {
			t.Errorf("chunk %d is %d bytes, budget %d", c.Index, len(c.SQL), b.Budget)
		}
	}
}

func TestLiteralEncoding(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{int64(42), "42"},
		{19.5, "19.5"},
		{true, "1"},
		{"O'Neal", "'O''Neal'"},
		{[]byte{0xde, 0xad}, "X'dead'"},
	}
	for _, tc := range cases {
		if got := export.Literal(tc.in); got != tc.want {
			t.Errorf("Literal(%v) = %s, expected %s", tc.in, got, tc.want)
		}
	}
}

func TestInsertStatement(t *testing.T) {
	rows := []schema.Row{
		{int64(1), "LeBron James"},
		{int64(2), nil},
	}
	got := export.InsertStatement("players", []string{"id", "full_name"}, rows)
	want := `INSERT INTO "players" ("id", "full_name") VALUES (1, 'LeBron James'), (2, NULL)`
	if got != want {
		t.Errorf("InsertStatement:\n got  %s\n want %s", got, want)
	}
}

func TestRowAccounting(t *testing.T) {
	b := export.NewBuilder(0)
	b.Add(export.DeleteStatement("teams"))
	b.AddRows("INSERT INTO \"teams\" (\"id\") VALUES (1), (2)", 2)
	if b.Statements != 2 {
		t.Errorf("expected 2 statements, got %d", b.Statements)
	}
	if b.TotalRows != 2 {
		t.Errorf("expected 2 rows, got %d", b.TotalRows)
	}
}
