package server_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abenherik/nba-milestones-sub001/internal/server"

	_ "modernc.org/sqlite"
)

func newTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "endpoint.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(`CREATE TABLE teams (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	srv := httptest.NewServer(server.New(db, "sekrit").Router())
	t.Cleanup(srv.Close)
	return srv, db
}

func execute(t *testing.T, url, key, sqlText string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"authorizationKey": key,
		"sqlText":          sqlText,
		"chunkIndex":       1,
	})
	resp, err := http.Post(url+"/v1/execute", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestExecuteChunk(t *testing.T) {
	srv, db := newTestServer(t)

	script := "DELETE FROM \"teams\";\n" +
		"INSERT INTO \"teams\" (\"id\", \"name\") VALUES (1, 'Celtics'), (2, 'Lakers');\n"
	resp := execute(t, srv.URL, "sekrit", script)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		ExecutedStatementCount int `json:"executedStatementCount"`
		TotalRowsInserted      int `json:"totalRowsInserted"`
		ErrorCount             int `json:"errorCount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ExecutedStatementCount != 2 || out.TotalRowsInserted != 2 || out.ErrorCount != 0 {
		t.Errorf("unexpected counts: %+v", out)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM teams").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows in the endpoint db, got %d", n)
	}
}

func TestUnauthorizedKeyExecutesNothing(t *testing.T) {
	srv, db := newTestServer(t)

	resp := execute(t, srv.URL, "wrong", "INSERT INTO \"teams\" (\"id\", \"name\") VALUES (9, 'Nope');")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	var n int
	db.QueryRow("SELECT COUNT(*) FROM teams").Scan(&n)
	if n != 0 {
		t.Errorf("unauthorized request must not execute, found %d rows", n)
	}
}

func TestStatementFailuresAreCounted(t *testing.T) {
	srv, _ := newTestServer(t)

	script := "INSERT INTO \"nope\" (\"id\") VALUES (1);\nINSERT INTO \"teams\" (\"id\", \"name\") VALUES (1, 'Hawks');"
	resp := execute(t, srv.URL, "sekrit", script)
	var out struct {
		ExecutedStatementCount int `json:"executedStatementCount"`
		ErrorCount             int `json:"errorCount"`
	}
	json.NewDecoder(resp.Body).Decode(&out)
	if out.ErrorCount != 1 || out.ExecutedStatementCount != 1 {
		t.Errorf("expected 1 error / 1 executed, got %+v", out)
	}
}

func TestOversizedBodyRejected(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "endpoint.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := server.New(db, "sekrit")
	s.MaxBody = 128
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)

	big := `INSERT INTO "teams" ("name") VALUES ('` + strings.Repeat("x", 512) + `');`
	resp := execute(t, srv.URL, "sekrit", big)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for a body over the cap, got %d", resp.StatusCode)
	}
}

func TestSplitStatementsRespectsQuotes(t *testing.T) {
	script := `INSERT INTO "teams" ("name") VALUES ('semi;colon');DELETE FROM "teams";`
	stmts := server.SplitStatements(script)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(stmts), stmts)
	}
	if stmts[0] != `INSERT INTO "teams" ("name") VALUES ('semi;colon')` {
		t.Errorf("literal semicolon split the statement: %q", stmts[0])
	}
}
