package upload_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abenherik/nba-milestones-sub001/internal/export"
	"github.com/abenherik/nba-milestones-sub001/internal/upload"
)

func chunkFixture() []export.Chunk {
	return []export.Chunk{
		{Index: 1, SQL: "DELETE FROM \"teams\";\n"},
		{Index: 2, SQL: "INSERT INTO \"teams\" (\"id\") VALUES (1), (2);\n"},
		{Index: 3, SQL: "INSERT INTO \"teams\" (\"id\") VALUES (3);\n"},
	}
}

func TestUploadSequenceAndTotals(t *testing.T) {
	var received []upload.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req upload.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad body: %v", err)
		}
		received = append(received, req)
		json.NewEncoder(w).Encode(upload.Response{
			ExecutedStatementCount: 1,
			TotalRowsInserted:      2,
		})
	}))
	defer srv.Close()

	u := &upload.Uploader{Endpoint: srv.URL, Key: "sekrit", Pause: 0}
	res := u.Run(context.Background(), chunkFixture())

	if res.ChunksSent != 3 || res.ChunksFailed != 0 {
		t.Fatalf("expected 3 sent / 0 failed, got %d / %d", res.ChunksSent, res.ChunksFailed)
	}
	if res.Statements != 3 || res.RowsInserted != 6 {
		t.Errorf("totals not accumulated: statements=%d rows=%d", res.Statements, res.RowsInserted)
	}
	for i, req := range received {
		if req.ChunkIndex != i+1 {
			t.Errorf("chunks out of order: position %d carried index %d", i, req.ChunkIndex)
		}
		if req.AuthorizationKey != "sekrit" {
			t.Errorf("missing authorization key on chunk %d", req.ChunkIndex)
		}
	}
	if !strings.Contains(received[1].SQLText, "INSERT INTO") {
		t.Error("chunk body not forwarded verbatim")
	}
}

func TestFailedChunkDoesNotStopTheRun(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(upload.Response{ExecutedStatementCount: 1})
	}))
	defer srv.Close()

	u := &upload.Uploader{Endpoint: srv.URL, Key: "sekrit"}
	res := u.Run(context.Background(), chunkFixture())

	if calls != 3 {
		t.Fatalf("uploader must continue past a failed chunk, made %d calls", calls)
	}
	if res.ChunksFailed != 1 || res.ChunksSent != 2 {
		t.Errorf("expected 2 sent / 1 failed, got %d / %d", res.ChunksSent, res.ChunksFailed)
	}
	if len(res.FailedIndexes) != 1 || res.FailedIndexes[0] != 2 {
		t.Errorf("failed chunk index not recorded: %v", res.FailedIndexes)
	}
}

func TestUnauthorizedIsASoftError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	u := &upload.Uploader{Endpoint: srv.URL, Key: "wrong"}
	res := u.Run(context.Background(), chunkFixture()[:1])
	if res.ChunksFailed != 1 {
		t.Errorf("expected the chunk to be counted as failed, got %d", res.ChunksFailed)
	}
}
