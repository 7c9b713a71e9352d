package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/abenherik/nba-milestones-sub001/internal/export"
)

// DefaultPause throttles consecutive uploads; the hosted endpoint is
// rate-limited.
const DefaultPause = time.Second

// Request is the execution endpoint's expected body.
type Request struct {
	AuthorizationKey string `json:"authorizationKey"`
	SQLText          string `json:"sqlText"`
	ChunkIndex       int    `json:"chunkIndex"`
}

// Response is the endpoint's per-chunk execution report.
type Response struct {
	ExecutedStatementCount int `json:"executedStatementCount"`
	TotalRowsInserted      int `json:"totalRowsInserted"`
	ErrorCount             int `json:"errorCount"`
}

// Result accumulates the whole upload run. FailedIndexes names chunks to
// resubmit manually with --only.
type Result struct {
	ChunksSent    int
	ChunksFailed  int
	Statements    int
	RowsInserted  int
	RemoteErrors  int
	FailedIndexes []int
}

// Uploader POSTs chunks strictly in order. A failed chunk is logged and
// counted but never retried here; the run continues with the next chunk.
type Uploader struct {
	Endpoint string
	Key      string
	Pause    time.Duration
	Client   *http.Client
}

func (u *Uploader) Run(ctx context.Context, chunks []export.Chunk) *Result {
	client := u.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	pause := u.Pause
	if pause < 0 {
		pause = 0
	}

	res := &Result{}
	for i, c := range chunks {
		if i > 0 && pause > 0 {
			time.Sleep(pause)
		}
		resp, err := u.send(ctx, client, c)
		if err != nil {
			log.Printf("Warning: chunk %d upload failed: %v (continuing...)", c.Index, err)
			res.ChunksFailed++
			res.FailedIndexes = append(res.FailedIndexes, c.Index)
			continue
		}
		res.ChunksSent++
		res.Statements += resp.ExecutedStatementCount
		res.RowsInserted += resp.TotalRowsInserted
		res.RemoteErrors += resp.ErrorCount
		log.Printf("Chunk %d/%d: %d statements, %d rows inserted",
			c.Index, len(chunks), resp.ExecutedStatementCount, resp.TotalRowsInserted)
	}
	return res
}

func (u *Uploader) send(ctx context.Context, client *http.Client, c export.Chunk) (*Response, error) {
	body, err := json.Marshal(Request{
		AuthorizationKey: u.Key,
		SQLText:          c.SQL,
		ChunkIndex:       c.Index,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 256))
		return nil, fmt.Errorf("endpoint returned %s: %s", httpResp.Status, bytes.TrimSpace(snippet))
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to parse endpoint response: %w", err)
	}
	return &resp, nil
}
