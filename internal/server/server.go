package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBody bounds one request body. It must cover the exporter's
// chunk byte budget plus the JSON envelope; raise both together.
const DefaultMaxBody = 1 << 20

// Server is the SQL execution endpoint the chunk uploader targets: it
// accepts a block of statements, runs them against its database, and
// reports execution counts. Meant for self-hosting the upload target.
type Server struct {
	DB      *sql.DB
	Key     string
	MaxBody int64 // request body cap in bytes, default DefaultMaxBody
}

func New(db *sql.DB, key string) *Server {
	return &Server{DB: db, Key: key}
}

// Router builds the HTTP surface: a single execute route.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/v1/execute", s.handleExecute)
	return r
}

type executeRequest struct {
	AuthorizationKey string `json:"authorizationKey"`
	SQLText          string `json:"sqlText"`
	ChunkIndex       int    `json:"chunkIndex"`
}

type executeResponse struct {
	ExecutedStatementCount int `json:"executedStatementCount"`
	TotalRowsInserted      int `json:"totalRowsInserted"`
	ErrorCount             int `json:"errorCount"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	maxBody := s.MaxBody
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if s.Key == "" || req.AuthorizationKey != s.Key {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var resp executeResponse
	for _, stmt := range SplitStatements(req.SQLText) {
		res, err := s.DB.ExecContext(r.Context(), stmt)
		if err != nil {
			log.Printf("Warning: chunk %d statement failed: %v", req.ChunkIndex, err)
			resp.ErrorCount++
			continue
		}
		resp.ExecutedStatementCount++
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(stmt)), "INSERT") {
			if n, err := res.RowsAffected(); err == nil {
				resp.TotalRowsInserted += int(n)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SplitStatements cuts a script on semicolons, respecting single-quoted
// strings and double-quoted identifiers so literals containing ';' stay
// intact. Empty fragments are dropped.
func SplitStatements(script string) []string {
	var stmts []string
	var cur strings.Builder
	inString := false
	inIdent := false

	for _, r := range script {
		switch {
		case r == '\'' && !inIdent:
			inString = !inString
			cur.WriteRune(r)
		case r == '"' && !inString:
			inIdent = !inIdent
			cur.WriteRune(r)
		case r == ';' && !inString && !inIdent:
			if stmt := strings.TrimSpace(cur.String()); stmt != "" {
				stmts = append(stmts, stmt)
			}
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if stmt := strings.TrimSpace(cur.String()); stmt != "" {
		stmts = append(stmts, stmt)
	}
	return stmts
}
