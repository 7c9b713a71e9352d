package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/abenherik/nba-milestones-sub001/internal/dialect"
	"github.com/abenherik/nba-milestones-sub001/internal/schema"
)

// SQLite reads the local milestones database file.
type SQLite struct {
	db *sql.DB
}

// Open opens a local SQLite database. The driver must be registered by the
// caller (main.go blank-imports modernc.org/sqlite).
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to source db: %w", err)
	}
	return &SQLite{db: db}, nil
}

// NewSQLite wraps an already-open handle (used by tests and the seeder).
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", quote(table))
	if err := s.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// Page reads one ordered page of the declared columns. Pagination is stable
// as long as the source is not mutated during the run.
func (s *SQLite) Page(ctx context.Context, t *schema.Table, limit, offset int64) ([]schema.Row, error) {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quote(c)
	}
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT ? OFFSET ?",
		strings.Join(cols, ", "), quote(t.Name), t.OrderBy)

	rows, err := s.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to read page of %s at offset %d: %w", t.Name, offset, err)
	}
	defer rows.Close()

	var page []schema.Row
	for rows.Next() {
		row := make(schema.Row, len(t.Columns))
		ptrs := make([]any, len(row))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", t.Name, err)
		}
		page = append(page, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", t.Name, err)
	}
	return page, nil
}

// ListTableDDL returns the creation statements of all user tables, in
// creation order, skipping sqlite internals.
func (s *SQLite) ListTableDDL(ctx context.Context) ([]TableDDL, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, sql FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND sql IS NOT NULL
		 ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to read source catalog: %w", err)
	}
	defer rows.Close()

	var ddl []TableDDL
	for rows.Next() {
		var d TableDDL
		if err := rows.Scan(&d.Name, &d.CreateSQL); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		ddl = append(ddl, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog: %w", err)
	}
	return ddl, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func quote(name string) string {
	return (&dialect.SQLiteDialect{}).QuoteIdent(name)
}
