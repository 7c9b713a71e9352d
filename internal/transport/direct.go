package transport

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abenherik/nba-milestones-sub001/internal/dialect"
	"github.com/abenherik/nba-milestones-sub001/internal/schema"
)

// Direct writes batches straight to a destination database. Each page
// becomes one parameterized multi-row INSERT inside one transaction, with
// bounded retry; exhausting the retry budget is fatal to the run.
type Direct struct {
	DB      *sql.DB
	Dialect dialect.Dialect

	Attempts int           // total attempts per batch, default DefaultAttempts
	Backoff  time.Duration // base delay, attempt n waits n×Backoff, default 1s
}

// OpenDirect connects to the destination. An empty driver is auto-detected
// from the URL (libsql, postgres, mysql, sqlserver, oracle, sqlite).
func OpenDirect(dsn, driver string) (*Direct, error) {
	if driver == "" {
		driver = dialect.DetectDriver(dsn)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open destination db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to destination db: %w", err)
	}
	return NewDirect(db, driver), nil
}

// NewDirect wraps an already-open destination handle.
func NewDirect(db *sql.DB, driver string) *Direct {
	return &Direct{
		DB:       db,
		Dialect:  dialect.GetDialect(driver),
		Attempts: DefaultAttempts,
		Backoff:  time.Second,
	}
}

// Exec runs one raw statement (DDL replay, endpoint-side execution).
func (d *Direct) Exec(ctx context.Context, stmt string) error {
	_, err := d.DB.ExecContext(ctx, stmt)
	return err
}

func (d *Direct) Clear(ctx context.Context, t *schema.Table) error {
	if _, err := d.DB.ExecContext(ctx, d.Dialect.ClearQuery(t.Name)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", t.Name, err)
	}
	return nil
}

func (d *Direct) ApplyRows(ctx context.Context, t *schema.Table, rows []schema.Row) error {
	if len(rows) == 0 {
		return nil
	}
	// One statement per page when the backend allows it; otherwise split
	// into statements that fit the dialect's bind parameter budget, still
	// inside one transaction so the page stays all-or-nothing.
	maxRows := d.Dialect.MaxRowsPerInsert(len(t.Columns))
	if maxRows < 1 {
		maxRows = 1
	}

	attempts := d.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	backoff := d.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	err := withRetry(attempts, backoff, func() error {
		tx, err := d.DB.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		for start := 0; start < len(rows); start += maxRows {
			end := start + maxRows
			if end > len(rows) {
				end = len(rows)
			}
			batch := rows[start:end]
			query := d.Dialect.InsertQuery(t.Name, t.Columns, len(batch))
			args := make([]any, 0, len(batch)*len(t.Columns))
			for _, row := range batch {
				args = append(args, row...)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("batch write to %s failed after %d attempts: %w", t.Name, attempts, err)
	}
	return nil
}

func (d *Direct) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", d.Dialect.QuoteIdent(table))
	if err := d.DB.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count destination %s: %w", table, err)
	}
	return n, nil
}

func (d *Direct) Close() error {
	return d.DB.Close()
}
