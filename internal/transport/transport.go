package transport

import (
	"context"

	"github.com/abenherik/nba-milestones-sub001/internal/schema"
)

// Transport is the write side of a migration. The direct implementation
// executes against a destination database; the script implementation
// serializes the same operations into an uploadable statement script.
type Transport interface {
	// Clear removes all destination rows of the table (full-replace step).
	Clear(ctx context.Context, t *schema.Table) error

	// ApplyRows writes one page of rows. All-or-nothing: no partial page
	// ever becomes visible.
	ApplyRows(ctx context.Context, t *schema.Table, rows []schema.Row) error

	Close() error
}

// RowCounter is implemented by transports that can report destination row
// counts; the verifier requires it.
type RowCounter interface {
	Count(ctx context.Context, table string) (int64, error)
}
