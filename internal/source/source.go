package source

import (
	"context"

	"github.com/abenherik/nba-milestones-sub001/internal/schema"
)

// TableDDL is one user table's creation statement from the source catalog.
type TableDDL struct {
	Name      string
	CreateSQL string
}

// Reader is the read side of a migration: row counts, stable ordered pages,
// and the table-creation statements to replay on the destination.
type Reader interface {
	Count(ctx context.Context, table string) (int64, error)
	Page(ctx context.Context, t *schema.Table, limit, offset int64) ([]schema.Row, error)
	ListTableDDL(ctx context.Context) ([]TableDDL, error)
	Close() error
}
