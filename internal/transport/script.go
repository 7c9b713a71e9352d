package transport

import (
	"context"

	"github.com/abenherik/nba-milestones-sub001/internal/export"
	"github.com/abenherik/nba-milestones-sub001/internal/schema"
)

// DefaultInsertBatch is the row count per INSERT statement in exported
// scripts. Deliberately independent of the per-table migration chunk size.
const DefaultInsertBatch = 100

// Script serializes the migration into DELETE+INSERT statement text
// instead of writing to a live destination.
type Script struct {
	Builder     *export.Builder
	InsertBatch int
}

func NewScript(b *export.Builder, insertBatch int) *Script {
	if insertBatch <= 0 {
		insertBatch = DefaultInsertBatch
	}
	return &Script{Builder: b, InsertBatch: insertBatch}
}

func (s *Script) Clear(ctx context.Context, t *schema.Table) error {
	s.Builder.Add(export.DeleteStatement(t.Name))
	return nil
}

func (s *Script) ApplyRows(ctx context.Context, t *schema.Table, rows []schema.Row) error {
	for start := 0; start < len(rows); start += s.InsertBatch {
		end := start + s.InsertBatch
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		s.Builder.AddRows(export.InsertStatement(t.Name, t.Columns, batch), len(batch))
	}
	return nil
}

func (s *Script) Close() error { return nil }
