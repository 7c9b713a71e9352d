package source

import (
	"context"
	"fmt"

	"github.com/abenherik/nba-milestones-sub001/internal/schema"
)

// PageCall records one Page invocation for assertions on pagination.
type PageCall struct {
	Table  string
	Limit  int64
	Offset int64
}

// Mock is an in-memory Reader for tests.
type Mock struct {
	Rows      map[string][]schema.Row
	DDL       []TableDDL
	PageCalls []PageCall

	// CountOverride, when set for a table, is returned instead of the
	// actual row count (simulates pagination drift).
	CountOverride map[string]int64
}

func NewMock() *Mock {
	return &Mock{Rows: make(map[string][]schema.Row)}
}

func (m *Mock) Count(ctx context.Context, table string) (int64, error) {
	if n, ok := m.CountOverride[table]; ok {
		return n, nil
	}
	rows, ok := m.Rows[table]
	if !ok {
		return 0, fmt.Errorf("unknown table %s", table)
	}
	return int64(len(rows)), nil
}

func (m *Mock) Page(ctx context.Context, t *schema.Table, limit, offset int64) ([]schema.Row, error) {
	m.PageCalls = append(m.PageCalls, PageCall{Table: t.Name, Limit: limit, Offset: offset})
	rows, ok := m.Rows[t.Name]
	if !ok {
		return nil, fmt.Errorf("unknown table %s", t.Name)
	}
	if offset >= int64(len(rows)) {
		return nil, nil
	}
	end := offset + limit
	if end > int64(len(rows)) {
		end = int64(len(rows))
	}
	page := make([]schema.Row, end-offset)
	copy(page, rows[offset:end])
	return page, nil
}

func (m *Mock) ListTableDDL(ctx context.Context) ([]TableDDL, error) {
	return m.DDL, nil
}

func (m *Mock) Close() error { return nil }
