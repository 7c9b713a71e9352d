package migrate

import (
	"context"
	"fmt"
	"log"

	"github.com/abenherik/nba-milestones-sub001/internal/ledger"
	"github.com/abenherik/nba-milestones-sub001/internal/schema"
	"github.com/abenherik/nba-milestones-sub001/internal/source"
	"github.com/abenherik/nba-milestones-sub001/internal/transport"
)

// Hooks let the CLI render progress without the migrator knowing about
// terminals. All hooks are optional.
type Hooks struct {
	OnTableStart func(t *schema.Table, total int64)
	OnPage       func(t *schema.Table, migrated, total int64)
	OnTableDone  func(t *schema.Table, migrated int64)
	OnTableSkip  func(t *schema.Table)
}

// Migrator drives a full-replace migration of every table, one at a time,
// through whichever transport it was given. Tables must already be in
// dependency order.
type Migrator struct {
	Source    source.Reader
	Transport transport.Transport
	Ledger    *ledger.Ledger // optional resume ledger
	Stats     *Stats
	Hooks     Hooks
}

// Run processes the tables strictly sequentially. The first transport
// error aborts the run; tables after the failing one are never touched.
func (m *Migrator) Run(ctx context.Context, tables []*schema.Table) error {
	for _, t := range tables {
		if err := m.migrateTable(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) migrateTable(ctx context.Context, t *schema.Table) error {
	total, err := m.Source.Count(ctx, t.Name)
	if err != nil {
		return fmt.Errorf("failed to count source %s: %w", t.Name, err)
	}
	if total == 0 {
		log.Printf("Table %s is empty, skipping", t.Name)
		m.Stats.TablesSkipped++
		if m.Hooks.OnTableSkip != nil {
			m.Hooks.OnTableSkip(t)
		}
		return nil
	}

	var st *ledger.TableState
	if m.Ledger != nil {
		st = m.Ledger.State(t.Name)
		if st.Done {
			log.Printf("Table %s already migrated in this run, skipping", t.Name)
			m.Stats.TablesProcessed++
			return nil
		}
	}

	// Full-replace: clear once, before the first page. A resumed table
	// that was already cleared continues at its committed offset instead.
	migrated := int64(0)
	if st != nil && st.Cleared {
		migrated = st.Committed
	} else {
		if err := m.Transport.Clear(ctx, t); err != nil {
			return err
		}
		if st != nil {
			if err := m.Ledger.MarkCleared(t.Name); err != nil {
				return err
			}
		}
	}

	if m.Hooks.OnTableStart != nil {
		m.Hooks.OnTableStart(t, total)
	}

	moved := int64(0)
	for migrated < total {
		limit := int64(t.ChunkSize)
		if remaining := total - migrated; remaining < limit {
			limit = remaining
		}
		page, err := m.Source.Page(ctx, t, limit, migrated)
		if err != nil {
			return err
		}
		// Zero rows before the observed total is reached means the
		// source shrank underneath us; stop cleanly rather than spin.
		if len(page) == 0 {
			log.Printf("Warning: %s returned no rows at offset %d (%d/%d migrated)",
				t.Name, migrated, migrated, total)
			break
		}
		if err := m.Transport.ApplyRows(ctx, t, page); err != nil {
			return err
		}
		if st != nil {
			if err := m.Ledger.RecordBatch(t.Name, int64(len(page))); err != nil {
				return err
			}
		}
		migrated += int64(len(page))
		moved += int64(len(page))
		if m.Hooks.OnPage != nil {
			m.Hooks.OnPage(t, migrated, total)
		}
		if int64(len(page)) < limit {
			break
		}
	}

	if st != nil {
		if err := m.Ledger.MarkDone(t.Name); err != nil {
			return err
		}
	}
	m.Stats.TablesProcessed++
	m.Stats.TotalRecords += moved
	if m.Hooks.OnTableDone != nil {
		m.Hooks.OnTableDone(t, migrated)
	}
	return nil
}
