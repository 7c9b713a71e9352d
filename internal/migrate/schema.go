package migrate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/abenherik/nba-milestones-sub001/internal/source"
)

// Execer executes one raw SQL statement against the destination.
type Execer interface {
	Exec(ctx context.Context, stmt string) error
}

// ReplaySchema executes the source table-creation statements verbatim on
// the destination. Duplicate-table failures are expected on re-runs and
// swallowed. Other DDL failures are logged and counted as soft errors so
// the run keeps moving, unless strict mode makes them fatal up front.
func ReplaySchema(ctx context.Context, ddl []source.TableDDL, dest Execer, strict bool, stats *Stats) error {
	for _, d := range ddl {
		err := dest.Exec(ctx, d.CreateSQL)
		if err == nil {
			log.Printf("Created table %s", d.Name)
			continue
		}
		if isDuplicateTable(err) {
			log.Printf("Table %s already exists, skipping", d.Name)
			continue
		}
		if strict {
			return fmt.Errorf("schema replay failed for %s: %w", d.Name, err)
		}
		log.Printf("Warning: failed to create %s: %v (continuing...)", d.Name, err)
		stats.Errors++
	}
	return nil
}

func isDuplicateTable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate")
}
