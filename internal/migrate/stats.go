package migrate

import (
	"fmt"
	"time"
)

// Stats accumulates progress across a whole run and is printed once at
// the end. Soft errors (DDL replay failures, verification mismatches) are
// counted here; hard failures abort the run instead.
type Stats struct {
	TablesProcessed int
	TablesSkipped   int
	TotalRecords    int64
	Errors          int
	StartedAt       time.Time
}

func NewStats() *Stats {
	return &Stats{StartedAt: time.Now()}
}

// Summary renders the end-of-run report. A completed run with Errors > 0
// is "completed with soft errors", distinct from a hard failure (which
// surfaces as a returned error and a non-zero exit).
func (s *Stats) Summary() string {
	elapsed := time.Since(s.StartedAt).Minutes()
	status := "completed"
	if s.Errors > 0 {
		status = fmt.Sprintf("completed with %d soft error(s)", s.Errors)
	}
	return fmt.Sprintf(
		"Tables migrated : %d (%d skipped empty)\n"+
			"Total records   : %d\n"+
			"Status          : %s\n"+
			"Elapsed         : %.1f minutes",
		s.TablesProcessed, s.TablesSkipped, s.TotalRecords, status, elapsed)
}
