package dialect

import (
	"fmt"
	"strings"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string, rowCount int) string {
	return buildInsert(d, table, cols, rowCount)
}

// SQL Server rejects requests binding more than 2100 parameters; stay
// under that with headroom for the driver's own bookkeeping.
func (d *MSSQLDialect) MaxRowsPerInsert(cols int) int {
	return rowsWithinParams(2000, cols)
}

// DELETE rather than TRUNCATE: the tables carry foreign keys.
func (d *MSSQLDialect) ClearQuery(table string) string {
	return deleteAll(d, table)
}
