package dialect

import "fmt"

type PostgresDialect struct{}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) QuoteIdent(name string) string {
	return quoteDouble(name)
}

func (d *PostgresDialect) InsertQuery(table string, cols []string, rowCount int) string {
	return buildInsert(d, table, cols, rowCount)
}

// The extended protocol carries parameter counts in an int16: 65535 max.
func (d *PostgresDialect) MaxRowsPerInsert(cols int) int {
	return rowsWithinParams(65535, cols)
}

func (d *PostgresDialect) ClearQuery(table string) string {
	return deleteAll(d, table)
}
