package dialect

import "fmt"

type OracleDialect struct{}

func (d *OracleDialect) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) QuoteIdent(name string) string {
	return quoteDouble(name)
}

func (d *OracleDialect) InsertQuery(table string, cols []string, rowCount int) string {
	return buildInsert(d, table, cols, rowCount)
}

// Multi-row VALUES lists only parse on Oracle 23ai and later; one row
// per statement keeps 19c/21c working (ORA-00933 otherwise).
func (d *OracleDialect) MaxRowsPerInsert(cols int) int {
	return 1
}

func (d *OracleDialect) ClearQuery(table string) string {
	return deleteAll(d, table)
}
