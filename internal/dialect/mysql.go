package dialect

import "strings"

type MysqlDialect struct{}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *MysqlDialect) InsertQuery(table string, cols []string, rowCount int) string {
	return buildInsert(d, table, cols, rowCount)
}

// The wire protocol caps one prepared statement at 65535 placeholders.
func (d *MysqlDialect) MaxRowsPerInsert(cols int) int {
	return rowsWithinParams(65535, cols)
}

func (d *MysqlDialect) ClearQuery(table string) string {
	return deleteAll(d, table)
}
