package dialect

// SQLiteDialect covers both local SQLite files and hosted libsql
// databases; the wire SQL is identical.
type SQLiteDialect struct{}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}

func (d *SQLiteDialect) QuoteIdent(name string) string {
	return quoteDouble(name)
}

func (d *SQLiteDialect) InsertQuery(table string, cols []string, rowCount int) string {
	return buildInsert(d, table, cols, rowCount)
}

// SQLITE_MAX_VARIABLE_NUMBER defaults to 32766 on current builds.
func (d *SQLiteDialect) MaxRowsPerInsert(cols int) int {
	return rowsWithinParams(32766, cols)
}

func (d *SQLiteDialect) ClearQuery(table string) string {
	return deleteAll(d, table)
}
