package dialect

// Dialect abstracts the destination-specific SQL the writer needs:
// placeholder style, identifier quoting, the multi-row insert shape and
// the statement used to clear a table before repopulating it.
type Dialect interface {
	// Placeholder returns the bind marker for a zero-based index (?, $1, @p1, :1).
	Placeholder(index int) string

	// QuoteIdent quotes a table or column name.
	QuoteIdent(name string) string

	// InsertQuery builds a parameterized multi-row INSERT for rowCount rows.
	InsertQuery(table string, cols []string, rowCount int) string

	// MaxRowsPerInsert returns the largest row count one InsertQuery may
	// carry for the given column count, bounded by the backend's bind
	// parameter budget. Backends without a multi-row VALUES list return 1.
	MaxRowsPerInsert(cols int) int

	// ClearQuery returns the statement that removes all rows from a table.
	ClearQuery(table string) string
}
