package dialect

import (
	"fmt"
	"strings"
)

// buildInsert assembles a multi-row INSERT using the dialect's quoting and
// placeholder functions. Placeholder indexes run row-major across the whole
// statement.
func buildInsert(d Dialect, table string, cols []string, rowCount int) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", d.QuoteIdent(table), strings.Join(quoted, ", "))

	idx := 0
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := range cols {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.Placeholder(idx))
			idx++
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// rowsWithinParams caps the rows of one statement by a bind parameter
// budget, never below one row.
func rowsWithinParams(maxParams, cols int) int {
	if cols <= 0 {
		return 1
	}
	rows := maxParams / cols
	if rows < 1 {
		rows = 1
	}
	return rows
}

func deleteAll(d Dialect, table string) string {
	return fmt.Sprintf("DELETE FROM %s", d.QuoteIdent(table))
}

func quoteDouble(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
