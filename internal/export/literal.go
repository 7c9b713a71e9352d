package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abenherik/nba-milestones-sub001/internal/dialect"
	"github.com/abenherik/nba-milestones-sub001/internal/schema"
)

var sqlite dialect.SQLiteDialect

// Literal encodes one scalar as a SQL literal. The script targets the
// hosted sqlite endpoint, so encoding follows sqlite rules.
func Literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []byte:
		return fmt.Sprintf("X'%x'", x)
	case time.Time:
		return quoteString(x.UTC().Format(time.RFC3339))
	case string:
		return quoteString(x)
	default:
		return quoteString(fmt.Sprintf("%v", x))
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// DeleteStatement clears a table; emitted once per exported table before
// its inserts. No trailing semicolon, the builder owns terminators.
func DeleteStatement(table string) string {
	return "DELETE FROM " + sqlite.QuoteIdent(table)
}

// InsertStatement renders one batched multi-row INSERT with literal values.
func InsertStatement(table string, cols []string, rows []schema.Row) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = sqlite.QuoteIdent(c)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ", sqlite.QuoteIdent(table), strings.Join(quoted, ", "))
	for r, row := range rows {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c, v := range row {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Literal(v))
		}
		sb.WriteString(")")
	}
	return sb.String()
}
