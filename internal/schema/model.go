package schema

import (
	"fmt"
	"strings"
)

// Table describes one migrated table: its declared column order, the
// ordering used for stable pagination, the page size for batch writes,
// and the tables that must be populated before it.
type Table struct {
	Name      string   `mapstructure:"name"`
	Columns   []string `mapstructure:"columns"`
	OrderBy   string   `mapstructure:"order_by"`
	ChunkSize int      `mapstructure:"chunk_size"`
	DependsOn []string `mapstructure:"depends_on"`
}

// Row is one source row, positionally aligned with Table.Columns.
type Row []any

func (t *Table) validate() error {
	if t.Name == "" {
		return fmt.Errorf("table with empty name")
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %s: no columns declared", t.Name)
	}
	if strings.TrimSpace(t.OrderBy) == "" {
		return fmt.Errorf("table %s: no order_by declared", t.Name)
	}
	if t.ChunkSize <= 0 {
		return fmt.Errorf("table %s: chunk_size must be positive (got %d)", t.Name, t.ChunkSize)
	}
	return nil
}

// Validate checks every descriptor and rejects duplicate names.
func Validate(tables []*Table) error {
	seen := make(map[string]bool)
	for _, t := range tables {
		if err := t.validate(); err != nil {
			return err
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate table descriptor: %s", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}
