package schema

import (
	"fmt"
	"strings"
)

// Order returns the tables in dependency order: every table appears after
// all tables it depends on. The sort is deterministic (ready tables keep
// their declaration order). A dependency on an unknown table or a cycle is
// a configuration error.
func Order(tables []*Table) ([]*Table, error) {
	if err := Validate(tables); err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.Name] = true
	}
	for _, t := range tables {
		for _, dep := range t.DependsOn {
			if !known[dep] {
				return nil, fmt.Errorf("table %s depends on unknown table %s", t.Name, dep)
			}
			if dep == t.Name {
				return nil, fmt.Errorf("table %s depends on itself", t.Name)
			}
		}
	}

	sorted := make([]*Table, 0, len(tables))
	done := make(map[string]bool, len(tables))

	for len(sorted) < len(tables) {
		progressed := false
		for _, t := range tables {
			if done[t.Name] {
				continue
			}
			ready := true
			for _, dep := range t.DependsOn {
				if !done[dep] {
					ready = false
					break
				}
			}
			if ready {
				sorted = append(sorted, t)
				done[t.Name] = true
				progressed = true
			}
		}
		if !progressed {
			var stuck []string
			for _, t := range tables {
				if !done[t.Name] {
					stuck = append(stuck, t.Name)
				}
			}
			return nil, fmt.Errorf("dependency cycle among tables: %s", strings.Join(stuck, ", "))
		}
	}

	return sorted, nil
}
