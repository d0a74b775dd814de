// Package fixture builds inline VALUES tables and splices them into the
// WITH clause of a rendered query.
package fixture

import (
	"fmt"
	"strings"
)

// Fixture is a literal table used in place of a real one in test mode.
// Rows hold raw SQL row tuples such as "(1, 'US')"; they are not parsed,
// so malformed literals only surface when the query executes.
type Fixture struct {
	Columns []string `yaml:"columns"`
	Rows    []string `yaml:"rows"`
}

// EmptyFixtureError is returned when a fixture has no columns or no rows.
type EmptyFixtureError struct {
	Name string
}

func (e *EmptyFixtureError) Error() string {
	return fmt.Sprintf("fixture %q needs at least one column and one row", e.Name)
}

// Build renders f as a common table expression named name:
//
//	name AS (
//	    SELECT * FROM (
//	        VALUES
//	(1, 'US'),
//	(2, 'CA')
//	    ) AS t (id,country)
//	)
//
// Column N of f corresponds to value N of every row tuple.
func Build(name string, f Fixture) (string, error) {
	if len(f.Columns) == 0 || len(f.Rows) == 0 {
		return "", &EmptyFixtureError{Name: name}
	}

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(" AS (\n    SELECT * FROM (\n        VALUES\n")
	sb.WriteString(strings.Join(f.Rows, ",\n"))
	sb.WriteString("\n    ) AS t (")
	sb.WriteString(strings.Join(f.Columns, ","))
	sb.WriteString(")\n)")
	return sb.String(), nil
}
