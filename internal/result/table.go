// Package result holds query results as ordered tables and compares them
// the way the test harness needs: exact on shape and order, lenient on
// numeric representation.
package result

import (
	"database/sql"
	"fmt"
)

// Table is an ordered, column-labelled result set.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Column pairs a column name with its ordered values.
type Column struct {
	Name   string
	Values []any
}

// FromColumns builds a Table from column-major data. All columns must have
// the same length.
func FromColumns(cols ...Column) (*Table, error) {
	t := &Table{Columns: make([]string, len(cols))}
	if len(cols) == 0 {
		return t, nil
	}

	n := len(cols[0].Values)
	for i, c := range cols {
		if len(c.Values) != n {
			return nil, fmt.Errorf("column %q has %d values, expected %d", c.Name, len(c.Values), n)
		}
		t.Columns[i] = c.Name
	}

	t.Rows = make([][]any, n)
	for r := 0; r < n; r++ {
		row := make([]any, len(cols))
		for c := range cols {
			row[c] = cols[c].Values[r]
		}
		t.Rows[r] = row
	}
	return t, nil
}

// FromRows drains rows into a Table. The caller still owns rows and must
// close them.
func FromRows(rows *sql.Rows) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			// Drivers may reuse byte buffers between rows.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		t.Rows = append(t.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
