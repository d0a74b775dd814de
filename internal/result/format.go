package result

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Format selects how a Table is written.
type Format string

// Supported formats.
const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// Write renders t to w in the given format, followed by a row count.
func (t *Table) Write(w io.Writer, format Format) {
	if len(t.Rows) == 0 && format != FormatCSV {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = FormatValue(v)
		}
		tw.AppendRow(row)
	}

	switch format {
	case FormatMarkdown:
		tw.RenderMarkdown()
	case FormatCSV:
		tw.RenderCSV()
		return
	default:
		tw.Render()
	}
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(t.Rows))
}

// FormatValue renders a single cell for display.
func FormatValue(v any) string {
	if isNilPointer(v) {
		return "NULL"
	}

	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case float64er:
		return fmt.Sprintf("%v", x.Float64())
	}
	if f, ok := asFloat(v); ok {
		return fmt.Sprintf("%v", f)
	}
	return fmt.Sprintf("%v", v)
}

// PlainValue converts a cell to a JSON-friendly value: numbers become
// float64 or stay integers, times become RFC 3339 text, and anything else
// without a natural encoding becomes its display string.
func PlainValue(v any) any {
	if isNilPointer(v) {
		return nil
	}

	switch x := v.(type) {
	case nil, string, bool, int, int32, int64, float32, float64:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	}
	if f, ok := asFloat(v); ok {
		return f
	}
	return FormatValue(v)
}
