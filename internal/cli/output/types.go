package output

import "github.com/leapstack-labs/sqlfixture/internal/result"

// RenderOutput is the JSON shape of the render command.
type RenderOutput struct {
	Suite      string            `json:"suite"`
	Mode       string            `json:"mode"`
	References []string          `json:"references"`
	Bindings   map[string]string `json:"bindings"`
	SQL        string            `json:"sql"`
}

// TableOutput is a result table in JSON.
type TableOutput struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// RunOutput is the JSON shape of the run command.
type RunOutput struct {
	Suite  string      `json:"suite"`
	Result TableOutput `json:"result"`
}

// TestOutput is the JSON shape of the test command.
type TestOutput struct {
	ID         string       `json:"id"`
	Suite      string       `json:"suite"`
	Passed     bool         `json:"passed"`
	DurationMS int64        `json:"duration_ms"`
	Actual     *TableOutput `json:"actual,omitempty"`
	Expected   *TableOutput `json:"expected,omitempty"`
	Reason     string       `json:"reason,omitempty"`
	Diff       string       `json:"diff,omitempty"`
}

// NewTableOutput converts a result table for JSON encoding.
func NewTableOutput(t *result.Table) *TableOutput {
	if t == nil {
		return nil
	}
	rows := make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]any, len(r))
		for j, v := range r {
			row[j] = result.PlainValue(v)
		}
		rows[i] = row
	}
	return &TableOutput{Columns: t.Columns, Rows: rows}
}

// WriteTable writes t in the style matching mode. JSON callers encode a
// TableOutput instead.
func (r *Renderer) WriteTable(t *result.Table) {
	if r.EffectiveMode() == ModeMarkdown {
		t.Write(r.out, result.FormatMarkdown)
		return
	}
	t.Write(r.out, result.FormatTable)
}
