package result

import (
	"bytes"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTable_Write(t *testing.T) {
	tbl := &Table{
		Columns: []string{"day_of_year", "country"},
		Rows:    [][]any{{int64(1), "US"}, {int64(2), nil}},
	}

	tests := []struct {
		format   Format
		contains []string
	}{
		{FormatTable, []string{"day_of_year", "us", "null", "(2 rows)"}},
		{FormatMarkdown, []string{"| day_of_year | country |", "| 1 | us |", "(2 rows)"}},
		{FormatCSV, []string{"day_of_year,country", "1,us"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			tbl.Write(&buf, tt.format)
			for _, s := range tt.contains {
				assert.Contains(t, strings.ToLower(buf.String()), s)
			}
		})
	}
}

func TestTable_WriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&Table{Columns: []string{"id"}}).Write(&buf, FormatTable)
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2020, 1, 1, 12, 5, 0, 0, time.UTC)

	assert.Equal(t, "NULL", FormatValue(nil))
	assert.Equal(t, "abc", FormatValue([]byte("abc")))
	assert.Equal(t, "2020-01-01T12:05:00Z", FormatValue(ts))
	assert.Equal(t, "25.99", FormatValue(25.99))
	assert.Equal(t, "7", FormatValue(int64(7)))
	assert.Equal(t, "US", FormatValue("US"))
}

func TestPlainValue(t *testing.T) {
	ts := time.Date(2020, 1, 7, 22, 45, 0, 0, time.UTC)
	d := decimal{Scale: 2, Value: big.NewInt(2599)}

	assert.Nil(t, PlainValue(nil))
	assert.Equal(t, "CA", PlainValue("CA"))
	assert.Equal(t, "CA", PlainValue([]byte("CA")))
	assert.Equal(t, int64(7), PlainValue(int64(7)))
	assert.Equal(t, "2020-01-07T22:45:00Z", PlainValue(ts))
	assert.InDelta(t, 25.99, PlainValue(d), 1e-9)
	assert.Equal(t, 3.0, PlainValue(uint16(3)))
}
