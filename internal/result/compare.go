package result

import (
	"fmt"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// RelativeTolerance is the relative difference under which two floating
// point cells are considered equal.
const RelativeTolerance = 1e-5

// MismatchError reports that an actual table differs from the expected one.
type MismatchError struct {
	Actual   *Table
	Expected *Table
	Reason   string
	Diff     string
}

func (e *MismatchError) Error() string {
	if e.Diff == "" {
		return "result mismatch: " + e.Reason
	}
	return fmt.Sprintf("result mismatch: %s\n%s", e.Reason, e.Diff)
}

// Compare checks actual against expected. Column names and order, row count
// and row order must match; numeric cells compare by value regardless of
// Go type (int64 vs float64 vs decimal vs numeric text).
func Compare(actual, expected *Table) error {
	if !slices.Equal(actual.Columns, expected.Columns) {
		return &MismatchError{
			Actual:   actual,
			Expected: expected,
			Reason:   "columns differ",
			Diff:     cmp.Diff(expected.Columns, actual.Columns),
		}
	}
	if actual.Len() != expected.Len() {
		return &MismatchError{
			Actual:   actual,
			Expected: expected,
			Reason:   fmt.Sprintf("row count differs: got %d, want %d", actual.Len(), expected.Len()),
		}
	}

	got := make([][]any, actual.Len())
	want := make([][]any, expected.Len())
	for r := range actual.Rows {
		got[r] = make([]any, len(actual.Columns))
		want[r] = make([]any, len(expected.Columns))
		for c := range actual.Columns {
			got[r][c], want[r][c] = normalizePair(actual.Rows[r][c], expected.Rows[r][c])
		}
	}

	opts := cmp.Options{
		cmpopts.EquateApprox(RelativeTolerance, 0),
		cmpopts.EquateNaNs(),
		cmp.Exporter(func(reflect.Type) bool { return true }),
	}
	if !cmp.Equal(want, got, opts) {
		return &MismatchError{
			Actual:   actual,
			Expected: expected,
			Reason:   "values differ (-want +got)",
			Diff:     cmp.Diff(want, got, opts),
		}
	}
	return nil
}

// normalizePair converts both cells to float64 when either is numeric and
// the other can be read as a number, so representation differences vanish.
func normalizePair(a, b any) (any, any) {
	a, b = normalize(a), normalize(b)

	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	_, aText := a.(string)
	_, bText := b.(string)

	switch {
	case aNum && bNum:
		return af, bf
	case aNum && bText:
		if f, err := strconv.ParseFloat(strings.TrimSpace(b.(string)), 64); err == nil {
			return af, f
		}
	case bNum && aText:
		if f, err := strconv.ParseFloat(strings.TrimSpace(a.(string)), 64); err == nil {
			return f, bf
		}
	}
	return a, b
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

type float64er interface {
	Float64() float64
}

// asFloat reports whether v is numeric and returns its float64 value.
// Driver decimal types are recognised through a Float64 method, on either
// the value or a pointer to it.
func asFloat(v any) (float64, bool) {
	if isNilPointer(v) {
		return 0, false
	}

	switch n := v.(type) {
	case nil, string, bool:
		return 0, false
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case *big.Float:
		f, _ := n.Float64()
		return f, true
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	case float64er:
		return n.Float64(), true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return 0, false
	}
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	if f, ok := ptr.Interface().(float64er); ok {
		return f.Float64(), true
	}
	return 0, false
}

// isNilPointer reports whether v is a typed nil pointer, such as a NULL
// decimal scanned into a *big.Float.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
