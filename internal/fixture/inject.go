package fixture

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	withKeyword      = "WITH"
	recursiveKeyword = "RECURSIVE"
)

// MissingWithError is returned when a query does not open with a WITH
// clause, so there is nowhere to splice a fixture.
type MissingWithError struct {
	Prefix string // first characters of the offending query
}

func (e *MissingWithError) Error() string {
	return fmt.Sprintf("cannot inject fixture: query must start with WITH, got %q", e.Prefix)
}

// withAnchor returns the byte offset just past the leading WITH keyword,
// or past WITH RECURSIVE, which also admits non-recursive entries in its
// list. Only the leading keywords are considered; later occurrences of the
// word, including inside string literals of earlier fixtures, are never
// examined.
func withAnchor(sql string) (int, error) {
	lead := len(sql) - len(strings.TrimLeftFunc(sql, unicode.IsSpace))
	rest := sql[lead:]

	at, ok := keywordEnd(rest, withKeyword)
	if !ok {
		return 0, &MissingWithError{Prefix: prefix(rest)}
	}

	after := rest[at:]
	gap := len(after) - len(strings.TrimLeftFunc(after, unicode.IsSpace))
	if n, ok := keywordEnd(after[gap:], recursiveKeyword); ok {
		at += gap + n
	}

	return lead + at, nil
}

// keywordEnd reports whether s opens with kw (case-insensitive) as a whole
// word and returns the offset just past it.
func keywordEnd(s, kw string) (int, bool) {
	if len(s) < len(kw) || !strings.EqualFold(s[:len(kw)], kw) {
		return 0, false
	}
	if rest := s[len(kw):]; rest != "" {
		r, _ := utf8.DecodeRuneInString(rest)
		if !unicode.IsSpace(r) {
			return 0, false
		}
	}
	return len(kw), true
}

func prefix(s string) string {
	const n = 20
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Inject inserts cte directly after the query's leading WITH keyword,
// followed by the comma that joins it to the existing clause list. The
// rest of the query is preserved unchanged.
func Inject(sql, cte string) (string, error) {
	at, err := withAnchor(sql)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(sql) + len(cte) + 8)
	sb.WriteString(sql[:at])
	sb.WriteString("\n")
	sb.WriteString(cte)
	sb.WriteString(",")
	sb.WriteString(sql[at:])
	return sb.String(), nil
}

// InjectAll injects every cte, re-deriving the split point on each pass.
// The fragments end up in the given order ahead of the original clauses.
func InjectAll(sql string, ctes ...string) (string, error) {
	out := sql
	for i := len(ctes) - 1; i >= 0; i-- {
		var err error
		if out, err = Inject(out, ctes[i]); err != nil {
			return "", err
		}
	}
	return out, nil
}
