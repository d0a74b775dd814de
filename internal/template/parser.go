package template

import (
	"strings"
	"unicode"
)

// Parse tokenizes input and builds a Template.
// Every placeholder must be a bare identifier such as {{ users }}.
func Parse(input, file string) (*Template, error) {
	tokens, err := NewLexer(input, file).Tokenize()
	if err != nil {
		return nil, err
	}

	tmpl := &Template{File: file}
	for _, tok := range tokens {
		switch tok.Type {
		case TokenText:
			tmpl.Nodes = append(tmpl.Nodes, &TextNode{nodeBase: nodeBase{pos: tok.Pos}, Text: tok.Value})
		case TokenExpr:
			if !isIdentifier(tok.Value) {
				return nil, NewParseErrorf(tok.Pos, "placeholder %q is not a table reference identifier", tok.Value)
			}
			tmpl.Nodes = append(tmpl.Nodes, &RefNode{nodeBase: nodeBase{pos: tok.Pos}, Name: tok.Value})
		case TokenEOF:
		}
	}

	return tmpl, nil
}

// MustParse is like Parse but panics on error. Intended for templates
// compiled into the binary.
func MustParse(input, file string) *Template {
	tmpl, err := Parse(input, file)
	if err != nil {
		panic(err)
	}
	return tmpl
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// References returns the distinct logical table references in order of
// first appearance.
func (t *Template) References() []string {
	seen := make(map[string]bool)
	var refs []string
	for _, n := range t.Nodes {
		ref, ok := n.(*RefNode)
		if !ok || seen[ref.Name] {
			continue
		}
		seen[ref.Name] = true
		refs = append(refs, ref.Name)
	}
	return refs
}

// Bindings maps a logical table reference to its concrete name.
type Bindings map[string]string

// Render substitutes every reference with its binding.
// A reference without a binding fails with *UnknownReferenceError.
func (t *Template) Render(b Bindings) (string, error) {
	var sb strings.Builder
	for _, n := range t.Nodes {
		switch n := n.(type) {
		case *TextNode:
			sb.WriteString(n.Text)
		case *RefNode:
			name, ok := b[n.Name]
			if !ok {
				return "", NewUnknownReferenceError(n.Pos(), n.Name)
			}
			sb.WriteString(name)
		}
	}
	return sb.String(), nil
}
