// Package template parses SQL templates containing {{ name }} table
// placeholders and substitutes concrete table names into them.
//
// Placeholders are bare identifiers; there are no expressions, filters or
// control statements.
package template

// Position tracks source location for error reporting.
type Position struct {
	File   string
	Line   int
	Column int
}

// Node is the interface for all template AST nodes.
type Node interface {
	Pos() Position
	node() // marker method to restrict implementation
}

// nodeBase provides common Position handling for all nodes.
type nodeBase struct {
	pos Position
}

func (n *nodeBase) Pos() Position { return n.pos }
func (n *nodeBase) node()         {}

// TextNode represents literal SQL text (passed through unchanged).
type TextNode struct {
	nodeBase
	Text string
}

// RefNode represents a {{ name }} logical table reference.
type RefNode struct {
	nodeBase
	Name string
}

// Template represents a complete parsed template.
type Template struct {
	Nodes []Node
	File  string // Source file path or suite name
}
