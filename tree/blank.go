package tree

import "github.com/awklab/treelight/internal/types"

// BlankKind is the type tag of the synthetic marker used when an
// indentation request points at a line with no parseable node on it.
const BlankKind = ""

// Blank returns the synthetic no-node marker for a blank line at pos. It
// has an empty kind and zero width, no children, and the nearest enclosing
// syntax node as its parent, so parent-directed patterns still apply.
func Blank(enclosing Node, pos int) Node {
	return blankNode{parent: enclosing, pos: pos}
}

// IsBlank reports whether n is a synthetic blank-line marker.
func IsBlank(n Node) bool {
	_, ok := n.(blankNode)
	return ok
}

type blankNode struct {
	parent Node
	pos    int
}

func (b blankNode) Kind() string      { return BlankKind }
func (b blankNode) Span() types.Span  { return types.NewSpan(b.pos, b.pos) }
func (b blankNode) Parent() Node      { return b.parent }
func (b blankNode) ChildCount() int   { return 0 }
func (b blankNode) Child(int) Node    { return nil }
func (b blankNode) Field(string) Node { return nil }
func (b blankNode) IsError() bool     { return false }
