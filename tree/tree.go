// Package tree provides read-only navigation over a concrete syntax tree
// produced by an external parser. The engine never mutates a tree; a tree is
// an immutable snapshot for the lifetime of every query run against it.
package tree

import (
	"strings"

	"github.com/awklab/treelight/internal/types"
)

// ErrorKind is the node kind the external parser assigns to unparsable
// spans. Error nodes are ordinary nodes: navigable and matchable like any
// other.
const ErrorKind = "ERROR"

// Node is the adapter contract over one syntax node. Implementations must
// be cheap to copy and safe for concurrent reads.
type Node interface {
	// Kind returns the grammar's type tag for this node.
	Kind() string

	// Span returns the half-open byte range covered by this node.
	Span() types.Span

	// Parent returns the parent node, or nil for the root.
	Parent() Node

	ChildCount() int
	Child(i int) Node

	// Field returns the child occupying the named field, or nil when the
	// node has no such field. Absence is not an error.
	Field(name string) Node

	// IsError reports whether this node covers an unparsable span.
	IsError() bool
}

// Text slices the source buffer covered by n, clamped to the buffer bounds.
func Text(n Node, src []byte) string {
	if n == nil {
		return ""
	}
	sp := n.Span()
	start, end := sp.Start, sp.End
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	return string(src[start:end])
}

// Same reports whether two nodes denote the same syntax node. Adapters may
// hand out distinct wrapper values for one underlying node, so identity is
// kind plus span rather than pointer equality.
func Same(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && a.Span() == b.Span()
}

// Walk visits n and its descendants depth-first, pre-order. The visit
// function returns false to skip a node's children.
func Walk(n Node, visit func(Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		Walk(n.Child(i), visit)
	}
}

// Descendant returns the deepest node whose span contains pos, or nil when
// pos falls outside the root's span.
func Descendant(root Node, pos int) Node {
	if root == nil || !root.Span().Contains(pos) {
		return nil
	}
	n := root
descend:
	for {
		for i := 0; i < n.ChildCount(); i++ {
			c := n.Child(i)
			if c.Span().Contains(pos) {
				n = c
				continue descend
			}
		}
		return n
	}
}

// Raw is an in-memory node, used for trees decoded from an external
// parser's dump and throughout the tests.
type Raw struct {
	kind     string
	span     types.Span
	field    string
	parent   *Raw
	children []*Raw
}

// New builds an in-memory node over [start, end) with the given children.
// Children are linked back to the new node as their parent.
func New(kind string, start, end int, children ...*Raw) *Raw {
	n := &Raw{
		kind:     kind,
		span:     types.NewSpan(start, end),
		children: children,
	}
	for _, c := range children {
		c.parent = n
	}
	return n
}

// Fielded marks n as occupying the named field of its future parent and
// returns n, so tree construction stays a single expression.
func Fielded(name string, n *Raw) *Raw {
	n.field = name
	return n
}

func (n *Raw) Kind() string     { return n.kind }
func (n *Raw) Span() types.Span { return n.span }
func (n *Raw) ChildCount() int  { return len(n.children) }

func (n *Raw) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Raw) Child(i int) Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Raw) Field(name string) Node {
	for _, c := range n.children {
		if c.field == name {
			return c
		}
	}
	return nil
}

func (n *Raw) FieldName() string { return n.field }

func (n *Raw) IsError() bool { return n.kind == ErrorKind }

func (n *Raw) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Raw) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.field != "" {
		b.WriteString(n.field)
		b.WriteString(": ")
	}
	b.WriteString(n.kind)
	b.WriteString(n.span.String())
	b.WriteByte('\n')
	for _, c := range n.children {
		c.write(b, depth+1)
	}
}
