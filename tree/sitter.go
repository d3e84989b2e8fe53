//go:build cgo

package tree

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/awklab/treelight/internal/types"
)

// FromSitter wraps a go-tree-sitter node in the adapter contract, letting a
// host that embeds a tree-sitter grammar feed parse trees straight into the
// engine. The grammar and the parse itself stay on the host's side.
func FromSitter(n *sitter.Node) Node {
	if n == nil {
		return nil
	}
	return sitterNode{n}
}

type sitterNode struct {
	n *sitter.Node
}

func (s sitterNode) Kind() string { return s.n.Type() }

func (s sitterNode) Span() types.Span {
	return types.NewSpan(int(s.n.StartByte()), int(s.n.EndByte()))
}

func (s sitterNode) Parent() Node {
	return FromSitter(s.n.Parent())
}

func (s sitterNode) ChildCount() int {
	return int(s.n.ChildCount())
}

func (s sitterNode) Child(i int) Node {
	return FromSitter(s.n.Child(i))
}

func (s sitterNode) Field(name string) Node {
	return FromSitter(s.n.ChildByFieldName(name))
}

func (s sitterNode) IsError() bool {
	return s.n.Type() == ErrorKind
}
