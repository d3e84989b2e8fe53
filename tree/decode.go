package tree

import (
	"encoding/json"
	"fmt"
	"io"
)

// dumpNode is the JSON shape an external parser process writes for one
// syntax node. Offsets are bytes into the source the parser consumed.
type dumpNode struct {
	Kind     string     `json:"kind"`
	Field    string     `json:"field,omitempty"`
	Start    int        `json:"start"`
	End      int        `json:"end"`
	Children []dumpNode `json:"children,omitempty"`
}

// DecodeJSON reads a parse-tree dump and rebuilds it as an in-memory tree.
// Structural invariants are checked while decoding: a child span must be
// contained in its parent's, sibling start offsets must be non-decreasing,
// and sibling spans must not overlap. A dump that violates them is rejected.
func DecodeJSON(r io.Reader) (*Raw, error) {
	var root dumpNode
	dec := json.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding tree dump: %w", err)
	}
	return buildDump(root, nil)
}

// EncodeJSON writes the dump representation of a tree, the inverse of
// DecodeJSON. Used by tests and by hosts that cache parse results.
func EncodeJSON(w io.Writer, root *Raw) error {
	enc := json.NewEncoder(w)
	return enc.Encode(toDump(root))
}

func buildDump(d dumpNode, parent *dumpNode) (*Raw, error) {
	if d.Kind == "" {
		return nil, fmt.Errorf("tree dump: node at offset %d has no kind", d.Start)
	}
	if d.End < d.Start {
		return nil, fmt.Errorf("tree dump: node %q has inverted span [%d,%d)", d.Kind, d.Start, d.End)
	}
	if parent != nil && (d.Start < parent.Start || d.End > parent.End) {
		return nil, fmt.Errorf("tree dump: node %q [%d,%d) escapes parent %q [%d,%d)",
			d.Kind, d.Start, d.End, parent.Kind, parent.Start, parent.End)
	}

	children := make([]*Raw, 0, len(d.Children))
	prevStart := d.Start
	prevEnd := d.Start
	for i := range d.Children {
		c := d.Children[i]
		if c.Start < prevStart {
			return nil, fmt.Errorf("tree dump: children of %q are out of order at offset %d", d.Kind, c.Start)
		}
		if c.Start < prevEnd {
			return nil, fmt.Errorf("tree dump: children of %q overlap at offset %d", d.Kind, c.Start)
		}
		prevStart = c.Start
		prevEnd = c.End

		built, err := buildDump(c, &d)
		if err != nil {
			return nil, err
		}
		if c.Field != "" {
			built = Fielded(c.Field, built)
		}
		children = append(children, built)
	}

	return New(d.Kind, d.Start, d.End, children...), nil
}

func toDump(n *Raw) dumpNode {
	d := dumpNode{
		Kind:  n.kind,
		Field: n.field,
		Start: n.span.Start,
		End:   n.span.End,
	}
	for _, c := range n.children {
		d.Children = append(d.Children, toDump(c))
	}
	return d
}
