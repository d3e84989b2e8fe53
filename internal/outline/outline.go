// Package outline extracts definition nodes into an ordered navigation
// index.
package outline

import (
	"fmt"
	"strings"

	"github.com/awklab/treelight/internal/types"
	"github.com/awklab/treelight/tree"
)

// Entry is one navigable definition, in document order.
type Entry struct {
	Name string     `json:"name"`
	Span types.Span `json:"span"`
}

// Index walks a tree for definition nodes. The defs table maps a
// definition node kind to the field holding its name.
type Index struct {
	defs map[string]string
}

// NewIndex builds an index over the given definition kinds. An empty table
// is a construction error; an index that can never produce entries is a
// misconfigured rule set, not a useful degenerate case.
func NewIndex(defs map[string]string) (*Index, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("outline: no definition kinds declared")
	}
	copied := make(map[string]string, len(defs))
	for kind, field := range defs {
		if kind == "" {
			return nil, fmt.Errorf("outline: empty definition kind")
		}
		copied[kind] = field
	}
	return &Index{defs: copied}, nil
}

// Entries returns the definitions in document order. With
// cfg.PreferTopLevel set, a definition nested under another definition is
// dropped; otherwise definitions at any depth are included.
func (ix *Index) Entries(root tree.Node, src []byte, cfg types.Config) []Entry {
	var out []Entry
	ix.collect(root, src, cfg.PreferTopLevel, false, &out)
	return out
}

func (ix *Index) collect(n tree.Node, src []byte, topOnly, insideDef bool, out *[]Entry) {
	if n == nil {
		return
	}

	field, isDef := ix.defs[n.Kind()]
	if isDef && !(topOnly && insideDef) {
		*out = append(*out, Entry{Name: ix.nameOf(n, field, src), Span: n.Span()})
	}

	for i := 0; i < n.ChildCount(); i++ {
		ix.collect(n.Child(i), src, topOnly, insideDef || isDef, out)
	}
}

// nameOf reads the declared name field; a definition missing it still
// navigates, under the head of its own text.
func (ix *Index) nameOf(n tree.Node, field string, src []byte) string {
	if field != "" {
		if named := n.Field(field); named != nil {
			return tree.Text(named, src)
		}
	}
	head := tree.Text(n, src)
	if i := strings.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	return strings.TrimSpace(head)
}
