package pattern

import (
	"fmt"

	"github.com/awklab/treelight/tree"
)

// Compiled is an immutable, validated matcher. Compilation happens once at
// rule-set construction; evaluation is a pure read and safe to run
// concurrently against the same tree snapshot.
type Compiled struct {
	root  Pattern
	kinds map[string]struct{} // nil when kind-agnostic
}

// Compile validates a pattern and prepares it for evaluation. A structurally
// invalid pattern is rejected here, never at query time.
func Compile(p Pattern) (*Compiled, error) {
	if p == nil {
		return nil, fmt.Errorf("pattern: nil pattern")
	}
	if err := p.check(); err != nil {
		return nil, err
	}

	c := &Compiled{root: p}
	if ks := p.rootKinds(); ks != nil {
		c.kinds = make(map[string]struct{}, len(ks))
		for _, k := range ks {
			c.kinds[k] = struct{}{}
		}
	}
	return c, nil
}

// MustCompile is Compile for statically declared rule tables, where a
// malformed pattern is a programming error.
func MustCompile(p Pattern) *Compiled {
	c, err := Compile(p)
	if err != nil {
		panic(err)
	}
	return c
}

// Kinds returns the root kind filter, or nil for a kind-agnostic matcher.
func (c *Compiled) Kinds() []string {
	if c.kinds == nil {
		return nil
	}
	ks := make([]string, 0, len(c.kinds))
	for k := range c.kinds {
		ks = append(ks, k)
	}
	return ks
}

// Accepts reports whether a node of the given kind can possibly match. This
// is the cheap pre-filter consulted before any structural evaluation.
func (c *Compiled) Accepts(kind string) bool {
	if c.kinds == nil {
		return true
	}
	_, ok := c.kinds[kind]
	return ok
}

// Match evaluates the pattern anchored at n and returns the captures made
// by Bind sub-patterns, in evaluation order. The boolean reports whether
// the pattern matched at all; a match can carry zero captures.
func (c *Compiled) Match(n tree.Node, src []byte) ([]Capture, bool) {
	if n == nil || !c.Accepts(n.Kind()) {
		return nil, false
	}
	mc := &matchContext{src: src}
	if !c.root.match(mc, n) {
		return nil, false
	}
	return mc.caps, true
}
