// Package pattern implements the declarative pattern language the rule
// engine is driven by. A pattern is a tagged-variant AST built once with the
// constructors below, compiled into an immutable matcher, and evaluated
// against syntax nodes either anchored (one node) or during a sweep.
package pattern

import (
	"fmt"
	"regexp"

	"github.com/awklab/treelight/tree"
)

// Pattern is one variant of the pattern AST. Patterns are immutable after
// Compile and shared freely across queries.
type Pattern interface {
	match(mc *matchContext, n tree.Node) bool
	check() error

	// rootKinds returns the node kinds this pattern can possibly match at
	// its root, or nil when it is kind-agnostic. Used for type-indexed
	// dispatch: a sweep skips a rule entirely unless the candidate node's
	// kind is in this set.
	rootKinds() []string
}

type matchContext struct {
	src  []byte
	caps []Capture
}

// Capture is one named binding produced by a successful match. Captures are
// ephemeral; they are consumed by the caller and never persisted.
type Capture struct {
	Name string
	Node tree.Node
}

// Kind matches a node whose type tag equals k exactly.
func Kind(k string) Pattern { return kindPattern(k) }

type kindPattern string

func (p kindPattern) match(_ *matchContext, n tree.Node) bool { return n.Kind() == string(p) }
func (p kindPattern) rootKinds() []string                     { return []string{string(p)} }

func (p kindPattern) check() error {
	if p == "" {
		return fmt.Errorf("pattern: empty node kind")
	}
	return nil
}

// AnyOf matches a node whose type tag is any member of ks.
func AnyOf(ks ...string) Pattern { return anyOfPattern(ks) }

type anyOfPattern []string

func (p anyOfPattern) match(_ *matchContext, n tree.Node) bool {
	kind := n.Kind()
	for _, k := range p {
		if kind == k {
			return true
		}
	}
	return false
}

func (p anyOfPattern) rootKinds() []string { return []string(p) }

func (p anyOfPattern) check() error {
	if len(p) == 0 {
		return fmt.Errorf("pattern: empty alternation")
	}
	for _, k := range p {
		if k == "" {
			return fmt.Errorf("pattern: empty node kind in alternation")
		}
	}
	return nil
}

// Any matches every node. The indentation catch-all and refinement scopes
// are built from it.
func Any() Pattern { return anyPattern{} }

type anyPattern struct{}

func (anyPattern) match(*matchContext, tree.Node) bool { return true }
func (anyPattern) rootKinds() []string                 { return nil }
func (anyPattern) check() error                        { return nil }

// Field constrains the child occupying the named field of the candidate
// node. A node without that field does not match.
func Field(name string, sub Pattern) Pattern {
	return &fieldPattern{name: name, sub: sub}
}

type fieldPattern struct {
	name string
	sub  Pattern
}

func (p *fieldPattern) match(mc *matchContext, n tree.Node) bool {
	c := n.Field(p.name)
	if c == nil {
		return false
	}
	return p.sub.match(mc, c)
}

func (p *fieldPattern) rootKinds() []string { return nil }

func (p *fieldPattern) check() error {
	if p.name == "" {
		return fmt.Errorf("pattern: empty field name")
	}
	if p.sub == nil {
		return fmt.Errorf("pattern: field %q has nil sub-pattern", p.name)
	}
	return p.sub.check()
}

// HasChild matches a node with at least one direct child matching sub.
func HasChild(sub Pattern) Pattern { return &childPattern{sub: sub} }

type childPattern struct {
	sub Pattern
}

func (p *childPattern) match(mc *matchContext, n tree.Node) bool {
	for i := 0; i < n.ChildCount(); i++ {
		if p.sub.match(mc, n.Child(i)) {
			return true
		}
	}
	return false
}

func (p *childPattern) rootKinds() []string { return nil }

func (p *childPattern) check() error {
	if p.sub == nil {
		return fmt.Errorf("pattern: nil child sub-pattern")
	}
	return p.sub.check()
}

// ParentIs constrains the candidate node's immediate parent. The root node
// (no parent) never matches.
func ParentIs(sub Pattern) Pattern { return &parentPattern{sub: sub} }

type parentPattern struct {
	sub Pattern
}

func (p *parentPattern) match(mc *matchContext, n tree.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	return p.sub.match(mc, parent)
}

func (p *parentPattern) rootKinds() []string { return nil }

func (p *parentPattern) check() error {
	if p.sub == nil {
		return fmt.Errorf("pattern: nil parent sub-pattern")
	}
	return p.sub.check()
}

// Inside matches when any ancestor of the candidate node matches sub.
func Inside(sub Pattern) Pattern { return &insidePattern{sub: sub} }

type insidePattern struct {
	sub Pattern
}

func (p *insidePattern) match(mc *matchContext, n tree.Node) bool {
	for a := n.Parent(); a != nil; a = a.Parent() {
		if p.sub.match(mc, a) {
			return true
		}
	}
	return false
}

func (p *insidePattern) rootKinds() []string { return nil }

func (p *insidePattern) check() error {
	if p.sub == nil {
		return fmt.Errorf("pattern: nil ancestor sub-pattern")
	}
	return p.sub.check()
}

// All matches when every sub-pattern matches the candidate node.
func All(subs ...Pattern) Pattern { return allPattern(subs) }

type allPattern []Pattern

func (p allPattern) match(mc *matchContext, n tree.Node) bool {
	for _, sub := range p {
		if !sub.match(mc, n) {
			return false
		}
	}
	return true
}

// rootKinds of a conjunction is the first kind-bearing term; a node failing
// that term's kind set cannot match the conjunction.
func (p allPattern) rootKinds() []string {
	for _, sub := range p {
		if ks := sub.rootKinds(); ks != nil {
			return ks
		}
	}
	return nil
}

func (p allPattern) check() error {
	if len(p) == 0 {
		return fmt.Errorf("pattern: empty conjunction")
	}
	for _, sub := range p {
		if sub == nil {
			return fmt.Errorf("pattern: nil term in conjunction")
		}
		if err := sub.check(); err != nil {
			return err
		}
	}
	return nil
}

// Not inverts sub. Captures made while evaluating sub are discarded.
func Not(sub Pattern) Pattern { return &notPattern{sub: sub} }

type notPattern struct {
	sub Pattern
}

func (p *notPattern) match(mc *matchContext, n tree.Node) bool {
	mark := len(mc.caps)
	ok := p.sub.match(mc, n)
	mc.caps = mc.caps[:mark]
	return !ok
}

func (p *notPattern) rootKinds() []string { return nil }

func (p *notPattern) check() error {
	if p.sub == nil {
		return fmt.Errorf("pattern: nil negated sub-pattern")
	}
	return p.sub.check()
}

// Bind records the node matched by sub under the given capture name. One
// match may carry several bindings.
func Bind(name string, sub Pattern) Pattern {
	return &bindPattern{name: name, sub: sub}
}

type bindPattern struct {
	name string
	sub  Pattern
}

func (p *bindPattern) match(mc *matchContext, n tree.Node) bool {
	if !p.sub.match(mc, n) {
		return false
	}
	mc.caps = append(mc.caps, Capture{Name: p.name, Node: n})
	return true
}

func (p *bindPattern) rootKinds() []string { return p.sub.rootKinds() }

func (p *bindPattern) check() error {
	if p.name == "" {
		return fmt.Errorf("pattern: empty capture name")
	}
	if p.sub == nil {
		return fmt.Errorf("pattern: capture %q has nil sub-pattern", p.name)
	}
	return p.sub.check()
}

// MemberOf matches when the candidate node's text is a member of the given
// name set. Membership is exact: no prefix, substring, or pattern matching.
func MemberOf(names []string) Pattern {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return &memberPattern{set: set, size: len(names)}
}

type memberPattern struct {
	set  map[string]struct{}
	size int
}

func (p *memberPattern) match(mc *matchContext, n tree.Node) bool {
	_, ok := p.set[tree.Text(n, mc.src)]
	return ok
}

func (p *memberPattern) rootKinds() []string { return nil }

func (p *memberPattern) check() error {
	if p.size == 0 {
		return fmt.Errorf("pattern: empty membership set")
	}
	return nil
}

// Matches tests the candidate node's text against a regular expression. The
// expression is compiled once, at rule-set construction; a malformed
// expression is a construction-time error.
func Matches(expr string) Pattern { return &regexpPattern{expr: expr} }

type regexpPattern struct {
	expr string
	re   *regexp.Regexp
}

func (p *regexpPattern) match(mc *matchContext, n tree.Node) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(tree.Text(n, mc.src))
}

func (p *regexpPattern) rootKinds() []string { return nil }

func (p *regexpPattern) check() error {
	re, err := regexp.Compile(p.expr)
	if err != nil {
		return fmt.Errorf("pattern: bad regexp %q: %w", p.expr, err)
	}
	p.re = re
	return nil
}

// TextPred wraps an arbitrary predicate over the candidate node's text.
// Predicates must be side-effect free. A predicate that returns an error or
// panics makes only this evaluation a non-match; it never aborts the
// surrounding query.
func TextPred(name string, fn func(text string) (bool, error)) Pattern {
	return &predPattern{name: name, fn: fn}
}

type predPattern struct {
	name string
	fn   func(string) (bool, error)
}

func (p *predPattern) match(mc *matchContext, n tree.Node) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	ok, err := p.fn(tree.Text(n, mc.src))
	if err != nil {
		return false
	}
	return ok
}

func (p *predPattern) rootKinds() []string { return nil }

func (p *predPattern) check() error {
	if p.name == "" {
		return fmt.Errorf("pattern: predicate without a name")
	}
	if p.fn == nil {
		return fmt.Errorf("pattern: predicate %q has nil function", p.name)
	}
	return nil
}
