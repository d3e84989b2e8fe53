// Package indent resolves indentation requests against an ordered,
// prioritized rule list. Order is the only priority signal: the first rule
// whose pattern matches wins, and the list must end in a catch-all so every
// request returns exactly one decision.
package indent

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/awklab/treelight/internal/pattern"
	"github.com/awklab/treelight/internal/types"
	"github.com/awklab/treelight/tree"
)

// Anchor selects the node whose line-start column a matching rule measures
// its offset from. Returning nil sends the resolver to the next fallback
// (the root's line, column zero).
type Anchor func(n tree.Node) tree.Node

// AnchorSelf anchors at the matched node itself.
func AnchorSelf(n tree.Node) tree.Node { return n }

// AnchorParent anchors at the matched node's parent.
func AnchorParent(n tree.Node) tree.Node {
	if n == nil {
		return nil
	}
	return n.Parent()
}

// AnchorEnclosing anchors at the nearest ancestor whose kind is one of ks.
func AnchorEnclosing(ks ...string) Anchor {
	set := make(map[string]struct{}, len(ks))
	for _, k := range ks {
		set[k] = struct{}{}
	}
	return func(n tree.Node) tree.Node {
		if n == nil {
			return nil
		}
		for a := n.Parent(); a != nil; a = a.Parent() {
			if _, ok := set[a.Kind()]; ok {
				return a
			}
		}
		return nil
	}
}

// AnchorNone yields no anchor: the rule's offset is measured from column
// zero, making the decision absolute.
func AnchorNone(tree.Node) tree.Node { return nil }

// Rule is one prioritized indentation rule. A nil Pattern marks the
// catch-all, which matches every request including the blank-line marker.
type Rule struct {
	Name    string
	Pattern pattern.Pattern
	Anchor  Anchor
	Offset  int // multiples of the configured indent unit; may be negative
}

// Decision is the single resolved answer for one indentation request.
type Decision struct {
	Rule   string
	Anchor tree.Node // nil for absolute decisions
	Offset int       // indent units relative to the anchor's line start
	Column int       // final resolved column
}

type compiledRule struct {
	name   string
	pat    *pattern.Compiled // nil for the catch-all
	anchor Anchor
	offset int
}

// Resolver is a compiled indentation rule list.
type Resolver struct {
	rules []compiledRule
}

// NewResolver compiles the rule list. The final rule must be a catch-all
// (nil pattern); anything else is a construction error, because totality at
// query time is guaranteed by construction, not checked per request.
func NewResolver(rules []Rule, vocab map[string]struct{}, logger *zap.Logger) (*Resolver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("indent: empty rule list")
	}
	if rules[len(rules)-1].Pattern != nil {
		return nil, fmt.Errorf("indent: rule list must end in a catch-all rule")
	}

	r := &Resolver{rules: make([]compiledRule, 0, len(rules))}
	for i, rule := range rules {
		cr := compiledRule{name: rule.Name, anchor: rule.Anchor, offset: rule.Offset}
		if cr.anchor == nil {
			cr.anchor = AnchorNone
		}
		if rule.Pattern != nil {
			pat, err := pattern.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("indent: rule %q: %w", rule.Name, err)
			}
			for _, k := range pat.Kinds() {
				if vocab != nil {
					if _, ok := vocab[k]; !ok {
						logger.Warn("indent rule references unknown node kind; rule can never match",
							zap.String("rule", rule.Name),
							zap.String("kind", k))
					}
				}
			}
			cr.pat = pat
		} else if i != len(rules)-1 {
			return nil, fmt.Errorf("indent: rule %q: only the final rule may be a catch-all", rule.Name)
		}
		r.rules = append(r.rules, cr)
	}
	return r, nil
}

// Resolve answers the indentation request for the line containing pos. The
// target node is the largest node starting at the line's first significant
// byte; a line with no parseable node gets the synthetic blank marker whose
// parent is the nearest enclosing node. Resolution is total: the catch-all
// ensures exactly one decision comes back.
func (r *Resolver) Resolve(root tree.Node, src []byte, pos int, cfg types.Config) Decision {
	cfg = cfg.Normalize()
	target := targetNode(root, src, pos)

	for i := range r.rules {
		rule := &r.rules[i]
		if rule.pat != nil {
			if _, ok := rule.pat.Match(target, src); !ok {
				continue
			}
		}

		anchor := rule.anchor(target)
		column := rule.offset * cfg.IndentUnit
		if anchor != nil {
			column += lineIndentColumn(src, anchor.Span().Start, cfg.TabWidth)
		}
		if column < 0 {
			column = 0
		}
		return Decision{Rule: rule.name, Anchor: anchor, Offset: rule.offset, Column: column}
	}

	// Unreachable: construction guarantees a catch-all.
	return Decision{Rule: "catch-all", Column: 0}
}

// ResolveLines resolves every line of the buffer in order, one decision per
// line.
func (r *Resolver) ResolveLines(root tree.Node, src []byte, cfg types.Config) []Decision {
	var out []Decision
	for start := 0; start <= len(src); {
		out = append(out, r.Resolve(root, src, start, cfg))
		next := start
		for next < len(src) && src[next] != '\n' {
			next++
		}
		if next >= len(src) {
			break
		}
		start = next + 1
	}
	return out
}

// targetNode finds the anchor node for the line containing pos: the largest
// node that starts at the first significant byte of that line, or the blank
// marker when the line holds nothing parseable.
func targetNode(root tree.Node, src []byte, pos int) tree.Node {
	lineStart, lineEnd := lineBounds(src, pos)

	sig := -1
	for i := lineStart; i < lineEnd; i++ {
		if src[i] != ' ' && src[i] != '\t' {
			sig = i
			break
		}
	}

	if sig < 0 {
		enclosing := tree.Descendant(root, pos)
		if enclosing == nil {
			enclosing = root
		}
		return tree.Blank(enclosing, pos)
	}

	n := tree.Descendant(root, sig)
	if n == nil {
		enclosing := root
		return tree.Blank(enclosing, sig)
	}
	// Climb to the outermost node starting at the same byte, so a rule sees
	// the statement rather than its first token.
	for n.Parent() != nil && n.Parent().Span().Start == n.Span().Start && n.Parent().Parent() != nil {
		n = n.Parent()
	}
	return n
}

// lineBounds returns the [start, end) byte range of the line containing
// pos, excluding the trailing newline.
func lineBounds(src []byte, pos int) (int, int) {
	if pos > len(src) {
		pos = len(src)
	}
	if pos < 0 {
		pos = 0
	}
	start := pos
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return start, end
}

// lineIndentColumn measures the indentation column of the line containing
// offset, expanding tabs at the configured width.
func lineIndentColumn(src []byte, offset int, tabWidth int) int {
	start, end := lineBounds(src, offset)
	column := 0
	for i := start; i < end; i++ {
		switch src[i] {
		case ' ':
			column++
		case '\t':
			column += tabWidth - column%tabWidth
		default:
			return column
		}
	}
	return column
}
