// Package highlight turns a syntax tree plus an ordered set of feature
// groups into classification spans. Groups are evaluated in declared order
// over a pre-order sweep of the tree; conflicting assignments to the same
// span are settled by the override algebra: the first plain write wins, an
// override rule always replaces, and among overrides the last one processed
// wins.
package highlight

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/awklab/treelight/internal/pattern"
	"github.com/awklab/treelight/internal/types"
	"github.com/awklab/treelight/tree"
)

// Rule classifies the spans matched by its pattern. When the pattern binds
// captures, the captures' spans are classified; otherwise the matched
// node's whole span is.
type Rule struct {
	Name     string
	Pattern  pattern.Pattern
	Class    types.Classification
	Override bool

	// Refine, when non-empty, is a composite action: after the rule
	// matches, one bounded secondary sweep runs over the subtree named by
	// RefineScope (a capture name; the whole match when empty) and merges
	// its results through the same override algebra. Refinements cannot
	// themselves refine, so re-entry is capped at one level.
	Refine      []Refinement
	RefineScope string
}

// Refinement is the secondary classification applied by a composite action.
type Refinement struct {
	Pattern  pattern.Pattern
	Class    types.Classification
	Override bool
}

// Group is a named, independently toggleable, ordered list of rules. Group
// order within a rule set is significant and fixed at construction.
type Group struct {
	Name  string
	Rules []Rule
}

type compiledRefinement struct {
	pat      *pattern.Compiled
	class    types.Classification
	override bool
}

type compiledRule struct {
	name        string
	pat         *pattern.Compiled
	class       types.Classification
	override    bool
	refine      []compiledRefinement
	refineScope string
}

type compiledGroup struct {
	name     string
	rules    []compiledRule
	byKind   map[string][]int // kind -> rule indices
	agnostic []int            // rules without a kind filter
}

// Annotator is a compiled highlight rule set. Construction is the only
// place a malformed rule can fail; annotation itself is total.
type Annotator struct {
	groups []compiledGroup
}

// NewAnnotator compiles the groups. Patterns referencing kinds absent from
// vocab are accepted but can never match; they are reported through the
// logger as warnings. A nil vocab disables the check.
func NewAnnotator(groups []Group, vocab map[string]struct{}, logger *zap.Logger) (*Annotator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Annotator{groups: make([]compiledGroup, 0, len(groups))}
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if g.Name == "" {
			return nil, fmt.Errorf("highlight: unnamed feature group")
		}
		if _, dup := seen[g.Name]; dup {
			return nil, fmt.Errorf("highlight: duplicate feature group %q", g.Name)
		}
		seen[g.Name] = struct{}{}

		cg := compiledGroup{name: g.Name, byKind: make(map[string][]int)}
		for _, r := range g.Rules {
			cr, err := compileRule(g.Name, r, vocab, logger)
			if err != nil {
				return nil, err
			}
			idx := len(cg.rules)
			cg.rules = append(cg.rules, cr)
			if kinds := cr.pat.Kinds(); kinds != nil {
				for _, k := range kinds {
					cg.byKind[k] = append(cg.byKind[k], idx)
				}
			} else {
				cg.agnostic = append(cg.agnostic, idx)
			}
		}
		a.groups = append(a.groups, cg)
	}
	return a, nil
}

func compileRule(group string, r Rule, vocab map[string]struct{}, logger *zap.Logger) (compiledRule, error) {
	if r.Class == "" {
		return compiledRule{}, fmt.Errorf("highlight: rule %q in group %q has no classification", r.Name, group)
	}
	pat, err := pattern.Compile(r.Pattern)
	if err != nil {
		return compiledRule{}, fmt.Errorf("highlight: rule %q in group %q: %w", r.Name, group, err)
	}
	warnUnknownKinds(group, r.Name, pat, vocab, logger)

	cr := compiledRule{
		name:        r.Name,
		pat:         pat,
		class:       r.Class,
		override:    r.Override,
		refineScope: r.RefineScope,
	}
	for _, ref := range r.Refine {
		rp, err := pattern.Compile(ref.Pattern)
		if err != nil {
			return compiledRule{}, fmt.Errorf("highlight: refinement of rule %q in group %q: %w", r.Name, group, err)
		}
		if ref.Class == "" {
			return compiledRule{}, fmt.Errorf("highlight: refinement of rule %q in group %q has no classification", r.Name, group)
		}
		warnUnknownKinds(group, r.Name, rp, vocab, logger)
		cr.refine = append(cr.refine, compiledRefinement{pat: rp, class: ref.Class, override: ref.Override})
	}
	return cr, nil
}

func warnUnknownKinds(group, rule string, pat *pattern.Compiled, vocab map[string]struct{}, logger *zap.Logger) {
	if vocab == nil {
		return
	}
	for _, k := range pat.Kinds() {
		if _, ok := vocab[k]; !ok {
			logger.Warn("pattern references unknown node kind; rule can never match",
				zap.String("group", group),
				zap.String("rule", rule),
				zap.String("kind", k))
		}
	}
}

// Groups returns the declared group names in order.
func (a *Annotator) Groups() []string {
	names := make([]string, len(a.groups))
	for i, g := range a.groups {
		names[i] = g.name
	}
	return names
}

// Annotate sweeps the whole tree and returns the final assignment table as
// classification spans ordered by start offset, then end.
func (a *Annotator) Annotate(root tree.Node, src []byte, cfg types.Config) []types.Styled {
	return a.AnnotateRange(root, src, cfg, types.NewSpan(0, len(src)))
}

// AnnotateRange is Annotate restricted to nodes intersecting within. The
// enabled-feature set is read once here and holds for the whole pass.
func (a *Annotator) AnnotateRange(root tree.Node, src []byte, cfg types.Config, within types.Span) []types.Styled {
	table := newAssignTable()

	for gi := range a.groups {
		g := &a.groups[gi]
		if !cfg.FeatureEnabled(g.name) {
			continue
		}
		tree.Walk(root, func(n tree.Node) bool {
			if !n.Span().Intersects(within) && !n.Span().Empty() {
				return false
			}
			a.evalNode(g, n, src, table)
			return true
		})
	}

	return table.entries()
}

func (a *Annotator) evalNode(g *compiledGroup, n tree.Node, src []byte, table *assignTable) {
	kind := n.Kind()
	for _, idx := range g.byKind[kind] {
		a.applyRule(&g.rules[idx], n, src, table)
	}
	for _, idx := range g.agnostic {
		a.applyRule(&g.rules[idx], n, src, table)
	}
}

func (a *Annotator) applyRule(r *compiledRule, n tree.Node, src []byte, table *assignTable) {
	caps, ok := r.pat.Match(n, src)
	if !ok {
		return
	}

	if len(caps) == 0 {
		table.assign(n.Span(), r.class, r.override)
	} else {
		for _, c := range caps {
			table.assign(c.Node.Span(), r.class, r.override)
		}
	}

	if len(r.refine) == 0 {
		return
	}
	scope := n
	if r.refineScope != "" {
		scope = nil
		for _, c := range caps {
			if c.Name == r.refineScope {
				scope = c.Node
				break
			}
		}
		if scope == nil {
			return
		}
	}
	a.refineSweep(r.refine, scope, src, table)
}

// refineSweep is the bounded secondary sweep of a composite action. It
// visits only the scope subtree and applies refinements that carry no
// further composite actions, so the pass never re-enters itself.
func (a *Annotator) refineSweep(refine []compiledRefinement, scope tree.Node, src []byte, table *assignTable) {
	tree.Walk(scope, func(n tree.Node) bool {
		for i := range refine {
			ref := &refine[i]
			if caps, ok := ref.pat.Match(n, src); ok {
				if len(caps) == 0 {
					table.assign(n.Span(), ref.class, ref.override)
				} else {
					for _, c := range caps {
						table.assign(c.Node.Span(), ref.class, ref.override)
					}
				}
			}
		}
		return true
	})
}

// assignTable is the per-pass span -> classification map. It is private to
// one annotation pass and discarded afterwards.
type assignTable struct {
	bySpan map[types.Span]types.Classification
}

func newAssignTable() *assignTable {
	return &assignTable{bySpan: make(map[types.Span]types.Classification)}
}

// assign applies the override algebra for one produced classification:
// an unclaimed span records the class; a claimed span is replaced only by
// an override rule, so among overrides the last processed wins.
func (t *assignTable) assign(span types.Span, class types.Classification, override bool) {
	if span.Empty() {
		return
	}
	if _, claimed := t.bySpan[span]; claimed && !override {
		return
	}
	t.bySpan[span] = class
}

func (t *assignTable) entries() []types.Styled {
	out := make([]types.Styled, 0, len(t.bySpan))
	for span, class := range t.bySpan {
		out = append(out, types.Styled{Span: span, Class: class})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Span.Start != out[j].Span.Start {
			return out[i].Span.Start < out[j].Span.Start
		}
		return out[i].Span.End < out[j].Span.End
	})
	return out
}
