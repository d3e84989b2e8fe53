// Package engine is the public facade over the syntax-directed rule
// engine: one constructed Engine answers indentation, highlighting, and
// outline queries against parse-tree snapshots. Queries are pure reads;
// running several concurrently against the same snapshot is safe.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/awklab/treelight/internal/awk"
	"github.com/awklab/treelight/internal/highlight"
	"github.com/awklab/treelight/internal/indent"
	"github.com/awklab/treelight/internal/outline"
	"github.com/awklab/treelight/internal/types"
	"github.com/awklab/treelight/tree"
)

// Engine bundles the compiled rule sets. Construction is the only point of
// failure; every query on a built Engine is total.
type Engine struct {
	annotator *highlight.Annotator
	resolver  *indent.Resolver
	index     *outline.Index
	cfg       types.Config
}

// New builds an engine over the default AWK rule stack.
func New(cfg types.Config, logger *zap.Logger) (*Engine, error) {
	return NewCustom(RuleSet{
		Groups:      awk.DefaultGroups(),
		IndentRules: awk.DefaultIndentRules(),
		Definitions: awk.Definitions(),
		Vocabulary:  awk.Vocabulary(),
	}, cfg, logger)
}

// RuleSet carries the full declarative rule stack for one grammar. The
// engine itself is grammar-agnostic; all vocabulary arrives here as data.
type RuleSet struct {
	Groups      []highlight.Group
	IndentRules []indent.Rule
	Definitions map[string]string
	Vocabulary  map[string]struct{}
}

// NewCustom builds an engine over an arbitrary rule stack. A malformed
// rule set fails here and no query may run against it.
func NewCustom(rs RuleSet, cfg types.Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.Normalize()

	annotator, err := highlight.NewAnnotator(rs.Groups, rs.Vocabulary, logger)
	if err != nil {
		return nil, fmt.Errorf("building highlight annotator: %w", err)
	}
	resolver, err := indent.NewResolver(rs.IndentRules, rs.Vocabulary, logger)
	if err != nil {
		return nil, fmt.Errorf("building indent resolver: %w", err)
	}
	index, err := outline.NewIndex(rs.Definitions)
	if err != nil {
		return nil, fmt.Errorf("building navigation index: %w", err)
	}

	return &Engine{
		annotator: annotator,
		resolver:  resolver,
		index:     index,
		cfg:       cfg,
	}, nil
}

// Config returns the configuration record the engine was built with.
func (e *Engine) Config() types.Config { return e.cfg }

// Highlight sweeps the tree and returns the final classification spans in
// order.
func (e *Engine) Highlight(root tree.Node, src []byte) []types.Styled {
	return e.annotator.Annotate(root, src, e.cfg)
}

// HighlightRange restricts the sweep to nodes intersecting within.
func (e *Engine) HighlightRange(root tree.Node, src []byte, within types.Span) []types.Styled {
	return e.annotator.AnnotateRange(root, src, e.cfg, within)
}

// Indent resolves the indentation of the line containing pos.
func (e *Engine) Indent(root tree.Node, src []byte, pos int) indent.Decision {
	return e.resolver.Resolve(root, src, pos, e.cfg)
}

// IndentLines resolves every line of the buffer, in order.
func (e *Engine) IndentLines(root tree.Node, src []byte) []indent.Decision {
	return e.resolver.ResolveLines(root, src, e.cfg)
}

// Outline returns the navigation entries in document order.
func (e *Engine) Outline(root tree.Node, src []byte) []outline.Entry {
	return e.index.Entries(root, src, e.cfg)
}
