package awk

import (
	"github.com/awklab/treelight/internal/indent"
	"github.com/awklab/treelight/internal/pattern"
)

// DefaultIndentRules returns the AWK indentation rule list. Order encodes
// priority; the final catch-all guarantees every request resolves.
func DefaultIndentRules() []indent.Rule {
	return []indent.Rule{
		{
			// Anything hanging directly off the program root sits in
			// column zero. This also catches blank lines at the top level,
			// whose synthetic marker has the root as its parent.
			Name:    "top-level",
			Pattern: pattern.ParentIs(pattern.Kind("program")),
			Anchor:  indent.AnchorNone,
			Offset:  0,
		},
		{
			// A closing bracket aligns with the line that opened its
			// enclosing construct.
			Name:    "closing-bracket",
			Pattern: pattern.AnyOf(")", "}", "]"),
			Anchor:  indent.AnchorParent,
			Offset:  0,
		},
		{
			// `else` lines up with its `if`, not with the block body.
			Name:    "else-keyword",
			Pattern: pattern.AnyOf("else", "else_clause"),
			Anchor:  indent.AnchorEnclosing("if_statement"),
			Offset:  0,
		},
		{
			// An opening brace aligns with the construct that owns the
			// block.
			Name:    "block-open",
			Pattern: pattern.Kind("block"),
			Anchor:  indent.AnchorParent,
			Offset:  0,
		},
		{
			// Block bodies indent one unit past the block's opening line.
			// Blank lines inside a block resolve here too.
			Name:    "block-body",
			Pattern: pattern.ParentIs(pattern.Kind("block")),
			Anchor:  indent.AnchorParent,
			Offset:  1,
		},
		{
			Name:   "fallback",
			Anchor: indent.AnchorEnclosing("block", "func_def", "if_statement", "while_statement", "do_while_statement", "for_statement", "for_in_statement", "switch_statement", "rule"),
			Offset: 1,
		},
	}
}
