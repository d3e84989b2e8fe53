package awk

import (
	"github.com/awklab/treelight/internal/highlight"
	"github.com/awklab/treelight/internal/pattern"
	"github.com/awklab/treelight/internal/types"
)

// DefaultGroups returns the AWK highlight feature groups in their fixed
// order. Group order is significant: earlier groups claim spans first, and
// only override rules may take a claimed span away.
func DefaultGroups() []highlight.Group {
	return []highlight.Group{
		{
			Name: "comment",
			Rules: []highlight.Rule{
				{Name: "comment", Pattern: pattern.Kind("comment"), Class: types.ClassComment},
			},
		},
		{
			Name: "string",
			Rules: []highlight.Rule{
				{Name: "string", Pattern: pattern.Kind("string"), Class: types.ClassString},
			},
		},
		{
			Name: "regexp",
			Rules: []highlight.Rule{
				{Name: "regex", Pattern: pattern.Kind("regex"), Class: types.ClassRegexp},
			},
		},
		{
			Name: "escape",
			Rules: []highlight.Rule{
				{Name: "escape", Pattern: pattern.Kind("escape_sequence"), Class: types.ClassEscape, Override: true},
			},
		},
		{
			Name: "keyword",
			Rules: []highlight.Rule{
				{Name: "keyword", Pattern: pattern.AnyOf(Keywords...), Class: types.ClassKeyword},
			},
		},
		{
			Name: "builtin",
			Rules: []highlight.Rule{
				{
					Name: "builtin-function",
					Pattern: pattern.All(
						pattern.Kind("func_call"),
						pattern.Field("name", pattern.Bind("name", pattern.All(
							pattern.Kind("identifier"),
							pattern.MemberOf(BuiltinFunctions),
						))),
					),
					Class: types.ClassBuiltinFunc,
				},
				{
					Name: "builtin-variable",
					Pattern: pattern.All(
						pattern.Kind("identifier"),
						pattern.MemberOf(BuiltinVariables),
					),
					Class: types.ClassBuiltinVar,
				},
			},
		},
		{
			Name: "number",
			Rules: []highlight.Rule{
				{Name: "number", Pattern: pattern.Kind("number"), Class: types.ClassNumber},
			},
		},
		{
			Name: "definition",
			Rules: []highlight.Rule{
				{
					Name: "function-name",
					Pattern: pattern.All(
						pattern.Kind("func_def"),
						pattern.Field("name", pattern.Bind("name", pattern.Any())),
					),
					Class: types.ClassFuncDef,
				},
				// The left side of an assignment is a definition site: the
				// composite action reclassifies every identifier inside it,
				// overriding whatever a broader rule already decided.
				{
					Name: "assignment-target",
					Pattern: pattern.All(
						pattern.Kind("assignment_exp"),
						pattern.Field("left", pattern.Bind("left", pattern.Any())),
					),
					Class:       types.ClassVariable,
					RefineScope: "left",
					Refine: []highlight.Refinement{
						{Pattern: pattern.Kind("identifier"), Class: types.ClassVariable, Override: true},
					},
				},
			},
		},
		{
			Name: "call",
			Rules: []highlight.Rule{
				{
					Name: "function-call",
					Pattern: pattern.All(
						pattern.Kind("func_call"),
						pattern.Field("name", pattern.Bind("name", pattern.Any())),
					),
					Class: types.ClassFuncCall,
				},
			},
		},
		{
			Name: "namespace",
			Rules: []highlight.Rule{
				{Name: "namespace", Pattern: pattern.Kind("ns_qualified_name"), Class: types.ClassNamespace},
			},
		},
		{
			Name: "variable",
			Rules: []highlight.Rule{
				{Name: "identifier", Pattern: pattern.Kind("identifier"), Class: types.ClassVariable},
				{Name: "field-ref", Pattern: pattern.Kind("field_ref"), Class: types.ClassVariable},
			},
		},
		{
			Name: "operator",
			Rules: []highlight.Rule{
				{Name: "operator", Pattern: pattern.AnyOf(Operators...), Class: types.ClassOperator},
			},
		},
		{
			Name: "bracket",
			Rules: []highlight.Rule{
				{Name: "bracket", Pattern: pattern.AnyOf(Brackets...), Class: types.ClassBracket},
			},
		},
		{
			Name: "delimiter",
			Rules: []highlight.Rule{
				{Name: "delimiter", Pattern: pattern.AnyOf(Delimiters...), Class: types.ClassDelimiter},
			},
		},
		{
			Name: "error",
			Rules: []highlight.Rule{
				{Name: "parse-error", Pattern: pattern.Kind("ERROR"), Class: types.ClassError},
			},
		},
	}
}
