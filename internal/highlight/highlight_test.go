package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awklab/treelight/internal/pattern"
	"github.com/awklab/treelight/internal/types"
	"github.com/awklab/treelight/tree"
)

func mustAnnotator(t *testing.T, groups []Group) *Annotator {
	t.Helper()
	a, err := NewAnnotator(groups, nil, nil)
	require.NoError(t, err)
	return a
}

func singleRule(group, name string, p pattern.Pattern, class types.Classification, override bool) Group {
	return Group{
		Name:  group,
		Rules: []Rule{{Name: name, Pattern: p, Class: class, Override: override}},
	}
}

func TestConstructionFailures(t *testing.T) {
	tests := []struct {
		name   string
		groups []Group
	}{
		{"unnamed group", []Group{{Name: ""}}},
		{
			"duplicate group",
			[]Group{{Name: "a"}, {Name: "a"}},
		},
		{
			"malformed pattern",
			[]Group{singleRule("g", "r", pattern.AnyOf(), types.ClassKeyword, false)},
		},
		{
			"missing classification",
			[]Group{singleRule("g", "r", pattern.Kind("x"), "", false)},
		},
		{
			"malformed refinement",
			[]Group{{Name: "g", Rules: []Rule{{
				Name:    "r",
				Pattern: pattern.Kind("x"),
				Class:   types.ClassKeyword,
				Refine:  []Refinement{{Pattern: nil, Class: types.ClassKeyword}},
			}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnnotator(tt.groups, nil, nil)
			assert.Error(t, err)
		})
	}
}

// overlap trees: one node claimed by several rules.
func leaf(kind string, start, end int) *tree.Raw {
	return tree.New("program", start, end, tree.New(kind, start, end))
}

func TestFirstWriteWins(t *testing.T) {
	a := mustAnnotator(t, []Group{
		singleRule("first", "a", pattern.Kind("word"), types.ClassKeyword, false),
		singleRule("second", "c", pattern.Kind("word"), types.ClassString, false),
	})

	got := a.Annotate(leaf("word", 0, 4), []byte("word"), types.Default())
	require.Len(t, got, 1)
	assert.Equal(t, types.ClassKeyword, got[0].Class, "later plain rules never reclaim a claimed span")
}

func TestOverrideAlwaysWins(t *testing.T) {
	a := mustAnnotator(t, []Group{
		singleRule("first", "a", pattern.Kind("word"), types.ClassKeyword, false),
		singleRule("second", "b", pattern.Kind("word"), types.ClassString, true),
	})

	got := a.Annotate(leaf("word", 0, 4), []byte("word"), types.Default())
	require.Len(t, got, 1)
	assert.Equal(t, types.ClassString, got[0].Class)
}

func TestLastOverrideWins(t *testing.T) {
	a := mustAnnotator(t, []Group{
		singleRule("first", "a", pattern.Kind("word"), types.ClassKeyword, true),
		singleRule("second", "b", pattern.Kind("word"), types.ClassString, true),
	})

	got := a.Annotate(leaf("word", 0, 4), []byte("word"), types.Default())
	require.Len(t, got, 1)
	assert.Equal(t, types.ClassString, got[0].Class)
}

// Overlapping-but-unequal override spans keep separate table entries; the
// table is strictly per span, with no interval merging.
func TestOverlappingOverrideSpansStaySeparate(t *testing.T) {
	root := tree.New("program", 0, 6,
		tree.New("outer", 0, 6,
			tree.New("inner", 2, 4),
		),
	)
	a := mustAnnotator(t, []Group{
		singleRule("wide", "outer", pattern.Kind("outer"), types.ClassString, true),
		singleRule("narrow", "inner", pattern.Kind("inner"), types.ClassEscape, true),
	})

	got := a.Annotate(root, []byte("abcdef"), types.Default())
	require.Len(t, got, 2)
	assert.Equal(t, types.Styled{Span: types.NewSpan(0, 6), Class: types.ClassString}, got[0])
	assert.Equal(t, types.Styled{Span: types.NewSpan(2, 4), Class: types.ClassEscape}, got[1])
}

func TestDisabledGroupIsSkipped(t *testing.T) {
	a := mustAnnotator(t, []Group{
		singleRule("first", "a", pattern.Kind("word"), types.ClassKeyword, false),
		singleRule("second", "b", pattern.Kind("word"), types.ClassString, false),
	})

	cfg := types.Default()
	cfg.Features = map[string]bool{"first": false}

	got := a.Annotate(leaf("word", 0, 4), []byte("word"), cfg)
	require.Len(t, got, 1)
	assert.Equal(t, types.ClassString, got[0].Class)
}

func TestAnnotateIsIdempotent(t *testing.T) {
	root := tree.New("program", 0, 10,
		tree.New("comment", 0, 3),
		tree.New("word", 4, 8),
		tree.New("number", 9, 10),
	)
	a := mustAnnotator(t, []Group{
		singleRule("comment", "comment", pattern.Kind("comment"), types.ClassComment, false),
		singleRule("word", "word", pattern.Kind("word"), types.ClassKeyword, false),
		singleRule("number", "number", pattern.Kind("number"), types.ClassNumber, false),
	})

	first := a.Annotate(root, []byte("abc defgh 1"), types.Default())
	second := a.Annotate(root, []byte("abc defgh 1"), types.Default())
	assert.Equal(t, first, second)
}

func TestCapturedSpansAreClassified(t *testing.T) {
	root := tree.New("program", 0, 9,
		tree.New("func_call", 0, 9,
			tree.Fielded("name", tree.New("identifier", 0, 6)),
		),
	)
	a := mustAnnotator(t, []Group{
		singleRule("call", "call",
			pattern.All(
				pattern.Kind("func_call"),
				pattern.Field("name", pattern.Bind("name", pattern.Any())),
			),
			types.ClassFuncCall, false),
	})

	got := a.Annotate(root, []byte("length(x)"), types.Default())
	require.Len(t, got, 1)
	assert.Equal(t, types.NewSpan(0, 6), got[0].Span, "capture span, not the whole match")
}

func TestCompositeActionRefinesScopedSubtree(t *testing.T) {
	// assignment with identifiers on both sides: only the left one may be
	// reclassified by the composite action.
	root := tree.New("program", 0, 5,
		tree.New("assignment_exp", 0, 5,
			tree.Fielded("left", tree.New("identifier", 0, 1)),
			tree.New("identifier", 4, 5),
		),
	)
	a := mustAnnotator(t, []Group{
		singleRule("variable", "identifier", pattern.Kind("identifier"), types.ClassVariable, false),
		{
			Name: "definition",
			Rules: []Rule{{
				Name: "assignment-target",
				Pattern: pattern.All(
					pattern.Kind("assignment_exp"),
					pattern.Field("left", pattern.Bind("left", pattern.Any())),
				),
				Class:       types.ClassFuncDef,
				RefineScope: "left",
				Refine: []Refinement{
					{Pattern: pattern.Kind("identifier"), Class: types.ClassConstant, Override: true},
				},
			}},
		},
	})

	got := a.Annotate(root, []byte("a = b"), types.Default())

	byStart := map[int]types.Classification{}
	for _, s := range got {
		byStart[s.Span.Start] = s.Class
	}
	assert.Equal(t, types.ClassConstant, byStart[0], "left identifier reclassified by the refinement")
	assert.Equal(t, types.ClassVariable, byStart[4], "right identifier untouched")
}

func TestErrorIsolation(t *testing.T) {
	// A malformed span in the middle of otherwise valid code: the error
	// classification covers exactly the broken bytes, neighbours keep
	// their normal classes.
	root := tree.New("program", 0, 11,
		tree.New("word", 0, 3),
		tree.New(tree.ErrorKind, 4, 7),
		tree.New("number", 8, 11),
	)
	a := mustAnnotator(t, []Group{
		singleRule("word", "word", pattern.Kind("word"), types.ClassKeyword, false),
		singleRule("number", "number", pattern.Kind("number"), types.ClassNumber, false),
		singleRule("error", "parse-error", pattern.Kind(tree.ErrorKind), types.ClassError, false),
	})

	got := a.Annotate(root, []byte("for ??? 123"), types.Default())
	require.Len(t, got, 3)
	assert.Equal(t, types.Styled{Span: types.NewSpan(0, 3), Class: types.ClassKeyword}, got[0])
	assert.Equal(t, types.Styled{Span: types.NewSpan(4, 7), Class: types.ClassError}, got[1])
	assert.Equal(t, types.Styled{Span: types.NewSpan(8, 11), Class: types.ClassNumber}, got[2])
}

func TestAnnotateRange(t *testing.T) {
	root := tree.New("program", 0, 11,
		tree.New("word", 0, 3),
		tree.New("number", 8, 11),
	)
	a := mustAnnotator(t, []Group{
		singleRule("word", "word", pattern.Kind("word"), types.ClassKeyword, false),
		singleRule("number", "number", pattern.Kind("number"), types.ClassNumber, false),
	})

	got := a.AnnotateRange(root, []byte("for ??? 123"), types.Default(), types.NewSpan(0, 4))
	require.Len(t, got, 1)
	assert.Equal(t, types.ClassKeyword, got[0].Class)
}

func TestGroupsAreOrdered(t *testing.T) {
	a := mustAnnotator(t, []Group{
		{Name: "comment"}, {Name: "string"}, {Name: "keyword"},
	})
	assert.Equal(t, []string{"comment", "string", "keyword"}, a.Groups())
}
