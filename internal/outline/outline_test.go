package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awklab/treelight/internal/types"
	"github.com/awklab/treelight/tree"
)

func awkDefs() map[string]string {
	return map[string]string{"func_def": "name"}
}

func TestConstructionRejectsEmptyTables(t *testing.T) {
	_, err := NewIndex(nil)
	assert.Error(t, err)

	_, err = NewIndex(map[string]string{"": "name"})
	assert.Error(t, err)
}

// twoFuncs builds the tree for
//
//	function first() {}
//	function second() {}
func twoFuncs() (*tree.Raw, []byte) {
	src := "function first() {}\nfunction second() {}\n"
	root := tree.New("program", 0, 41,
		tree.New("func_def", 0, 19,
			tree.New("function", 0, 8),
			tree.Fielded("name", tree.New("identifier", 9, 14)),
			tree.New("block", 17, 19),
		),
		tree.New("func_def", 20, 40,
			tree.New("function", 20, 28),
			tree.Fielded("name", tree.New("identifier", 29, 35)),
			tree.New("block", 38, 40),
		),
	)
	return root, []byte(src)
}

func TestEntriesAreInDocumentOrder(t *testing.T) {
	ix, err := NewIndex(awkDefs())
	require.NoError(t, err)

	root, src := twoFuncs()
	got := ix.Entries(root, src, types.Default())

	require.Len(t, got, 2)
	assert.Equal(t, Entry{Name: "first", Span: types.NewSpan(0, 19)}, got[0])
	assert.Equal(t, Entry{Name: "second", Span: types.NewSpan(20, 40)}, got[1])
}

func TestPreferTopLevelDropsNestedDefinitions(t *testing.T) {
	// An (ill-formed but representable) definition nested inside another
	// definition's body.
	src := []byte("function outer() { function inner() {} }")
	root := tree.New("program", 0, 40,
		tree.New("func_def", 0, 40,
			tree.Fielded("name", tree.New("identifier", 9, 14)),
			tree.New("block", 17, 40,
				tree.New("func_def", 19, 38,
					tree.Fielded("name", tree.New("identifier", 28, 33)),
					tree.New("block", 36, 38),
				),
			),
		),
	)

	ix, err := NewIndex(awkDefs())
	require.NoError(t, err)

	cfg := types.Default()
	cfg.PreferTopLevel = false
	all := ix.Entries(root, src, cfg)
	require.Len(t, all, 2)
	assert.Equal(t, "outer", all[0].Name)
	assert.Equal(t, "inner", all[1].Name)

	cfg.PreferTopLevel = true
	top := ix.Entries(root, src, cfg)
	require.Len(t, top, 1)
	assert.Equal(t, "outer", top[0].Name)
}

func TestMissingNameFieldFallsBackToHeadText(t *testing.T) {
	// A definition the parser could not attach a name to still navigates,
	// under the first line of its own text.
	src := []byte("function () {\n}\n")
	root := tree.New("program", 0, 15,
		tree.New("func_def", 0, 15,
			tree.New("function", 0, 8),
			tree.New("block", 12, 15),
		),
	)

	ix, err := NewIndex(awkDefs())
	require.NoError(t, err)

	got := ix.Entries(root, src, types.Default())
	require.Len(t, got, 1)
	assert.Equal(t, "function () {", got[0].Name)
}

func TestNonDefinitionKindsAreIgnored(t *testing.T) {
	src := []byte("BEGIN { x = 1 }")
	root := tree.New("program", 0, 15,
		tree.New("rule", 0, 15,
			tree.New("BEGIN", 0, 5),
			tree.New("block", 6, 15),
		),
	)

	ix, err := NewIndex(awkDefs())
	require.NoError(t, err)
	assert.Empty(t, ix.Entries(root, src, types.Default()))
}
