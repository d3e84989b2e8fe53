package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awklab/treelight/internal/types"
	"github.com/awklab/treelight/tree"
)

// beginRule builds the tree for
//
//	BEGIN {
//	    print NR
//	}
func beginRule() (*tree.Raw, []byte) {
	src := "BEGIN {\n    print NR\n}\n"
	root := tree.New("program", 0, 22,
		tree.New("rule", 0, 22,
			tree.New("BEGIN", 0, 5),
			tree.New("block", 6, 22,
				tree.New("{", 6, 7),
				tree.New("print_statement", 12, 20,
					tree.New("print", 12, 17),
					tree.New("identifier", 18, 20),
				),
				tree.New("}", 21, 22),
			),
		),
	)
	return root, []byte(src)
}

func mustEngine(t *testing.T, cfg types.Config) *Engine {
	t.Helper()
	e, err := New(cfg, nil)
	require.NoError(t, err)
	return e
}

func TestHighlightEndToEnd(t *testing.T) {
	root, src := beginRule()
	e := mustEngine(t, types.Default())

	got := e.Highlight(root, src)
	want := []types.Styled{
		{Span: types.NewSpan(0, 5), Class: types.ClassKeyword},
		{Span: types.NewSpan(6, 7), Class: types.ClassBracket},
		{Span: types.NewSpan(12, 17), Class: types.ClassKeyword},
		{Span: types.NewSpan(18, 20), Class: types.ClassBuiltinVar},
		{Span: types.NewSpan(21, 22), Class: types.ClassBracket},
	}
	assert.Equal(t, want, got)
}

func TestHighlightFeatureGating(t *testing.T) {
	root, src := beginRule()

	cfg := types.Default()
	cfg.Features = map[string]bool{"builtin": false}
	e := mustEngine(t, cfg)

	got := e.Highlight(root, src)
	byStart := map[int]types.Classification{}
	for _, s := range got {
		byStart[s.Span.Start] = s.Class
	}
	assert.Equal(t, types.ClassVariable, byStart[18], "with builtins off, NR falls through to the variable group")
}

func TestIndentEndToEnd(t *testing.T) {
	root, src := beginRule()
	e := mustEngine(t, types.Default())

	assert.Equal(t, 0, e.Indent(root, src, 0).Column, "BEGIN line")
	assert.Equal(t, 4, e.Indent(root, src, 12).Column, "statement inside the block")
	assert.Equal(t, 0, e.Indent(root, src, 21).Column, "closing brace")

	decisions := e.IndentLines(root, src)
	assert.Len(t, decisions, 4)
}

func TestOutlineEndToEnd(t *testing.T) {
	src := []byte("function add(a, b) { return a + b }\n")
	root := tree.New("program", 0, 35,
		tree.New("func_def", 0, 35,
			tree.New("function", 0, 8),
			tree.Fielded("name", tree.New("identifier", 9, 12)),
			tree.New("block", 19, 35),
		),
	)
	e := mustEngine(t, types.Default())

	entries := e.Outline(root, src)
	require.Len(t, entries, 1)
	assert.Equal(t, "add", entries[0].Name)
	assert.Equal(t, types.NewSpan(0, 35), entries[0].Span)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".treelight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"name: custom\nindent_unit: 2\nfeatures:\n  keyword: false\n",
	), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.Name)
	assert.Equal(t, 2, cfg.IndentUnit)
	assert.Equal(t, types.DefaultTabWidth, cfg.TabWidth, "unset knobs keep their defaults")
	assert.False(t, cfg.FeatureEnabled("keyword"))
	assert.True(t, cfg.FeatureEnabled("string"), "unlisted groups stay on")

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteDefaultConfigRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".treelight.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, types.DefaultIndentUnit, cfg.IndentUnit)
	for _, name := range defaultGroupNames() {
		assert.True(t, cfg.FeatureEnabled(name), "group %q", name)
	}
}

func writeFixture(t *testing.T, dir, name, src, dump string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	require.NoError(t, os.WriteFile(path+".json", []byte(dump), 0o644))
	return path
}

const numberDump = `{"kind": "program", "start": 0, "end": 2, "children": [
	{"kind": "number", "start": 0, "end": 1}
]}`

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "one.awk", "1\n", numberDump)

	e := mustEngine(t, types.Default())
	report, err := ProcessFile(e, path)
	require.NoError(t, err)

	assert.Equal(t, path, report.Path)
	assert.Equal(t, []byte("1\n"), report.Src, "report carries the buffer the spans index into")
	require.Len(t, report.Styled, 1)
	assert.Equal(t, types.ClassNumber, report.Styled[0].Class)
	assert.Empty(t, report.Outline)
}

func TestProcessFileWithoutDumpFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lonely.awk")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	e := mustEngine(t, types.Default())
	_, err := ProcessFile(e, path)
	assert.Error(t, err)
}

func TestProcessPathWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a.awk", "1\n", numberDump)
	writeFixture(t, dir, "b.awk", "1\n", numberDump)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	e := mustEngine(t, types.Default())
	reports, err := ProcessPath(context.Background(), nil, e, dir, ProcessFile)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}
