//go:build cgo

package tree

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awklab/treelight/internal/types"
)

// The adapter is grammar-agnostic; the bundled Go binding stands in for any
// host-provided grammar.
func parseGo(t *testing.T, src []byte) Node {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	parsed, err := parser.ParseCtx(context.Background(), nil, src)
	require.NoError(t, err)
	return FromSitter(parsed.RootNode())
}

func TestSitterAdapterNavigation(t *testing.T) {
	src := []byte("package main\n\nfunc add(a, b int) int { return a + b }\n")
	root := parseGo(t, src)

	require.NotNil(t, root)
	assert.Equal(t, "source_file", root.Kind())
	assert.Equal(t, types.NewSpan(0, len(src)), root.Span())
	assert.Nil(t, root.Parent())
	assert.False(t, root.IsError())

	var fn Node
	Walk(root, func(n Node) bool {
		if n.Kind() == "function_declaration" {
			fn = n
			return false
		}
		return true
	})
	require.NotNil(t, fn, "walk reaches the function through the wrapper")
	assert.True(t, Same(root, fn.Parent()))

	name := fn.Field("name")
	require.NotNil(t, name)
	assert.Equal(t, "add", Text(name, src))
	assert.Nil(t, fn.Field("no_such_field"), "absent field is nil, not an error")

	require.Greater(t, root.ChildCount(), 0)
	prev := -1
	for i := 0; i < root.ChildCount(); i++ {
		c := root.Child(i)
		require.NotNil(t, c, "child %d", i)
		assert.GreaterOrEqual(t, c.Span().Start, prev, "children stay in document order")
		prev = c.Span().Start
	}
	assert.Nil(t, root.Child(root.ChildCount()))
}

func TestSitterAdapterErrorNodes(t *testing.T) {
	root := parseGo(t, []byte("package main\n???\n"))

	foundError := false
	Walk(root, func(n Node) bool {
		if n.IsError() {
			foundError = true
		}
		return true
	})
	assert.True(t, foundError, "unparsable input surfaces an error node")
}

func TestFromSitterNil(t *testing.T) {
	assert.Nil(t, FromSitter(nil))
}
