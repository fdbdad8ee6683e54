package hier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincenthz/werbolg/lang/hier"
	"github.com/vincenthz/werbolg/lang/ir"
)

func TestHierAddAndGet(t *testing.T) {
	h := hier.NewHier(0)

	ok := h.AddNsHier(ir.NewNamespace("a", "b"), func() int { return 1 })
	require.True(t, ok)

	ok = h.AddNsHier(ir.NewNamespace("a", "b"), func() int { return 2 })
	assert.False(t, ok, "re-adding the same leaf namespace must fail")

	assert.True(t, h.NamespaceExist(ir.NewNamespace("a", "b")))
	assert.False(t, h.NamespaceExist(ir.NewNamespace("a", "c")))

	v := h.Get(ir.NewNamespace("a", "b"))
	require.NotNil(t, v)
	assert.Equal(t, 1, *v)

	assert.Nil(t, h.Get(ir.NewNamespace("x")))
}

func TestHierDumpOrderIsSorted(t *testing.T) {
	h := hier.NewHier(0)
	require.True(t, h.AddNsHier(ir.NewNamespace("zeta"), func() int { return 0 }))
	require.True(t, h.AddNsHier(ir.NewNamespace("alpha"), func() int { return 0 }))
	require.True(t, h.AddNsHier(ir.NewNamespace("mid"), func() int { return 0 }))

	var visited []string
	h.Dump(ir.RootNamespace(), func(ns ir.Namespace, _ *int) {
		visited = append(visited, ns.String())
	})

	assert.Equal(t, []string{"", "alpha", "mid", "zeta"}, visited)
}

func TestBindingsRejectsDuplicateInsert(t *testing.T) {
	b := hier.NewBindings[int]()
	assert.True(t, b.Insert("x", 1))
	assert.False(t, b.Insert("x", 2))

	v, ok := b.Get("x")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestBindingsIdentsSorted(t *testing.T) {
	b := hier.NewBindings[int]()
	b.Insert("banana", 1)
	b.Insert("apple", 2)
	b.Insert("cherry", 3)

	assert.Equal(t, []ir.Ident{"apple", "banana", "cherry"}, b.Idents())
}

func TestBindingsStackShadowing(t *testing.T) {
	s := hier.NewBindingsStack[int]()
	require.True(t, s.Add("x", 1))

	s.PushScope()
	require.True(t, s.Add("x", 2))

	v, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 2, v, "inner scope shadows the outer binding")

	s.PopScope()
	v, ok = s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1, v, "popping the inner scope reveals the outer binding again")
}
