package symbol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincenthz/werbolg/lang/ir"
	"github.com/vincenthz/werbolg/lang/symbol"
)

// TestUniqueTableBuilderInterns is testable property 4: two equal
// values intern to the same id, a distinct value gets a fresh one.
func TestUniqueTableBuilderInterns(t *testing.T) {
	u := symbol.NewUniqueTableBuilder[ir.LitId, string]()

	id1 := u.Add("hello")
	id2 := u.Add("world")
	id3 := u.Add("hello")

	assert.Equal(t, id1, id3, "equal values must intern to the same id")
	assert.NotEqual(t, id1, id2)

	vec := u.Finalize()
	assert.Equal(t, 2, vec.Len())
	assert.Equal(t, "hello", vec.Get(id1))
	assert.Equal(t, "world", vec.Get(id2))
}

func TestTableDataAddRejectsDuplicatePath(t *testing.T) {
	td := symbol.NewTableData[ir.FunId, string]()
	require.NoError(t, td.Table.CreateNamespace(ir.RootNamespace()))

	path := ir.NewAbsPath(ir.RootNamespace(), "f")
	id, ok := td.Add(path, "first")
	require.True(t, ok)

	_, ok = td.Add(path, "second")
	assert.False(t, ok, "re-adding the same path must not allocate a new id")

	assert.Equal(t, "first", td.Get(id))
}

func TestTableGetByPath(t *testing.T) {
	td := symbol.NewTableData[ir.GlobalId, int]()
	require.NoError(t, td.Table.CreateNamespace(ir.RootNamespace()))

	path := ir.NewAbsPath(ir.RootNamespace(), "g")
	_, ok := td.Add(path, 42)
	require.True(t, ok)

	v, ok := td.GetByPath(path)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = td.GetByPath(ir.NewAbsPath(ir.RootNamespace(), "missing"))
	assert.False(t, ok)
}
