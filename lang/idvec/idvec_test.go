package idvec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vincenthz/werbolg/lang/idvec"
)

type testID uint32

func TestVecPushGetAppend(t *testing.T) {
	v := idvec.New[testID, string]()

	id0 := v.Push("a")
	id1 := v.Push("b")
	assert.Equal(t, testID(0), id0)
	assert.Equal(t, testID(1), id1)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "a", v.Get(id0))

	other := idvec.New[testID, string]()
	other.Push("c")
	other.Push("d")

	ids := v.Append(other)
	assert.Equal(t, []testID{2, 3}, ids)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, "c", v.Get(ids[0]))
	assert.Equal(t, []string{"a", "b", "c", "d"}, v.Slice())
}

func TestVecSet(t *testing.T) {
	v := idvec.New[testID, int]()
	id := v.Push(1)
	v.Set(id, 2)
	assert.Equal(t, 2, v.Get(id))
	*v.GetPtr(id) = 3
	assert.Equal(t, 3, v.Get(id))
}
