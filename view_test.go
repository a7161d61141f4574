package takeref

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	src := []int{10, 20, 30, 40}
	v := ViewOf(src)
	require.Equal(t, 4, v.Len())
	assert.Equal(t, 30, v.At(2))
	assert.Equal(t, []int{10, 20, 30, 40}, slices.Collect(v.Values()))

	sub := v.Slice(1, 3)
	assert.True(t, EqualView(sub, []int{20, 30}))
	assert.False(t, EqualView(sub, []int{20}))
	assert.False(t, EqualView(sub, []int{20, 31}))

	dst := make([]int, 2)
	assert.Equal(t, 2, v.Copy(dst))
	dst[0] = -1
	assert.Equal(t, 10, src[0])

	var idx []int
	for i, e := range v.All() {
		if e == 30 {
			break
		}
		idx = append(idx, i)
	}
	assert.Equal(t, []int{0, 1}, idx)

	var first []int
	for e := range v.Values() {
		first = append(first, e)
		break
	}
	assert.Equal(t, []int{10}, first)
}

func TestViewSubSliceCapped(t *testing.T) {
	src := []int{1, 2, 3}
	sub := ViewOf(src).Slice(0, 1)
	out := make([]int, 3)
	require.Equal(t, 1, sub.Copy(out))
	assert.Equal(t, []int{1, 0, 0}, out)
}
