package hashtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertFindRemove(t *testing.T) {
	ht := New[string]()

	_, had := ht.Insert(1, "a")
	assert.False(t, had)
	assert.Equal(t, 1, ht.Len())

	v, ok := ht.Find(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)

	prior, had := ht.Insert(1, "b")
	assert.True(t, had)
	assert.Equal(t, "a", prior)
	assert.Equal(t, 1, ht.Len())

	v, ok = ht.Find(1)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	removed, ok := ht.Remove(1)
	require.True(t, ok)
	assert.Equal(t, "b", removed)
	assert.Equal(t, 0, ht.Len())

	_, ok = ht.Find(1)
	assert.False(t, ok)

	_, ok = ht.Remove(1)
	assert.False(t, ok)
}

func TestResizePreservesContents(t *testing.T) {
	ht := New[int]()

	const n = 500
	for i := 0; i < n; i++ {
		ht.Insert(uint64(i), i*i)
	}
	assert.Equal(t, n, ht.Len())
	assert.Greater(t, ht.NumBuckets(), initialBuckets)

	for i := 0; i < n; i++ {
		v, ok := ht.Find(uint64(i))
		require.True(t, ok, "key %d should still be present after resize", i)
		assert.Equal(t, i*i, v)
	}
}

func TestNumElementsEqualsSumOfChainLengths(t *testing.T) {
	ht := New[int]()
	for i := 0; i < 100; i++ {
		ht.Insert(uint64(i), i)
	}

	total := 0
	for b := 0; b < ht.NumBuckets(); b++ {
		total += len(ht.Bucket(b))
	}
	assert.Equal(t, ht.Len(), total)
}

func TestIteratorVisitsEveryElementOnce(t *testing.T) {
	ht := New[int]()
	want := map[uint64]int{}
	for i := 0; i < 50; i++ {
		ht.Insert(uint64(i), i*2)
		want[uint64(i)] = i * 2
	}

	got := map[uint64]int{}
	it := ht.Iterate()
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		got[k] = v
	}
	assert.Equal(t, want, got)
}

func TestHash64KnownVectors(t *testing.T) {
	// FNV-1a-64 of the empty string is the offset basis.
	assert.Equal(t, uint64(0xCBF29CE484222325), Hash64([]byte{}))
	// Distinct inputs should (overwhelmingly) hash to distinct values.
	assert.NotEqual(t, Hash64([]byte("cat")), Hash64([]byte("dog")))
}
