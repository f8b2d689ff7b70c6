package memindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chloe-mi/Mini-Google/hashtable"
)

func TestAddPostingListAndPositions(t *testing.T) {
	mi := New()
	mi.AddPostingList("a", 1, []uint32{0, 2})

	got, ok := mi.Positions("a", 1)
	require.True(t, ok)
	assert.Equal(t, []uint32{0, 2}, got)

	_, ok = mi.Positions("a", 2)
	assert.False(t, ok)

	_, ok = mi.Positions("b", 1)
	assert.False(t, ok)
}

func TestAddPostingListRejectsDuplicateDoc(t *testing.T) {
	mi := New()
	mi.AddPostingList("a", 1, []uint32{0})

	assert.Panics(t, func() {
		mi.AddPostingList("a", 1, []uint32{5})
	})
}

// TestAddPostingListPanicsOnHashCollision simulates a genuine FNV-1a-64
// bucket collision (two distinct words hashing to the same key) by planting
// a WordEntry for a different word directly under the key "a" hashes to,
// bypassing AddPostingList's own hashing. A genuine collision is treated as
// fatal, not a silent overwrite.
func TestAddPostingListPanicsOnHashCollision(t *testing.T) {
	mi := New()
	key := hashtable.Hash64([]byte("a"))
	mi.table.Insert(key, &WordEntry{Word: "zzz", Postings: hashtable.New[[]uint32]()})

	assert.Panics(t, func() {
		mi.AddPostingList("a", 1, []uint32{0})
	})
}

// S2 from the testable-properties scenarios: F1 = "dog cat dog" (doc 1),
// F2 = "cat cat" (doc 2).
func buildS2() *MemIndex {
	mi := New()
	mi.AddPostingList("dog", 1, []uint32{0, 8})
	mi.AddPostingList("cat", 1, []uint32{4})
	mi.AddPostingList("cat", 2, []uint32{0, 4})
	return mi
}

func TestSearchSingleWord(t *testing.T) {
	mi := buildS2()
	got := Search(mi, []string{"cat"})
	want := []Result{{DocID: 1, Rank: 1}, {DocID: 2, Rank: 2}}
	assert.Equal(t, want, got)
}

func TestSearchConjunction(t *testing.T) {
	mi := buildS2()
	got := Search(mi, []string{"dog", "cat"})
	want := []Result{{DocID: 1, Rank: 3}}
	assert.Equal(t, want, got)
}

func TestSearchNoMatch(t *testing.T) {
	mi := buildS2()
	got := Search(mi, []string{"cat", "mouse"})
	assert.Empty(t, got)
}

func TestSearchMissingFirstWord(t *testing.T) {
	mi := buildS2()
	assert.Empty(t, Search(mi, []string{"mouse"}))
}
