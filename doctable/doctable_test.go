package doctable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIsIdempotentAndAssignsIncreasingIDs(t *testing.T) {
	dt := New()

	id1 := dt.Add("a.txt")
	id2 := dt.Add("b.txt")
	id1Again := dt.Add("a.txt")

	assert.Equal(t, id1, id1Again)
	assert.NotEqual(t, id1, id2)
	assert.Greater(t, id2, id1)
	assert.NotEqual(t, InvalidDocID, id1)
	assert.NotEqual(t, InvalidDocID, id2)
	assert.Equal(t, 2, dt.NumDocs())
}

func TestGetDocIDAndGetDocName(t *testing.T) {
	dt := New()
	id := dt.Add("docs/readme.txt")

	gotID, ok := dt.GetDocID("docs/readme.txt")
	require.True(t, ok)
	assert.Equal(t, id, gotID)

	gotName, ok := dt.GetDocName(id)
	require.True(t, ok)
	assert.Equal(t, "docs/readme.txt", gotName)

	_, ok = dt.GetDocID("missing.txt")
	assert.False(t, ok)

	_, ok = dt.GetDocName(id + 100)
	assert.False(t, ok)
}

func TestEachVisitsEveryDocument(t *testing.T) {
	dt := New()
	names := []string{"a", "b", "c"}
	for _, n := range names {
		dt.Add(n)
	}

	seen := map[string]bool{}
	dt.Each(func(id uint64, name string) {
		seen[name] = true
	})
	for _, n := range names {
		assert.True(t, seen[n])
	}
}
