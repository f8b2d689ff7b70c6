package indexfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chloe-mi/Mini-Google/doctable"
	"github.com/chloe-mi/Mini-Google/memindex"
)

func buildSample(t *testing.T) (*memindex.MemIndex, *doctable.Table) {
	t.Helper()
	dt := doctable.New()
	id := dt.Add("x.txt")
	require.Equal(t, uint64(1), id)

	mi := memindex.New()
	mi.AddPostingList("a", id, []uint32{0, 2})
	return mi, dt
}

// S3: round trip.
func TestRoundTrip(t *testing.T) {
	mi, dt := buildSample(t)
	path := filepath.Join(t.TempDir(), "s3.idx")
	require.NoError(t, Write(path, mi, dt))

	r, err := Open(path, true)
	require.NoError(t, err)
	defer r.Close()

	itr, err := r.IndexTableReader()
	require.NoError(t, err)
	dtr, err := r.DocTableReader()
	require.NoError(t, err)

	word, ok, err := itr.LookupWord("a")
	require.NoError(t, err)
	require.True(t, ok)

	positions, ok, err := word.LookupDocID(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []uint32{0, 2}, positions)

	name, ok, err := dtr.LookupDocID(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x.txt", name)
}

// S2 + round trip through the file, exercising GetDocIDList's rank-only path.
func TestRoundTripMultipleDocsAndWords(t *testing.T) {
	dt := doctable.New()
	id1 := dt.Add("f1.txt")
	id2 := dt.Add("f2.txt")

	mi := memindex.New()
	mi.AddPostingList("dog", id1, []uint32{0, 8})
	mi.AddPostingList("cat", id1, []uint32{4})
	mi.AddPostingList("cat", id2, []uint32{0, 4})

	path := filepath.Join(t.TempDir(), "s2.idx")
	require.NoError(t, Write(path, mi, dt))

	r, err := Open(path, true)
	require.NoError(t, err)
	defer r.Close()

	itr, err := r.IndexTableReader()
	require.NoError(t, err)

	catTable, ok, err := itr.LookupWord("cat")
	require.NoError(t, err)
	require.True(t, ok)

	list, err := catTable.GetDocIDList()
	require.NoError(t, err)

	byDoc := map[uint64]uint64{}
	for _, dr := range list {
		byDoc[dr.DocID] = dr.Rank
	}
	assert.Equal(t, map[uint64]uint64{id1: 1, id2: 2}, byDoc)

	_, ok, err = itr.LookupWord("mouse")
	require.NoError(t, err)
	assert.False(t, ok)
}

// S4: corruption. Flipping a byte in the DocTable/MemIndex region fails
// validation.
func TestCorruptionDetected(t *testing.T) {
	mi, dt := buildSample(t)
	path := filepath.Join(t.TempDir(), "s4.idx")
	require.NoError(t, Write(path, mi, dt))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), headerSize+1)
	data[headerSize+1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = Open(path, true)
	assert.Error(t, err)
}

// S5: partial write. A header whose magic number was never patched in is
// rejected outright, even without validation.
func TestPartialWriteRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s5.idx")
	mi, dt := buildSample(t)

	// Serialize the regions the normal way, but write a zero header instead
	// of patching in the real one, simulating a crash before the final
	// magic-number write.
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(headerSize))
	dtBytes := serializeTable(headerSize, dt.IDToNameTable(), encodeDocEntry)
	miBytes := serializeTable(headerSize+int64(len(dtBytes)), mi.Table(), encodeWordEntry)
	_, err = f.WriteAt(dtBytes, headerSize)
	require.NoError(t, err)
	_, err = f.WriteAt(miBytes, headerSize+int64(len(dtBytes)))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Open(path, false)
	assert.Error(t, err)
}

func TestOpenWithoutValidationReadsValidFile(t *testing.T) {
	mi, dt := buildSample(t)
	path := filepath.Join(t.TempDir(), "novalidate.idx")
	require.NoError(t, Write(path, mi, dt))

	r, err := Open(path, false)
	require.NoError(t, err)
	defer r.Close()

	dtr, err := r.DocTableReader()
	require.NoError(t, err)
	name, ok, err := dtr.LookupDocID(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x.txt", name)
}
