// Package doctable implements the bijective mapping between a document's
// name (its file path, as given by the crawler) and its monotonically
// assigned numeric doc-id.
package doctable

import "github.com/chloe-mi/Mini-Google/hashtable"

// InvalidDocID is reserved; it is never returned by Add.
const InvalidDocID uint64 = 0

// Table holds both directions of the doc-id <-> name mapping. The
// name-to-id side always keys on FNV1a64(name), never on a stale
// placeholder, and stores the name bytes alongside the id so that lookups
// can confirm the stored name actually matches (hash collisions are not
// treated as identity).
type Table struct {
	idToName  *hashtable.Table[string]
	nameToID  *hashtable.Table[nameIDEntry]
	nextDocID uint64
}

type nameIDEntry struct {
	name string
	id   uint64
}

// New returns an empty doc table.
func New() *Table {
	return &Table{
		idToName:  hashtable.New[string](),
		nameToID:  hashtable.New[nameIDEntry](),
		nextDocID: 1,
	}
}

// Add returns name's doc-id, assigning a fresh one (starting at 1, never 0)
// if name has not been seen before. Add is idempotent: calling it twice
// with the same name returns the same id both times.
func (t *Table) Add(name string) uint64 {
	key := hashtable.Hash64([]byte(name))
	if entry, ok := t.lookupNameEntry(key, name); ok {
		return entry.id
	}

	id := t.nextDocID
	t.nextDocID++

	t.idToName.Insert(id, name)
	t.nameToID.Insert(key, nameIDEntry{name: name, id: id})
	return id
}

// GetDocID looks up name's doc-id.
func (t *Table) GetDocID(name string) (uint64, bool) {
	key := hashtable.Hash64([]byte(name))
	entry, ok := t.lookupNameEntry(key, name)
	if !ok {
		return 0, false
	}
	return entry.id, true
}

// GetDocName looks up the name stored under id.
func (t *Table) GetDocName(id uint64) (string, bool) {
	return t.idToName.Find(id)
}

// NumDocs returns the number of distinct documents registered.
func (t *Table) NumDocs() int {
	return t.idToName.Len()
}

// IDToNameTable exposes the raw id -> name table, for the index-file
// writer to walk bucket by bucket.
func (t *Table) IDToNameTable() *hashtable.Table[string] {
	return t.idToName
}

// lookupNameEntry resolves the FNV1a64 bucket-key collision case: the
// bucket only tells us a name hashing to the same key exists, so we must
// still compare the stored name bytes before trusting the id.
func (t *Table) lookupNameEntry(key uint64, name string) (nameIDEntry, bool) {
	entry, ok := t.nameToID.Find(key)
	if !ok || entry.name != name {
		return nameIDEntry{}, false
	}
	return entry, true
}

// Each calls fn once per (id, name) pair currently registered, in
// unspecified order.
func (t *Table) Each(fn func(id uint64, name string)) {
	it := t.idToName.Iterate()
	for {
		id, name, ok := it.Next()
		if !ok {
			return
		}
		fn(id, name)
	}
}
