// Package memindex implements the in-memory inverted index: word ->
// (word, doc-id -> ordered positions), built monotonically while crawling a
// corpus and then either serialized to an index file or searched directly.
package memindex

import (
	"fmt"
	"sort"

	"github.com/chloe-mi/Mini-Google/hashtable"
)

// MemIndex maps a word's FNV1a64 hash to its WordEntry.
type MemIndex struct {
	table *hashtable.Table[*WordEntry]
}

// New returns an empty index.
func New() *MemIndex {
	return &MemIndex{table: hashtable.New[*WordEntry]()}
}

// Table exposes the raw word-hash -> WordEntry table, for the index-file
// writer to walk bucket by bucket.
func (mi *MemIndex) Table() *hashtable.Table[*WordEntry] {
	return mi.table
}

// AddPostingList records that word occurs in docID at positions. The caller
// must not call AddPostingList twice for the same (word, docID) pair: each
// document is inserted once per word it contains, and a repeat is an
// invariant violation, not a recoverable error.
func (mi *MemIndex) AddPostingList(word string, docID uint64, positions []uint32) {
	if len(positions) == 0 {
		panic("memindex: AddPostingList called with an empty positions list")
	}

	key := hashtable.Hash64([]byte(word))
	wp, ok := mi.table.Find(key)
	if ok && wp.Word != word {
		panic(fmt.Sprintf("memindex: hash collision between %q and %q", wp.Word, word))
	}
	if !ok {
		wp = &WordEntry{Word: word, Postings: hashtable.New[[]uint32]()}
		mi.table.Insert(key, wp)
	}

	if _, had := wp.Postings.Find(docID); had {
		panic(fmt.Sprintf("memindex: doc %d already has postings for word %q", docID, word))
	}
	wp.Postings.Insert(docID, positions)
}

// lookup resolves a word to its postings table, rejecting a bucket
// collision where a different word hashes to the same key.
func (mi *MemIndex) lookup(word string) (*hashtable.Table[[]uint32], bool) {
	key := hashtable.Hash64([]byte(word))
	wp, ok := mi.table.Find(key)
	if !ok || wp.Word != word {
		return nil, false
	}
	return wp.Postings, true
}

// Positions returns the ordered positions list for word in docID, if any.
func (mi *MemIndex) Positions(word string, docID uint64) ([]uint32, bool) {
	postings, ok := mi.lookup(word)
	if !ok {
		return nil, false
	}
	return postings.Find(docID)
}

// Words calls fn once per distinct word currently in the index, in
// unspecified order.
func (mi *MemIndex) Words(fn func(word string, postings *hashtable.Table[[]uint32])) {
	it := mi.table.Iterate()
	for {
		_, wp, ok := it.Next()
		if !ok {
			return
		}
		fn(wp.Word, wp.Postings)
	}
}

// NumWords returns the number of distinct words indexed.
func (mi *MemIndex) NumWords() int { return mi.table.Len() }

// Search intersects the posting lists of every word in query and returns
// the surviving documents, ranked ascending by the summed occurrence count.
// The on-disk multi-index path (see query.Processor) sorts the analogous
// result descending instead. query must be non-empty and already
// lowercased; an empty query is a caller precondition violation.
func Search(mi *MemIndex, query []string) []Result {
	if len(query) == 0 {
		panic("memindex: Search called with an empty query")
	}

	first, ok := mi.lookup(query[0])
	if !ok {
		return nil
	}

	ranks := map[uint64]uint64{}
	it := first.Iterate()
	for {
		docID, positions, ok := it.Next()
		if !ok {
			break
		}
		ranks[docID] = uint64(len(positions))
	}

	for _, word := range query[1:] {
		postings, ok := mi.lookup(word)
		if !ok {
			return nil
		}
		for docID := range ranks {
			positions, ok := postings.Find(docID)
			if !ok {
				delete(ranks, docID)
				continue
			}
			ranks[docID] += uint64(len(positions))
		}
		if len(ranks) == 0 {
			return nil
		}
	}

	results := make([]Result, 0, len(ranks))
	for docID, rank := range ranks {
		results = append(results, Result{DocID: docID, Rank: rank})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Rank != results[j].Rank {
			return results[i].Rank < results[j].Rank
		}
		return results[i].DocID < results[j].DocID
	})
	return results
}
